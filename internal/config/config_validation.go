// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; the reference auth-server's own invariants
// (DB DSN, listen address) are checked at dial/listen time instead, since
// StructuredConfig also backs standalone CLI invocations that never touch
// the server fields.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

// validate checks that cfg carries everything the CLI needs to run: an
// account root directory, a recognized network, a positive scrypt
// calibration target, and a reachable auth server.
func (cfg *ClientConfig) validate() error {
	if cfg.App.RootDir == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.Network != "mainnet" && cfg.App.Network != "testnet" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.ScryptCalibrationTarget <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Transport.AuthServerURL == "" || cfg.Transport.RequestTimeout == 0 {
		return ErrInvalidTransportConfigs
	}

	return nil
}
