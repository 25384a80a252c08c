// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the scriptable abccli command surface: one cobra
// subcommand per external operation the credential flows in internal/login
// and internal/account expose. Every command is single-shot — it builds a
// process context, does one thing, prints a result, and exits — there is no
// interactive shell here, matching the "no rich TUI" boundary on this
// surface.
package cli

import (
	"fmt"
	"time"

	"github.com/abcwallet/abc-core/internal/config"
	"github.com/abcwallet/abc-core/internal/logger"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/abcwallet/abc-core/internal/procctx"
	"github.com/abcwallet/abc-core/internal/serverclient"
)

// rootDir is the account root directory, taken from the process's first
// argument (ahead of the cobra-parsed command) per the external CLI
// contract: "every command requires <rootDir> as its first argument".
var rootDir string

// newContext builds the process-wide [procctx.Context] for this invocation,
// loading the ambient client configuration for the network selector,
// scrypt calibration target, and pinned-certificate set.
func newContext() (*procctx.Context, *config.ClientConfig, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	network := procctx.Mainnet
	if cfg.App.Network == string(procctx.Testnet) {
		network = procctx.Testnet
	}

	target := cfg.App.ScryptCalibrationTarget
	if target <= 0 {
		target = 500 * time.Millisecond
	}

	ctx, err := procctx.New(rootDir, network, target, cfg.Transport.PinnedCertFingerprints)
	if err != nil {
		return nil, nil, fmt.Errorf("building process context: %w", err)
	}
	return ctx, cfg, nil
}

// newServerClient builds the resty-backed auth-server client from cfg's
// transport settings.
func newServerClient(cfg *config.ClientConfig) (*serverclient.Client, error) {
	log := logger.NewClientLogger("abccli")
	return serverclient.New(config.Client{
		AuthServerURL:          cfg.Transport.AuthServerURL,
		APIKey:                 cfg.Transport.APIKey,
		PinnedCertFingerprints: cfg.Transport.PinnedCertFingerprints,
		RequestTimeout:         cfg.Transport.RequestTimeout,
	}, log)
}

// appSetup bundles everything a command needs to resolve a username into a
// [login.Store] and reach the auth server.
type appSetup struct {
	ctx    *procctx.Context
	cfg    *config.ClientConfig
	server *serverclient.Client
}

func setup() (*appSetup, error) {
	ctx, cfg, err := newContext()
	if err != nil {
		return nil, err
	}
	server, err := newServerClient(cfg)
	if err != nil {
		return nil, err
	}
	return &appSetup{ctx: ctx, cfg: cfg, server: server}, nil
}

func (a *appSetup) store(username string) (*login.Store, error) {
	return login.New(a.ctx, username)
}
