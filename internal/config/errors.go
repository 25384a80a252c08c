package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid account identity settings
	// (for example, an empty root directory or an unrecognized network).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidTransportConfigs indicates invalid auth-server transport
	// settings (for example, missing base URL or zero request timeout).
	ErrInvalidTransportConfigs = errors.New("invalid transport configuration")
)
