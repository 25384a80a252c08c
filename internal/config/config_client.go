package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side identity settings derived from the shared
// structured config.
type ClientApp struct {
	// RootDir is the directory holding per-account login data.
	RootDir string
	// Network is the selected Bitcoin network ("mainnet" or "testnet").
	Network string
	// ScryptCalibrationTarget is the wall-clock target for SNRP calibration.
	ScryptCalibrationTarget time.Duration
}

// ClientTransport holds the settings the CLI uses to reach the auth server.
type ClientTransport struct {
	// AuthServerURL is the base URL of the auth server.
	AuthServerURL string
	// APIKey identifies the calling application to the auth server.
	APIKey string
	// PinnedCertFingerprints is the accepted certificate fingerprint set.
	PinnedCertFingerprints []string
	// RequestTimeout bounds every outbound auth-server call.
	RequestTimeout time.Duration
}

// ClientDebugLog holds the local diagnostic log's path and rotation size.
type ClientDebugLog struct {
	// Path is the file the diagnostic log is appended to.
	Path string
	// MaxBytes is the size at which Path is rotated.
	MaxBytes int64
}

// ClientConfig is the top-level CLI configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains account identity settings.
	App ClientApp
	// Transport contains auth-server connection settings.
	Transport ClientTransport
	// DebugLog contains local diagnostic-log settings.
	DebugLog ClientDebugLog
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the CLI runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			RootDir:                 cfg.App.RootDir,
			Network:                 cfg.App.Network,
			ScryptCalibrationTarget: cfg.App.ScryptCalibrationTarget,
		},
		Transport: ClientTransport{
			AuthServerURL:          cfg.Client.AuthServerURL,
			APIKey:                 cfg.Client.APIKey,
			PinnedCertFingerprints: cfg.Client.PinnedCertFingerprints,
			RequestTimeout:         cfg.Client.RequestTimeout,
		},
		DebugLog: ClientDebugLog{
			Path:     cfg.Client.DebugLogPath,
			MaxBytes: cfg.Client.DebugLogMaxBytes,
		},
	}

	return clientCfg, clientCfg.validate()
}
