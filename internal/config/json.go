package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the JSON-specific representation of the application
// configuration. It mirrors [StructuredConfig] but uses JSON struct tags and
// the custom [Duration] type so that duration values can be expressed as
// human-readable strings (e.g. "1h", "30s") in the config file.
//
// After decoding, the values are mapped into a [StructuredConfig] by
// [parseJSON].
type StructuredJSONConfig struct {
	// App holds account identity settings loaded from the JSON file.
	App struct {
		RootDir                 string   `json:"root_dir"`
		Network                 string   `json:"network"`
		ScryptCalibrationTarget Duration `json:"scrypt_calibration_target"`
		Version                 string   `json:"version"`
	} `json:"app,omitempty"`

	// Client holds auth-server transport and debug-log settings loaded
	// from the JSON file.
	Client struct {
		AuthServerURL          string   `json:"auth_server_url"`
		APIKey                 string   `json:"api_key"`
		PinnedCertFingerprints []string `json:"pinned_cert_fingerprints"`
		RequestTimeout         Duration `json:"request_timeout"`
		DebugLogPath           string   `json:"debug_log_path"`
		DebugLogMaxBytes       int64    `json:"debug_log_max_bytes"`
	} `json:"client,omitempty"`

	// Server holds the reference auth-server's HTTP listener settings
	// loaded from the JSON file.
	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	// Storage holds the reference auth-server's database settings loaded
	// from the JSON file.
	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`
}

// parseJSON opens the JSON file at jsonFilePath, decodes it into a
// [StructuredJSONConfig], and maps the result into a [StructuredConfig].
//
// JSONFilePath is intentionally left empty in the returned config so that
// the path is not re-processed during subsequent merge steps.
//
// Returns a wrapped error if the file cannot be opened or its contents
// cannot be decoded as valid JSON.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			RootDir:                 jsonCfg.App.RootDir,
			Network:                 jsonCfg.App.Network,
			ScryptCalibrationTarget: time.Duration(jsonCfg.App.ScryptCalibrationTarget),
			Version:                 jsonCfg.App.Version,
		},
		Client: Client{
			AuthServerURL:          jsonCfg.Client.AuthServerURL,
			APIKey:                 jsonCfg.Client.APIKey,
			PinnedCertFingerprints: jsonCfg.Client.PinnedCertFingerprints,
			RequestTimeout:         time.Duration(jsonCfg.Client.RequestTimeout),
			DebugLogPath:           jsonCfg.Client.DebugLogPath,
			DebugLogMaxBytes:       jsonCfg.Client.DebugLogMaxBytes,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		JSONFilePath: "", // intentionally cleared to prevent re-processing
	}

	return cfg, nil
}

// Duration is a thin wrapper around [time.Duration] that adds JSON
// unmarshaling support for human-readable duration strings such as "1h",
// "30m", or "15s", in addition to raw nanosecond integers.
//
// Use Duration in JSON config structs wherever a time.Duration field is
// needed. Convert back to time.Duration with a simple cast:
//
//	d := Duration(5 * time.Minute)
//	std := time.Duration(d) // → 5m0s
type Duration time.Duration

// UnmarshalJSON implements [json.Unmarshaler] for Duration.
//
// Supported JSON value types:
//   - string: parsed with [time.ParseDuration] (e.g. "1h30m", "30s").
//   - number: treated as a raw nanosecond count (same as time.Duration).
//
// Returns an error if the value is a string that cannot be parsed as a
// duration, or if the JSON value is of an unsupported type.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// MarshalJSON implements [json.Marshaler] for Duration.
// The value is serialized as a human-readable string using
// [time.Duration.String] (e.g. "1h0m0s", "30m0s").
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
