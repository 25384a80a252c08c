package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port] (reference auth-server listen address)
//	-d database DSN (reference auth-server persistence backend)
//	-c/-config json file path with configs
//	-root-dir account root directory
//	-network "mainnet" or "testnet"
//	-scrypt-calibration-target scrypt SNRP calibration target (e.g. "500ms")
//	-auth-server-url base URL of the auth server
//	-api-key auth-server API key
//	-pinned-cert-fingerprints comma-separated SHA-256 certificate fingerprints
//	-request-timeout outbound auth-server request timeout (e.g. "30s", "1m")
//	-debug-log-path local diagnostic log path
//	-debug-log-max-bytes local diagnostic log rotation size in bytes
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var rootDir string
	var network string
	var scryptCalibrationTarget time.Duration
	var authServerURL string
	var apiKey string
	var pinnedCertFingerprints string
	var requestTimeout time.Duration
	var debugLogPath string
	var debugLogMaxBytes int64

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&rootDir, "root-dir", "", "Account root directory")
	flag.StringVar(&network, "network", "", "Bitcoin network: mainnet or testnet")
	flag.DurationVar(&scryptCalibrationTarget, "scrypt-calibration-target", 0, "scrypt SNRP calibration target (e.g. 500ms)")
	flag.StringVar(&authServerURL, "auth-server-url", "", "Auth server base URL")
	flag.StringVar(&apiKey, "api-key", "", "Auth server API key")
	flag.StringVar(&pinnedCertFingerprints, "pinned-cert-fingerprints", "", "Comma-separated pinned certificate fingerprints")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s, 1m)")
	flag.StringVar(&debugLogPath, "debug-log-path", "", "Local diagnostic log path")
	flag.Int64Var(&debugLogMaxBytes, "debug-log-max-bytes", 0, "Local diagnostic log rotation size in bytes")

	flag.Parse()

	var fingerprints []string
	if pinnedCertFingerprints != "" {
		fingerprints = strings.Split(pinnedCertFingerprints, ",")
	}

	return &StructuredConfig{
		App: App{
			RootDir:                 rootDir,
			Network:                 network,
			ScryptCalibrationTarget: scryptCalibrationTarget,
		},
		Client: Client{
			AuthServerURL:          authServerURL,
			APIKey:                 apiKey,
			PinnedCertFingerprints: fingerprints,
			RequestTimeout:         requestTimeout,
			DebugLogPath:           debugLogPath,
			DebugLogMaxBytes:       debugLogMaxBytes,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
