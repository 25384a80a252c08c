// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package procctx builds the immutable process-wide Context every other
// package is constructed from: the calibrated scrypt parameters, the
// network selector, the root directory, and the pinned-certificate set.
// It is assembled once at process start and passed down as a shared
// pointer; nothing
// in abc-core mutates it after [New] returns.
package procctx

import (
	"fmt"
	"time"

	"github.com/abcwallet/abc-core/internal/crypto"
)

// Network selects which Bitcoin network an account's identifiers and server
// calls target.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// S1Main and S1Testnet are the hard-coded 32-byte server SNRP salts used to
// derive userId on each network, so the same username yields distinct
// opaque identifiers per network.
var (
	S1Main    = []byte("abcwallet-userid-salt-mainnet-32")
	S1Testnet = []byte("abcwallet-userid-salt-testnet-32")
)

// Context is the immutable, process-wide state every credential flow reads
// from. It is built once at startup by [New] and never mutated afterward;
// concurrent readers need no lock.
type Context struct {
	RootDir     string
	Network     Network
	ServerSNRP  crypto.SNRP
	Calibration crypto.CalibratedParams
	PinnedCerts []string
}

// New calibrates the scrypt parameters against target, seeds the process
// RNG from rootDir and any supplied extra entropy, and returns the
// resulting immutable Context.
func New(rootDir string, network Network, target time.Duration, pinnedCerts []string, extraEntropy ...[]byte) (*Context, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("procctx: rootDir must not be empty")
	}

	if err := crypto.SeedProcessRandom(rootDir, extraEntropy...); err != nil {
		return nil, fmt.Errorf("procctx: seeding process RNG: %w", err)
	}

	calibration, err := crypto.Calibrate(target)
	if err != nil {
		return nil, fmt.Errorf("procctx: calibrating scrypt parameters: %w", err)
	}

	salt := S1Main
	if network == Testnet {
		salt = S1Testnet
	}

	return &Context{
		RootDir:     rootDir,
		Network:     network,
		ServerSNRP:  crypto.NewServerSNRP(salt),
		Calibration: calibration,
		PinnedCerts: append([]string(nil), pinnedCerts...),
	}, nil
}

// AccountsDirName returns the top-level accounts directory name for the
// context's network: "Accounts" on mainnet, "Accounts-testnet" on testnet.
func (c *Context) AccountsDirName() string {
	if c.Network == Testnet {
		return "Accounts-testnet"
	}
	return "Accounts"
}
