// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/scrypt"
)

const (
	// snrpSaltSize is the size in bytes of a freshly generated client salt.
	snrpSaltSize = 32

	// snrpKeyLen is the scrypt derived-key length every SNRP.Hash call uses.
	snrpKeyLen = 32

	// snrpMaxN and snrpMaxR are the ceilings the calibration routine will
	// not scale past, regardless of how far short of the target it is.
	snrpMaxN = 1 << 17
	snrpMaxR = 8

	// defaultScryptN, defaultScryptR and defaultScryptP are both the
	// reference point calibration starts scaling from and the fixed
	// parameters of the server SNRP.
	defaultScryptN = 16384
	defaultScryptR = 1
	defaultScryptP = 1
)

// SNRP is a serialised scrypt parameter set: salt, N (CPU/memory cost),
// r (block size) and p (parallelism, always 1 here).
type SNRP struct {
	Salt []byte
	N    int
	R    int
	P    int
}

// snrpJSON is the on-disk and on-wire encoding of an SNRP.
type snrpJSON struct {
	SaltHex string `json:"salt_hex"`
	N       int    `json:"N"`
	R       int    `json:"r"`
	P       int    `json:"p"`
}

// CalibratedParams holds the (N, r) pair chosen once per process by
// [Calibrate] and consumed by every later [NewClientSNRP] call.
type CalibratedParams struct {
	N int
	R int
}

// Calibrate runs a single reference scrypt(N=16384, r=1, p=1) derivation and
// scales parameters toward target wall-clock duration: r is doubled first,
// up to snrpMaxR, then N is doubled, holding r fixed, until either target is
// met or N reaches snrpMaxN. If the reference run already meets or exceeds
// target, its parameters are returned unchanged.
func Calibrate(target time.Duration) (CalibratedParams, error) {
	const probeSecret = "scrypt-calibration-probe"
	salt := make([]byte, snrpSaltSize)

	n, r := defaultScryptN, defaultScryptR
	elapsed, err := timeScrypt(probeSecret, salt, n, r)
	if err != nil {
		return CalibratedParams{}, err
	}
	if elapsed >= target {
		return CalibratedParams{N: n, R: r}, nil
	}

	for r < snrpMaxR {
		r *= 2
		elapsed, err = timeScrypt(probeSecret, salt, n, r)
		if err != nil {
			return CalibratedParams{}, err
		}
		if elapsed >= target {
			return CalibratedParams{N: n, R: r}, nil
		}
	}

	for n < snrpMaxN {
		n *= 2
		elapsed, err = timeScrypt(probeSecret, salt, n, r)
		if err != nil {
			return CalibratedParams{}, err
		}
		if elapsed >= target {
			break
		}
	}

	return CalibratedParams{N: n, R: r}, nil
}

func timeScrypt(secret string, salt []byte, n, r int) (time.Duration, error) {
	start := time.Now()
	if _, err := scrypt.Key([]byte(secret), salt, n, r, defaultScryptP, snrpKeyLen); err != nil {
		return 0, fmt.Errorf("crypto: scrypt calibration probe: %w", err)
	}
	return time.Since(start), nil
}

// NewServerSNRP returns the fixed SNRP every client shares for a given
// network's salt. Only the salt differs between mainnet and testnet, so the
// same username yields distinct userIds on each network.
func NewServerSNRP(networkSalt []byte) SNRP {
	return SNRP{Salt: networkSalt, N: defaultScryptN, R: defaultScryptR, P: defaultScryptP}
}

// NewClientSNRP generates a fresh per-account client SNRP: a random 32-byte
// salt with the process-calibrated (N, r) and p always 1.
func NewClientSNRP(calibration CalibratedParams) (SNRP, error) {
	salt, err := RandomBytes(snrpSaltSize)
	if err != nil {
		return SNRP{}, fmt.Errorf("crypto: generating SNRP salt: %w", err)
	}
	return SNRP{Salt: salt, N: calibration.N, R: calibration.R, P: defaultScryptP}, nil
}

// Hash runs scrypt(secret, s.Salt, s.N, s.R, s.P, dkLen=32). Deterministic:
// the same (s, secret) pair always yields the same 32 bytes.
func (s SNRP) Hash(secret []byte) ([]byte, error) {
	key, err := scrypt.Key(secret, s.Salt, s.N, s.R, s.P, snrpKeyLen)
	if err != nil {
		return nil, fmt.Errorf("crypto: scrypt derivation: %w", err)
	}
	return key, nil
}

// MarshalJSON encodes s as {salt_hex, N, r, p}.
func (s SNRP) MarshalJSON() ([]byte, error) {
	return json.Marshal(snrpJSON{
		SaltHex: EncodeBase16(s.Salt),
		N:       s.N,
		R:       s.R,
		P:       s.P,
	})
}

// UnmarshalJSON decodes {salt_hex, N, r, p}, validating that N, r and p are
// positive integers and that salt is non-empty.
func (s *SNRP) UnmarshalJSON(data []byte) error {
	var raw snrpJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("crypto: decoding SNRP: %w", err)
	}
	if raw.N <= 0 || raw.R <= 0 || raw.P <= 0 {
		return errors.New("crypto: SNRP N, r and p must be positive integers")
	}
	if raw.SaltHex == "" {
		return errors.New("crypto: SNRP salt must not be empty")
	}
	salt, err := DecodeBase16(raw.SaltHex)
	if err != nil {
		return fmt.Errorf("crypto: decoding SNRP salt: %w", err)
	}
	if len(salt) == 0 {
		return errors.New("crypto: SNRP salt must not be empty")
	}

	s.Salt, s.N, s.R, s.P = salt, raw.N, raw.R, raw.P
	return nil
}
