// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Random is a process-wide random source. crypto/rand.Reader already draws
// from the OS CSPRNG; Random additionally folds in process-identity entropy
// collected once at Seed time — the application directory, filesystem
// stats, wall-clock and monotonic time, and process/parent PIDs — so every
// draw depends on more than the OS source alone.
type Random struct {
	mu   sync.Mutex
	pool []byte
}

var processRandom = &Random{}

// SeedProcessRandom folds rootDir's path and stat info, the current time,
// the process and parent PIDs, and any caller-supplied entropy into the
// process-wide random pool. Safe to call more than once — each call mixes
// in fresh material on top of whatever is already there; it never resets
// the pool.
func SeedProcessRandom(rootDir string, extra ...[]byte) error {
	return processRandom.seed(rootDir, extra...)
}

// RandomBytes draws n cryptographically random bytes from the process-wide
// source.
func RandomBytes(n int) ([]byte, error) {
	return processRandom.bytes(n)
}

func (r *Random) seed(rootDir string, extra ...[]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := sha256.New()
	if r.pool != nil {
		h.Write(r.pool)
	}
	h.Write([]byte(rootDir))
	if fi, err := os.Stat(rootDir); err == nil {
		var sizeBuf [8]byte
		binary.BigEndian.PutUint64(sizeBuf[:], uint64(fi.Size()))
		h.Write(sizeBuf[:])
		h.Write([]byte(fi.ModTime().String()))
	}

	now := time.Now()
	var timeBuf [8]byte
	binary.BigEndian.PutUint64(timeBuf[:], uint64(now.UnixNano()))
	h.Write(timeBuf[:])

	h.Write([]byte(fmt.Sprintf("pid=%d ppid=%d", os.Getpid(), os.Getppid())))

	for _, e := range extra {
		h.Write(e)
	}

	r.pool = h.Sum(nil)
	return nil
}

// bytes returns n bytes of random data. Every draw reads fresh OS randomness
// and, once the pool has been seeded, expands it together with that OS
// randomness through successive SHA-256 rounds keyed by a block counter — a
// weak pool alone cannot predict the output, and neither can a weak OS
// source alone.
func (r *Random) bytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}

	osRandom := make([]byte, n+32)
	if _, err := io.ReadFull(rand.Reader, osRandom); err != nil {
		return nil, fmt.Errorf("crypto: reading OS random source: %w", err)
	}

	r.mu.Lock()
	pool := r.pool
	r.mu.Unlock()

	if pool == nil {
		return osRandom[:n], nil
	}

	out := make([]byte, 0, n+sha256.Size)
	for counter := uint32(0); len(out) < n; counter++ {
		h := sha256.New()
		h.Write(pool)
		h.Write(osRandom)
		var counterBuf [4]byte
		binary.BigEndian.PutUint32(counterBuf[:], counter)
		h.Write(counterBuf[:])
		out = append(out, h.Sum(nil)...)
	}
	return out[:n], nil
}
