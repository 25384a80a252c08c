// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/otp"
	"github.com/abcwallet/abc-core/internal/procctx"
)

// Store is the per-username credential store (historically "LoginStore"):
// the normalized username, its derived userId, and the optional OTP key.
// It is constructed before any login attempt and outlives the Login objects
// built from it.
type Store struct {
	mu sync.Mutex

	ctx             *procctx.Context
	rootDir         string
	accountsDirName string

	username string
	userID   []byte

	otpKey *otp.Key
}

// New constructs a Store for username, normalizing it and deriving userId
// from the process context's server SNRP. It attempts to load an existing
// OTP key from disk; absence is not an error.
func New(ctx *procctx.Context, username string) (*Store, error) {
	normalized, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	userID, err := ctx.ServerSNRP.Hash([]byte(normalized))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving userId")
	}

	s := &Store{
		ctx:             ctx,
		rootDir:         ctx.RootDir,
		accountsDirName: ctx.AccountsDirName(),
		username:        normalized,
		userID:          userID,
	}

	if paths, err := s.paths(false); err == nil {
		if key, err := loadOtpKeyFile(paths); err == nil {
			s.otpKey = &key
		}
	}

	return s, nil
}

// Username returns the normalized username this store was constructed from.
func (s *Store) Username() string {
	return s.username
}

// UserID returns the 32-byte opaque server identifier derived from the
// username.
func (s *Store) UserID() []byte {
	return append([]byte(nil), s.userID...)
}

// Context returns the process-wide context this store was built from.
func (s *Store) Context() *procctx.Context {
	return s.ctx
}

// Paths returns the AccountPaths for this store, allocating a fresh
// account directory when create is true and none exists yet.
func (s *Store) Paths(create bool) (AccountPaths, error) {
	return s.paths(create)
}

// OtpKey returns the currently loaded OTP key, or nil if none is installed.
func (s *Store) OtpKey() *otp.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otpKey
}

// OtpKeySet installs key and persists it to <accountDir>/OtpKey.json.
func (s *Store) OtpKeySet(key otp.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.paths(true)
	if err != nil {
		return err
	}
	if err := saveOtpKeyFile(paths, key); err != nil {
		return err
	}
	s.otpKey = &key
	return nil
}

// OtpKeyRemove deletes the OTP key from disk and memory. Missing file is
// not an error.
func (s *Store) OtpKeyRemove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.paths(false)
	if err != nil {
		if abcerr.Is(err, abcerr.FileDoesNotExist) {
			s.otpKey = nil
			return nil
		}
		return err
	}

	fileMutex.Lock()
	removeErr := os.Remove(paths.OtpKeyFile())
	fileMutex.Unlock()
	if removeErr != nil && !os.IsNotExist(removeErr) {
		return abcerr.Wrap(abcerr.SysError, removeErr, "removing OtpKey.json")
	}
	s.otpKey = nil
	return nil
}

type otpKeyFile struct {
	TOTP string `json:"TOTP"`
}

func loadOtpKeyFile(paths AccountPaths) (otp.Key, error) {
	data, err := os.ReadFile(paths.OtpKeyFile())
	if err != nil {
		return nil, err
	}
	var f otpKeyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, abcerr.Wrap(abcerr.JsonError, err, "decoding OtpKey.json")
	}
	return otp.DecodeBase32(f.TOTP)
}

func saveOtpKeyFile(paths AccountPaths, key otp.Key) error {
	data, err := json.Marshal(otpKeyFile{TOTP: key.EncodeBase32()})
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding OtpKey.json")
	}

	fileMutex.Lock()
	defer fileMutex.Unlock()
	if err := os.WriteFile(paths.OtpKeyFile(), data, 0o600); err != nil {
		return abcerr.Wrap(abcerr.FileOpenError, err, "writing OtpKey.json")
	}
	return nil
}
