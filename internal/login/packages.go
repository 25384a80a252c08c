// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"encoding/json"
	"os"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
)

// CarePackage is the on-disk and on-server bundle of SNRPs for an account.
// QuestionKeySNRP and RecoveryKeySNRP are present iff the matching legacy
// credential has been configured.
type CarePackage struct {
	PasswordKeySNRP crypto.SNRP  `json:"SNRP2"`
	QuestionKeySNRP *crypto.SNRP `json:"SNRP3,omitempty"`
	RecoveryKeySNRP *crypto.SNRP `json:"SNRP4,omitempty"`
	ERQ             *crypto.Box  `json:"ERQ,omitempty"`
}

// LoginPackage is the on-disk and on-server bundle of encrypted keys for an
// account. RecoveryBox and ELP1 are present only for legacy recovery/PIN v1
// compatibility.
type LoginPackage struct {
	PasswordBox     *crypto.Box `json:"EMK_LP2,omitempty"`
	PasswordAuthBox *crypto.Box `json:"EMK_LRA3,omitempty"`
	SyncKeyBox      crypto.Box  `json:"ESyncKey"`
	RecoveryBox     *crypto.Box `json:"ELP1,omitempty"`
}

// LoginStash is the v2 on-disk record of the account's repository key
// catalog, refreshed on every successful login/update.
type LoginStash struct {
	KeyBoxes   []crypto.Box `json:"keyBoxes"`
	SyncKeyBox crypto.Box   `json:"syncKeyBox"`
}

// PinPackage is the legacy v1 on-disk PIN record.
type PinPackage struct {
	PinBox    crypto.Box `json:"EMK_PINK"`
	PinAuthID string     `json:"DID"`
	Expires   int64      `json:"Expires"`
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return abcerr.Wrap(abcerr.FileDoesNotExist, err, "reading %s", path)
		}
		return abcerr.Wrap(abcerr.FileReadError, err, "reading %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "decoding %s", path)
	}
	return nil
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding %s", path)
	}

	fileMutex.Lock()
	defer fileMutex.Unlock()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return abcerr.Wrap(abcerr.FileOpenError, err, "writing %s", path)
	}
	return nil
}

func loadCarePackage(paths AccountPaths) (CarePackage, error) {
	var p CarePackage
	err := loadJSON(paths.CarePackageFile(), &p)
	return p, err
}

func saveCarePackage(paths AccountPaths, p CarePackage) error {
	return saveJSON(paths.CarePackageFile(), p)
}

func loadLoginPackage(paths AccountPaths) (LoginPackage, error) {
	var p LoginPackage
	err := loadJSON(paths.LoginPackageFile(), &p)
	return p, err
}

func saveLoginPackage(paths AccountPaths, p LoginPackage) error {
	return saveJSON(paths.LoginPackageFile(), p)
}

func loadLoginStash(paths AccountPaths) (LoginStash, error) {
	var s LoginStash
	err := loadJSON(paths.LoginStashFile(), &s)
	return s, err
}

func saveLoginStash(paths AccountPaths, s LoginStash) error {
	return saveJSON(paths.LoginStashFile(), s)
}

func loadPinPackage(paths AccountPaths) (PinPackage, error) {
	var p PinPackage
	err := loadJSON(paths.PinPackageFile(), &p)
	return p, err
}

func savePinPackage(paths AccountPaths, p PinPackage) error {
	return saveJSON(paths.PinPackageFile(), p)
}

func removePinPackage(paths AccountPaths) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()
	if err := os.Remove(paths.PinPackageFile()); err != nil && !os.IsNotExist(err) {
		return abcerr.Wrap(abcerr.SysError, err, "removing PinPackage.json")
	}
	return nil
}

type pin2KeyFile struct {
	Pin2Key string `json:"pin2Key"`
}

func loadPin2Key(paths AccountPaths) ([]byte, error) {
	var f pin2KeyFile
	if err := loadJSON(paths.Pin2KeyFile(), &f); err != nil {
		return nil, err
	}
	return crypto.DecodeBase58(f.Pin2Key)
}

func savePin2Key(paths AccountPaths, key []byte) error {
	return saveJSON(paths.Pin2KeyFile(), pin2KeyFile{Pin2Key: crypto.EncodeBase58(key)})
}

type recovery2KeyFile struct {
	Recovery2Key string `json:"recovery2Key"`
}

func loadRecovery2Key(paths AccountPaths) ([]byte, error) {
	var f recovery2KeyFile
	if err := loadJSON(paths.Recovery2KeyFile(), &f); err != nil {
		return nil, err
	}
	return crypto.DecodeBase58(f.Recovery2Key)
}

func saveRecovery2Key(paths AccountPaths, key []byte) error {
	return saveJSON(paths.Recovery2KeyFile(), recovery2KeyFile{Recovery2Key: crypto.EncodeBase58(key)})
}

func loadRootKeyBox(paths AccountPaths) (crypto.Box, error) {
	var box crypto.Box
	err := loadJSON(paths.RootKeyFile(), &box)
	return box, err
}

func saveRootKeyBox(paths AccountPaths, box crypto.Box) error {
	return saveJSON(paths.RootKeyFile(), box)
}
