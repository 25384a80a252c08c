// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/procctx"
)

// AccountPaths is the directory structure this package owns for a single
// account, rooted at <rootDir>/<AccountsDirName>/Account<N>/.
type AccountPaths struct {
	Dir string
}

func (p AccountPaths) join(name string) string {
	return filepath.Join(p.Dir, name)
}

func (p AccountPaths) UserNameFile() string      { return p.join("UserName.json") }
func (p AccountPaths) OtpKeyFile() string        { return p.join("OtpKey.json") }
func (p AccountPaths) CarePackageFile() string   { return p.join("CarePackage.json") }
func (p AccountPaths) LoginPackageFile() string  { return p.join("LoginPackage.json") }
func (p AccountPaths) PinPackageFile() string    { return p.join("PinPackage.json") }
func (p AccountPaths) Pin2KeyFile() string       { return p.join("pin2Key") }
func (p AccountPaths) Recovery2KeyFile() string  { return p.join("Recovery2Key.json") }
func (p AccountPaths) RootKeyFile() string       { return p.join("RootKey.json") }
func (p AccountPaths) ReposFile() string         { return p.join("Repos.json") }
func (p AccountPaths) LoginStashFile() string    { return p.join("LoginStash.json") }
func (p AccountPaths) WalletsDir() string        { return p.join("Wallets") }
func (p AccountPaths) PluginsDir() string        { return p.join("Plugins") }
func (p AccountPaths) SyncDir() string           { return p.join("sync") }

// accountDirPrefix is the "Account<N>" subdirectory naming scheme.
const accountDirPrefix = "Account"

// paths returns the AccountPaths for s. If no account directory exists yet
// for s's username and create is true, the next unused Account<N>
// subdirectory is allocated and UserName.json is written. If create is
// false and no directory exists, returns abcerr.FileDoesNotExist.
func (s *Store) paths(create bool) (AccountPaths, error) {
	accountsRoot := filepath.Join(s.rootDir, s.accountsDirName)

	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(accountsRoot, 0o700); err != nil {
		return AccountPaths{}, abcerr.Wrap(abcerr.SysError, err, "creating accounts root %s", accountsRoot)
	}

	entries, err := os.ReadDir(accountsRoot)
	if err != nil {
		return AccountPaths{}, abcerr.Wrap(abcerr.DirReadError, err, "reading accounts root %s", accountsRoot)
	}

	highest := -1
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), accountDirPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), accountDirPrefix))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}

		paths := AccountPaths{Dir: filepath.Join(accountsRoot, entry.Name())}
		matches, err := accountDirMatchesUsername(paths, s.username)
		if err != nil {
			continue
		}
		if matches {
			return paths, nil
		}
	}

	if !create {
		return AccountPaths{}, abcerr.New(abcerr.FileDoesNotExist, "no account directory for %q", s.username)
	}

	next := highest + 1
	dir := filepath.Join(accountsRoot, fmt.Sprintf("%s%d", accountDirPrefix, next))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return AccountPaths{}, abcerr.Wrap(abcerr.SysError, err, "creating account directory %s", dir)
	}

	paths := AccountPaths{Dir: dir}
	if err := writeUserNameFile(paths, s.username); err != nil {
		return AccountPaths{}, err
	}
	return paths, nil
}

type userNameFile struct {
	UserName string `json:"userName"`
}

func writeUserNameFile(paths AccountPaths, username string) error {
	data, err := json.Marshal(userNameFile{UserName: username})
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding UserName.json")
	}
	if err := os.WriteFile(paths.UserNameFile(), data, 0o600); err != nil {
		return abcerr.Wrap(abcerr.FileOpenError, err, "writing %s", paths.UserNameFile())
	}
	return nil
}

func accountDirMatchesUsername(paths AccountPaths, username string) (bool, error) {
	data, err := os.ReadFile(paths.UserNameFile())
	if err != nil {
		return false, err
	}
	var f userNameFile
	if err := json.Unmarshal(data, &f); err != nil {
		return false, err
	}
	return f.UserName == username, nil
}

// ListUsernames returns every username with an account directory under
// ctx's accounts root, in deterministic order, sorted by Account<N>
// directory name.
func ListUsernames(ctx *procctx.Context) ([]string, error) {
	accountsRoot := filepath.Join(ctx.RootDir, ctx.AccountsDirName())

	dirs, err := sortedAccountDirs(accountsRoot)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.DirReadError, err, "reading accounts root %s", accountsRoot)
	}

	usernames := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		paths := AccountPaths{Dir: filepath.Join(accountsRoot, dir)}
		data, err := os.ReadFile(paths.UserNameFile())
		if err != nil {
			continue
		}
		var f userNameFile
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		usernames = append(usernames, f.UserName)
	}
	return usernames, nil
}

// sortedAccountDirs is a small helper used by account-list style callers to
// enumerate every account directory in deterministic order.
func sortedAccountDirs(accountsRoot string) ([]string, error) {
	entries, err := os.ReadDir(accountsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), accountDirPrefix) {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
