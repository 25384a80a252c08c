// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
)

// sortIndexKey, archivedKey, and idKey are the fields WalletList itself
// manages inside each wallet's JSON payload. Every other key is opaque
// wallet content (addresses, keys, display metadata) that this package
// stores and returns but never interprets.
const (
	sortIndexKey = "sortIndex"
	archivedKey  = "archived"
	idKey        = "id"
)

// WalletList is a write-through cache over dir/<hash(id)>.json, one
// dataKey-encrypted Box per wallet, named independently of its plaintext id
// (see path) so that listing dir never discloses wallet ids. Mutations land
// on disk before the in-memory cache is updated, so a crash mid-write never
// leaves the cache ahead of disk.
type WalletList struct {
	mu      sync.Mutex
	dir     string
	dataKey []byte
	wallets map[string]map[string]any
}

// WalletListItem is the summary List returns: enough to render and reorder
// a wallet picker without decrypting wallet-specific content.
type WalletListItem struct {
	ID        string
	SortIndex int
	Archived  bool
}

func loadWalletList(dir string, dataKey []byte) (*WalletList, error) {
	wl := &WalletList{dir: dir, dataKey: dataKey, wallets: make(map[string]map[string]any)}
	if err := wl.load(); err != nil {
		return nil, err
	}
	return wl, nil
}

// load (re)scans dir for wallet files, picking up any added since the last
// load and leaving already-cached wallets alone. A wallet's filename never
// reveals its plaintext id (see path), so the only way to discover what a
// file holds is to decrypt it and read the id back out of the payload.
func (wl *WalletList) load() error {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	entries, err := os.ReadDir(wl.dir)
	if err != nil {
		return abcerr.Wrap(abcerr.DirReadError, err, "reading wallets directory %s", wl.dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		payload, err := wl.readFileLocked(filepath.Join(wl.dir, entry.Name()))
		if err != nil {
			continue
		}
		id, ok := payload[idKey].(string)
		if !ok {
			continue
		}
		if _, ok := wl.wallets[id]; ok {
			continue
		}
		wl.wallets[id] = payload
	}
	return nil
}

// path returns the on-disk filename for id: base58(HMAC-SHA256(dataKey,
// id)).json, independent of id's plaintext value so that listing the
// directory never leaks wallet ids.
func (wl *WalletList) path(id string) string {
	digest := crypto.HMACSHA256(wl.dataKey, []byte(id))
	return filepath.Join(wl.dir, crypto.EncodeBase58(digest)+".json")
}

func (wl *WalletList) readFileLocked(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.FileReadError, err, "reading wallet file %s", path)
	}
	var box crypto.Box
	if err := json.Unmarshal(data, &box); err != nil {
		return nil, abcerr.Wrap(abcerr.JsonError, err, "decoding wallet box %s", path)
	}
	plaintext, err := box.Decrypt(wl.dataKey)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.DecryptFailure, err, "decrypting wallet file %s", path)
	}
	var payload map[string]any
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, abcerr.Wrap(abcerr.JsonError, err, "decoding wallet payload %s", path)
	}
	return payload, nil
}

func (wl *WalletList) saveLocked(id string, payload map[string]any) error {
	payload[idKey] = id

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding wallet payload %s", id)
	}
	box, err := crypto.EncryptBox(plaintext, wl.dataKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting wallet %s", id)
	}
	data, err := json.Marshal(box)
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding wallet box %s", id)
	}
	if err := os.WriteFile(wl.path(id), data, 0o600); err != nil {
		return abcerr.Wrap(abcerr.FileOpenError, err, "writing wallet %s", id)
	}
	wl.wallets[id] = payload
	return nil
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// List returns every known wallet's summary, sorted by sortIndex.
func (wl *WalletList) List() []WalletListItem {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	items := make([]WalletListItem, 0, len(wl.wallets))
	for id, payload := range wl.wallets {
		items = append(items, WalletListItem{
			ID:        id,
			SortIndex: asInt(payload[sortIndexKey]),
			Archived:  asBool(payload[archivedKey]),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortIndex < items[j].SortIndex })
	return items
}

// JSON returns a copy of id's full decrypted payload, including whatever
// wallet-specific keys were passed to Insert.
func (wl *WalletList) JSON(id string) (map[string]any, error) {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	payload, ok := wl.wallets[id]
	if !ok {
		return nil, abcerr.New(abcerr.FileDoesNotExist, "no wallet %q", id)
	}
	clone := make(map[string]any, len(payload))
	for k, v := range payload {
		clone[k] = v
	}
	return clone, nil
}

// Insert adds a new wallet with the given id, merging keys (wallet-specific
// content this package never interprets) with a freshly assigned sortIndex
// and archived=false. Returns an error if id already exists.
func (wl *WalletList) Insert(id string, keys map[string]any) error {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	if _, ok := wl.wallets[id]; ok {
		return abcerr.New(abcerr.Generic, "wallet %q already exists", id)
	}

	next := 0
	for _, payload := range wl.wallets {
		if idx := asInt(payload[sortIndexKey]); idx >= next {
			next = idx + 1
		}
	}

	payload := make(map[string]any, len(keys)+2)
	for k, v := range keys {
		payload[k] = v
	}
	payload[sortIndexKey] = next
	payload[archivedKey] = false

	return wl.saveLocked(id, payload)
}

// Remove deletes id's wallet file and forgets it.
func (wl *WalletList) Remove(id string) error {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	if err := os.Remove(wl.path(id)); err != nil && !os.IsNotExist(err) {
		return abcerr.Wrap(abcerr.FileOpenError, err, "removing wallet %s", id)
	}
	delete(wl.wallets, id)
	return nil
}

// Reorder moves id to sortIndex.
func (wl *WalletList) Reorder(id string, index int) error {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	payload, ok := wl.wallets[id]
	if !ok {
		return abcerr.New(abcerr.FileDoesNotExist, "no wallet %q", id)
	}
	updated := make(map[string]any, len(payload))
	for k, v := range payload {
		updated[k] = v
	}
	updated[sortIndexKey] = index
	return wl.saveLocked(id, updated)
}

// ArchiveSet marks id archived or unarchived.
func (wl *WalletList) ArchiveSet(id string, archived bool) error {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	payload, ok := wl.wallets[id]
	if !ok {
		return abcerr.New(abcerr.FileDoesNotExist, "no wallet %q", id)
	}
	updated := make(map[string]any, len(payload))
	for k, v := range payload {
		updated[k] = v
	}
	updated[archivedKey] = archived
	return wl.saveLocked(id, updated)
}

// Archived reports whether id is archived.
func (wl *WalletList) Archived(id string) (bool, error) {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	payload, ok := wl.wallets[id]
	if !ok {
		return false, abcerr.New(abcerr.FileDoesNotExist, "no wallet %q", id)
	}
	return asBool(payload[archivedKey]), nil
}
