// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"bytes"
	"context"
	"strconv"
	"sync"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
)

// fakeAccount is one account's server-side state, mirroring the columns a
// real loginserver would keep in its account table.
type fakeAccount struct {
	userID       []byte
	passwordAuth []byte
	care         CarePackage
	pkg          LoginPackage
	keyBoxes     []crypto.Box

	pinAuthID string
	lpin1     []byte
	ePink     crypto.Box
	pin2ID    []byte
	pin2Auth  []byte
	pin2Box   *crypto.Box

	recovery2ID    []byte
	recovery2Auth  [][]byte
	recovery2Box   *crypto.Box
	question2Box   *crypto.Box
	questions      []string

	otpKeyBase32    string
	otpTimeout      int64
	activated       bool
	uploadedLogs    [][]byte
}

// fakeServer is a hand-written in-memory ServerClient fake driving the
// login flow tests, per the package's test-tooling note: flows are
// parameterized on ServerClient precisely so they can be exercised without
// a network.
type fakeServer struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount // keyed by userID

	lobbies map[string]Lobby
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		accounts: make(map[string]*fakeAccount),
		lobbies:  make(map[string]Lobby),
	}
}

func (f *fakeServer) findByUserID(userID []byte) *fakeAccount {
	for _, a := range f.accounts {
		if bytes.Equal(a.userID, userID) {
			return a
		}
	}
	return nil
}

func (f *fakeServer) findByPin2ID(pin2ID []byte) *fakeAccount {
	for _, a := range f.accounts {
		if a.pin2ID != nil && bytes.Equal(a.pin2ID, pin2ID) {
			return a
		}
	}
	return nil
}

func (f *fakeServer) findByRecovery2ID(recovery2ID []byte) *fakeAccount {
	for _, a := range f.accounts {
		if a.recovery2ID != nil && bytes.Equal(a.recovery2ID, recovery2ID) {
			return a
		}
	}
	return nil
}

func (f *fakeServer) Login(ctx context.Context, auth AuthJSON) (LoginReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var a *fakeAccount
	switch {
	case auth.Pin2ID != nil:
		a = f.findByPin2ID(auth.Pin2ID)
		if a == nil || !bytes.Equal(a.pin2Auth, auth.Pin2Auth) {
			return LoginReply{}, abcerr.New(abcerr.BadPassword, "bad pin2 credential")
		}
	case auth.Recovery2ID != nil:
		a = f.findByRecovery2ID(auth.Recovery2ID)
		if a == nil {
			return LoginReply{}, abcerr.New(abcerr.AccountDoesNotExist, "no such recovery2 account")
		}
		if auth.Recovery2Auth != nil {
			if len(auth.Recovery2Auth) != len(a.recovery2Auth) {
				return LoginReply{}, abcerr.New(abcerr.InvalidAnswers, "wrong number of recovery answers")
			}
			for i := range auth.Recovery2Auth {
				if !bytes.Equal(auth.Recovery2Auth[i], a.recovery2Auth[i]) {
					return LoginReply{}, abcerr.New(abcerr.InvalidAnswers, "incorrect recovery answers")
				}
			}
		}
	case auth.UserID != nil:
		a = f.findByUserID(auth.UserID)
		if a == nil {
			return LoginReply{}, abcerr.New(abcerr.AccountDoesNotExist, "no such account")
		}
	default:
		return LoginReply{}, abcerr.New(abcerr.Generic, "empty authenticator")
	}

	return LoginReply{
		CarePackage:  a.care,
		LoginPackage: a.pkg,
		KeyBoxes:     append([]crypto.Box(nil), a.keyBoxes...),
		SyncKeyBox:   a.pkg.SyncKeyBox,
		Pin2Box:      a.pin2Box,
		Recovery2Box: a.recovery2Box,
		Question2Box: a.question2Box,
	}, nil
}

func (f *fakeServer) FetchCarePackage(ctx context.Context, userID []byte) (CarePackage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(userID)
	if a == nil {
		return CarePackage{}, abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	return a.care, nil
}

func (f *fakeServer) CreateAccount(ctx context.Context, userID, passwordAuth []byte, care CarePackage, pkg LoginPackage, syncKeyBox crypto.Box) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findByUserID(userID) != nil {
		return abcerr.New(abcerr.AccountAlreadyExists, "account already exists")
	}
	f.accounts[string(userID)] = &fakeAccount{
		userID:       append([]byte(nil), userID...),
		passwordAuth: append([]byte(nil), passwordAuth...),
		care:         care,
		pkg:          pkg,
	}
	return nil
}

func (f *fakeServer) ActivateAccount(ctx context.Context, userID []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(userID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.activated = true
	return nil
}

func (f *fakeServer) UpgradeAccount(ctx context.Context, auth AuthJSON, rootKeyBox, mnemonicBox, dataKeyBox crypto.Box) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findByUserID(auth.UserID) == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	return nil
}

func (f *fakeServer) UpdatePassword(ctx context.Context, auth AuthJSON, care CarePackage, pkg LoginPackage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.care = care
	a.pkg = pkg
	a.passwordAuth = append([]byte(nil), auth.PasswordAuth...)
	return nil
}

func (f *fakeServer) UpdateKeys(ctx context.Context, auth AuthJSON, keyBox crypto.Box) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.keyBoxes = append(a.keyBoxes, keyBox)
	return nil
}

func (f *fakeServer) UpdatePin2(ctx context.Context, auth AuthJSON, pin2Box, pin2KeyBox crypto.Box) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.pin2ID = append([]byte(nil), auth.Pin2ID...)
	a.pin2Auth = append([]byte(nil), auth.Pin2Auth...)
	box := pin2Box
	a.pin2Box = &box
	return nil
}

func (f *fakeServer) DeletePin2(ctx context.Context, auth AuthJSON) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.pin2ID, a.pin2Auth, a.pin2Box = nil, nil, nil
	return nil
}

func (f *fakeServer) FetchPinPackage(ctx context.Context, pinAuthID string, lpin1 []byte) (PinPackage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.pinAuthID == pinAuthID {
			if a.lpin1 != nil && !bytes.Equal(a.lpin1, lpin1) {
				return PinPackage{}, abcerr.New(abcerr.BadPassword, "incorrect PIN")
			}
			return PinPackage{PinBox: a.ePink, PinAuthID: a.pinAuthID}, nil
		}
	}
	return PinPackage{}, abcerr.New(abcerr.AccountDoesNotExist, "no such PIN package")
}

func (f *fakeServer) UpdatePinPackage(ctx context.Context, pkg PinPackage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.pinAuthID == pkg.PinAuthID {
			a.ePink = pkg.PinBox
			return nil
		}
	}
	// First-time setup: adopt the single account still missing a
	// pinAuthID. Real servers key this off the authenticated session
	// instead, which this in-memory fake has no wire format for.
	var unclaimed *fakeAccount
	for _, a := range f.accounts {
		if a.pinAuthID == "" {
			if unclaimed != nil {
				return abcerr.New(abcerr.Generic, "ambiguous PIN package adoption in fake server")
			}
			unclaimed = a
		}
	}
	if unclaimed == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such PIN package")
	}
	unclaimed.pinAuthID = pkg.PinAuthID
	unclaimed.ePink = pkg.PinBox
	return nil
}

func (f *fakeServer) UpdateRecovery2(ctx context.Context, auth AuthJSON, recovery2Box crypto.Box, questions []string, question2Box crypto.Box) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.recovery2ID = append([]byte(nil), auth.Recovery2ID...)
	a.recovery2Auth = auth.Recovery2Auth
	box := recovery2Box
	q2 := question2Box
	a.recovery2Box = &box
	a.question2Box = &q2
	a.questions = questions
	return nil
}

func (f *fakeServer) DeleteRecovery2(ctx context.Context, auth AuthJSON) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.recovery2ID, a.recovery2Auth, a.recovery2Box, a.question2Box = nil, nil, nil, nil
	return nil
}

func (f *fakeServer) OtpEnable(ctx context.Context, auth AuthJSON, keyBase32 string, timeoutSeconds int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.otpKeyBase32 = keyBase32
	a.otpTimeout = timeoutSeconds
	return nil
}

func (f *fakeServer) OtpDisable(ctx context.Context, auth AuthJSON) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.otpKeyBase32 = ""
	return nil
}

func (f *fakeServer) OtpStatus(ctx context.Context, auth AuthJSON) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return false, 0, abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	return a.otpKeyBase32 != "", a.otpTimeout, nil
}

func (f *fakeServer) OtpReset(ctx context.Context, userID []byte, resetToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(userID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.otpKeyBase32 = ""
	return nil
}

func (f *fakeServer) UploadDebugLog(ctx context.Context, auth AuthJSON, log []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(auth.UserID)
	if a == nil {
		return abcerr.New(abcerr.AccountDoesNotExist, "no such account")
	}
	a.uploadedLogs = append(a.uploadedLogs, log)
	return nil
}

func (f *fakeServer) CreateLobby(ctx context.Context, request AccountRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := crypto.EncodeBase16([]byte(request.Type + request.DisplayName + strconv.Itoa(len(f.lobbies))))
	f.lobbies[id] = Lobby{AccountRequest: request}
	return id, nil
}

func (f *fakeServer) FetchLobby(ctx context.Context, lobbyID string) (Lobby, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lobby, ok := f.lobbies[lobbyID]
	if !ok {
		return Lobby{}, abcerr.New(abcerr.FileDoesNotExist, "no such lobby")
	}
	return lobby, nil
}

func (f *fakeServer) UpdateLobby(ctx context.Context, lobbyID string, lobby Lobby) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lobbies[lobbyID]; !ok {
		return abcerr.New(abcerr.FileDoesNotExist, "no such lobby")
	}
	f.lobbies[lobbyID] = lobby
	return nil
}

// provisionPin1 seeds a's legacy v1 PIN fields directly, standing in for an
// older client's LoginPin1Set having already run.
func (f *fakeServer) provisionPin1(userID []byte, pinAuthID string, lpin1 []byte, ePink crypto.Box) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.findByUserID(userID)
	a.pinAuthID = pinAuthID
	a.lpin1 = lpin1
	a.ePink = ePink
}
