// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"context"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

type createAccountRequest struct {
	login.AuthJSON
	CarePackage  login.CarePackage  `json:"carePackage"`
	LoginPackage login.LoginPackage `json:"loginPackage"`
	SyncKeyBox   crypto.Box         `json:"syncKeyBox"`
}

// CreateAccount implements [login.ServerClient].
func (c *Client) CreateAccount(ctx context.Context, userID, passwordAuth []byte, care login.CarePackage, pkg login.LoginPackage, syncKeyBox crypto.Box) error {
	req := createAccountRequest{
		AuthJSON:     login.AuthJSON{UserID: userID, PasswordAuth: passwordAuth},
		CarePackage:  care,
		LoginPackage: pkg,
		SyncKeyBox:   syncKeyBox,
	}
	resp, err := c.request().SetContext(ctx).SetBody(req).Post("/v1/account/create")
	_, mapErr := decode(resp, err)
	return mapErr
}

// ActivateAccount implements [login.ServerClient].
func (c *Client) ActivateAccount(ctx context.Context, userID []byte) error {
	resp, err := c.request().SetContext(ctx).
		SetBody(login.AuthJSON{UserID: userID}).
		Post("/v1/account/activate")
	_, mapErr := decode(resp, err)
	return mapErr
}

type upgradeAccountRequest struct {
	login.AuthJSON
	RootKeyBox  crypto.Box `json:"rootKeyBox"`
	MnemonicBox crypto.Box `json:"mnemonicBox"`
	DataKeyBox  crypto.Box `json:"syncDataKeyBox"`
}

// UpgradeAccount implements [login.ServerClient].
func (c *Client) UpgradeAccount(ctx context.Context, auth login.AuthJSON, rootKeyBox, mnemonicBox, dataKeyBox crypto.Box) error {
	req := upgradeAccountRequest{AuthJSON: auth, RootKeyBox: rootKeyBox, MnemonicBox: mnemonicBox, DataKeyBox: dataKeyBox}
	resp, err := c.request().SetContext(ctx).SetBody(req).Post("/v1/account/upgrade")
	_, mapErr := decode(resp, err)
	return mapErr
}

// FetchCarePackage implements [login.ServerClient].
func (c *Client) FetchCarePackage(ctx context.Context, userID []byte) (login.CarePackage, error) {
	resp, err := c.request().SetContext(ctx).
		SetBody(login.AuthJSON{UserID: userID}).
		Post("/v1/account/carepackage/get")
	r, mapErr := decode(resp, err)
	if mapErr != nil {
		return login.CarePackage{}, mapErr
	}

	var care login.CarePackage
	if err := unmarshalResults(r, &care); err != nil {
		return login.CarePackage{}, err
	}
	return care, nil
}

// Login implements [login.ServerClient]: the v2 account-resolution
// endpoint that returns the full care/login package bundle plus the key
// catalog in one round trip.
func (c *Client) Login(ctx context.Context, auth login.AuthJSON) (login.LoginReply, error) {
	resp, err := c.request().SetContext(ctx).SetBody(auth).Post("/v2/login")
	r, mapErr := decode(resp, err)
	if mapErr != nil {
		return login.LoginReply{}, mapErr
	}

	var lr login.LoginReply
	if err := unmarshalResults(r, &lr); err != nil {
		return login.LoginReply{}, err
	}
	return lr, nil
}
