// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"context"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

type updatePasswordRequest struct {
	login.AuthJSON
	CarePackage  login.CarePackage  `json:"carePackage"`
	LoginPackage login.LoginPackage `json:"loginPackage"`
}

// UpdatePassword implements [login.ServerClient].
func (c *Client) UpdatePassword(ctx context.Context, auth login.AuthJSON, care login.CarePackage, pkg login.LoginPackage) error {
	req := updatePasswordRequest{AuthJSON: auth, CarePackage: care, LoginPackage: pkg}
	resp, err := c.request().SetContext(ctx).SetBody(req).Put("/v2/login/password")
	_, mapErr := decode(resp, err)
	return mapErr
}

type updateKeysRequest struct {
	login.AuthJSON
	KeyBox crypto.Box `json:"keyBox"`
}

// UpdateKeys implements [login.ServerClient]: attaches a newly created
// repository's key box to the account's v2 key catalog.
func (c *Client) UpdateKeys(ctx context.Context, auth login.AuthJSON, keyBox crypto.Box) error {
	req := updateKeysRequest{AuthJSON: auth, KeyBox: keyBox}
	resp, err := c.request().SetContext(ctx).SetBody(req).Post("/v2/login/keys")
	_, mapErr := decode(resp, err)
	return mapErr
}
