// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"context"
	"encoding/base64"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

type updatePin2Request struct {
	login.AuthJSON
	Pin2Box    crypto.Box `json:"pin2Box"`
	Pin2KeyBox crypto.Box `json:"pin2KeyBox"`
}

// UpdatePin2 implements [login.ServerClient]: provisions or rotates the
// account's v2 PIN credential.
func (c *Client) UpdatePin2(ctx context.Context, auth login.AuthJSON, pin2Box, pin2KeyBox crypto.Box) error {
	req := updatePin2Request{AuthJSON: auth, Pin2Box: pin2Box, Pin2KeyBox: pin2KeyBox}
	resp, err := c.request().SetContext(ctx).SetBody(req).Put("/v2/login/pin2")
	_, mapErr := decode(resp, err)
	return mapErr
}

// DeletePin2 implements [login.ServerClient].
func (c *Client) DeletePin2(ctx context.Context, auth login.AuthJSON) error {
	resp, err := c.request().SetContext(ctx).SetBody(auth).Delete("/v2/login/pin2")
	_, mapErr := decode(resp, err)
	return mapErr
}

type pinPackageResult struct {
	PinPackage string `json:"pin_package"`
}

// FetchPinPackage implements [login.ServerClient]: the legacy v1 endpoint
// that resolves an account by its PIN auth-ID rather than its user-ID, so
// a device that only remembers a PIN can still log in.
func (c *Client) FetchPinPackage(ctx context.Context, pinAuthID string, lpin1 []byte) (login.PinPackage, error) {
	resp, err := c.request().SetContext(ctx).
		SetBody(map[string]string{"did": pinAuthID, "lpin1": base64.StdEncoding.EncodeToString(lpin1)}).
		Post("/v1/account/pinpackage/get")
	r, mapErr := decode(resp, err)
	if mapErr != nil {
		return login.PinPackage{}, mapErr
	}

	var res pinPackageResult
	if err := unmarshalResults(r, &res); err != nil {
		return login.PinPackage{}, err
	}

	var pkg login.PinPackage
	if err := unmarshalJSONString(res.PinPackage, &pkg); err != nil {
		return login.PinPackage{}, err
	}
	return pkg, nil
}

// UpdatePinPackage implements [login.ServerClient]: uploads the legacy v1
// PIN package so other devices keep working until they're upgraded to PIN
// v2.
func (c *Client) UpdatePinPackage(ctx context.Context, pkg login.PinPackage) error {
	pinPackage, err := marshalJSONString(pkg)
	if err != nil {
		return err
	}

	resp, sendErr := c.request().SetContext(ctx).
		SetBody(map[string]any{
			"did":         pkg.PinAuthID,
			"pin_package": pinPackage,
			"ali":         pkg.Expires,
		}).
		Post("/v1/account/pinpackage/update")
	_, mapErr := decode(resp, sendErr)
	return mapErr
}
