// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"context"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

type updateRecovery2Request struct {
	login.AuthJSON
	Questions    []string   `json:"questions"`
	Recovery2Box crypto.Box `json:"recovery2Box"`
	Question2Box crypto.Box `json:"question2Box"`
}

// UpdateRecovery2 implements [login.ServerClient]: provisions or rotates
// the account's v2 recovery-question credential.
func (c *Client) UpdateRecovery2(ctx context.Context, auth login.AuthJSON, recovery2Box crypto.Box, questions []string, question2Box crypto.Box) error {
	req := updateRecovery2Request{AuthJSON: auth, Questions: questions, Recovery2Box: recovery2Box, Question2Box: question2Box}
	resp, err := c.request().SetContext(ctx).SetBody(req).Put("/v2/login/recovery2")
	_, mapErr := decode(resp, err)
	return mapErr
}

// DeleteRecovery2 implements [login.ServerClient].
func (c *Client) DeleteRecovery2(ctx context.Context, auth login.AuthJSON) error {
	resp, err := c.request().SetContext(ctx).SetBody(auth).Delete("/v2/login/recovery2")
	_, mapErr := decode(resp, err)
	return mapErr
}
