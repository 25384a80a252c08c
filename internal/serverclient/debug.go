// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"context"

	"github.com/abcwallet/abc-core/internal/login"
)

type uploadDebugLogRequest struct {
	login.AuthJSON
	Log []byte `json:"log"`
}

// UploadDebugLog implements [login.ServerClient]. Diagnostics are
// best-effort: a failed upload is logged here so callers that choose to
// ignore the returned error still leave a trace.
func (c *Client) UploadDebugLog(ctx context.Context, auth login.AuthJSON, log []byte) error {
	req := uploadDebugLogRequest{AuthJSON: auth, Log: log}
	resp, err := c.request().SetContext(ctx).SetBody(req).Post("/v1/account/debug")
	_, mapErr := decode(resp, err)
	if mapErr != nil && c.log != nil {
		c.log.Warn().Err(mapErr).Msg("debug log upload failed")
	}
	return mapErr
}
