// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"context"

	"github.com/abcwallet/abc-core/internal/login"
)

type otpEnableRequest struct {
	login.AuthJSON
	OtpSecret  string `json:"otp_secret"`
	OtpTimeout int64  `json:"otp_timeout"`
}

// OtpEnable implements [login.ServerClient].
func (c *Client) OtpEnable(ctx context.Context, auth login.AuthJSON, keyBase32 string, timeoutSeconds int64) error {
	req := otpEnableRequest{AuthJSON: auth, OtpSecret: keyBase32, OtpTimeout: timeoutSeconds}
	resp, err := c.request().SetContext(ctx).SetBody(req).Post("/v1/otp/on")
	_, mapErr := decode(resp, err)
	return mapErr
}

// OtpDisable implements [login.ServerClient].
func (c *Client) OtpDisable(ctx context.Context, auth login.AuthJSON) error {
	resp, err := c.request().SetContext(ctx).SetBody(auth).Post("/v1/otp/off")
	_, mapErr := decode(resp, err)
	return mapErr
}

type otpStatusResult struct {
	On      bool  `json:"on"`
	Timeout int64 `json:"otp_timeout"`
}

// OtpStatus implements [login.ServerClient].
func (c *Client) OtpStatus(ctx context.Context, auth login.AuthJSON) (bool, int64, error) {
	resp, err := c.request().SetContext(ctx).SetBody(auth).Post("/v1/otp/status")
	r, mapErr := decode(resp, err)
	if mapErr != nil {
		return false, 0, mapErr
	}

	var res otpStatusResult
	if err := unmarshalResults(r, &res); err != nil {
		return false, 0, err
	}
	return res.On, res.Timeout, nil
}

// OtpReset implements [login.ServerClient]: requests that the server clear
// OTP enforcement for userID once resetToken's timeout has elapsed.
func (c *Client) OtpReset(ctx context.Context, userID []byte, resetToken string) error {
	resp, err := c.request().SetContext(ctx).
		SetBody(map[string]any{
			"userId":         userID,
			"otp_reset_auth": resetToken,
		}).
		Post("/v1/otp/reset")
	_, mapErr := decode(resp, err)
	return mapErr
}
