// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"context"

	abcotp "github.com/abcwallet/abc-core/internal/otp"
)

// OtpStatus reports whether OTP is currently required on login and, if so,
// the server's reset-request timeout window.
func OtpStatus(ctx context.Context, l *Login) (enabled bool, timeoutSeconds int64, err error) {
	return l.server.OtpStatus(ctx, LoginSet(l))
}

// OtpEnable installs a fresh OTP key on l (if none exists yet) and asks the
// server to require it on future logins, with the given reset-timeout
// window in seconds.
func OtpEnable(ctx context.Context, l *Login, timeoutSeconds int64) error {
	key := l.store.OtpKey()
	if key == nil {
		generated, err := abcotp.New(abcotp.DefaultKeySize)
		if err != nil {
			return err
		}
		if err := l.store.OtpKeySet(generated); err != nil {
			return err
		}
		key = &generated
	}

	return l.server.OtpEnable(ctx, LoginSet(l), key.EncodeBase32(), timeoutSeconds)
}

// OtpDisable asks the server to stop requiring OTP on future logins for l.
func OtpDisable(ctx context.Context, l *Login) error {
	return l.server.OtpDisable(ctx, LoginSet(l))
}

// OtpResetRequest submits resetToken, as surfaced by an InvalidOTP error,
// asking the server to clear OTP enforcement for store's account.
func OtpResetRequest(ctx context.Context, server ServerClient, store *Store, resetToken string) error {
	return server.OtpReset(ctx, store.UserID(), resetToken)
}
