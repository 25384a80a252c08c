// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(otpStatusCmd, otpOnCmd, otpOffCmd, otpResetRequestCmd)
}

var otpStatusCmd = &cobra.Command{
	Use:   "otp-status <user> <pass>",
	Short: "Report whether OTP is required on login",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		store, err := a.store(args[0])
		if err != nil {
			return err
		}
		l, err := login.LoginPassword(context.Background(), a.server, store, args[1])
		if err != nil {
			return err
		}
		enabled, timeoutSeconds, err := login.OtpStatus(context.Background(), l)
		if err != nil {
			return err
		}
		fmt.Printf("enabled: %t, reset timeout: %ds\n", enabled, timeoutSeconds)
		return nil
	},
}

var otpOnCmd = &cobra.Command{
	Use:   "otp-on <user> <pass> <timeout-seconds>",
	Short: "Require OTP on future logins",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeoutSeconds, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return abcerr.Wrap(abcerr.Generic, err, "parsing timeout-seconds")
		}

		a, err := setup()
		if err != nil {
			return err
		}
		store, err := a.store(args[0])
		if err != nil {
			return err
		}
		l, err := login.LoginPassword(context.Background(), a.server, store, args[1])
		if err != nil {
			return err
		}
		if err := login.OtpEnable(context.Background(), l, timeoutSeconds); err != nil {
			return err
		}

		if key := l.Store().OtpKey(); key != nil {
			secret := key.EncodeBase32()
			if err := clipboard.WriteAll(secret); err == nil {
				fmt.Println("OTP secret copied to clipboard")
			}
			fmt.Println("OTP secret:", secret)
		}
		return nil
	},
}

var otpOffCmd = &cobra.Command{
	Use:   "otp-off <user> <pass>",
	Short: "Stop requiring OTP on future logins",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		store, err := a.store(args[0])
		if err != nil {
			return err
		}
		l, err := login.LoginPassword(context.Background(), a.server, store, args[1])
		if err != nil {
			return err
		}
		return login.OtpDisable(context.Background(), l)
	},
}

var otpResetRequestCmd = &cobra.Command{
	Use:   "otp-reset-request <user> <reset-token>",
	Short: "Request an OTP reset using a token surfaced by a failed login",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		store, err := a.store(args[0])
		if err != nil {
			return err
		}
		return login.OtpResetRequest(context.Background(), a.server, store, args[1])
	},
}
