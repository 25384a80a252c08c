// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(edgeLoginRequestCmd, edgeLoginApproveCmd, edgeLoginPollCmd)
}

var edgeLoginRequestCmd = &cobra.Command{
	Use:   "edge-login-request <user> <repo-type> <display-name>",
	Short: "Start an edge-login lobby and print its QR code and private key",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		if _, err := a.store(args[0]); err != nil {
			return err
		}

		lobbyID, privateKey, err := login.RequestEdgeLogin(context.Background(), a.server, args[1], args[2])
		if err != nil {
			return err
		}

		qr, err := qrcode.New(lobbyID, qrcode.Medium)
		if err == nil {
			fmt.Println(qr.ToString(false))
		}

		fmt.Println("lobby:", lobbyID)
		fmt.Println("private key:", crypto.EncodeBase58(privateKey))
		return nil
	},
}

var edgeLoginApproveCmd = &cobra.Command{
	Use:   "edge-login-approve <user> <pass> <lobby> [pin]",
	Short: "Approve a pending edge-login lobby from the account's device",
	Args:  cobra.RangeArgs(3, 4),
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

		var pin string
		if len(args) == 4 {
			pin = args[3]
		}
		if err := login.ApproveEdgeLogin(context.Background(), l, a.server, args[2], pin); err != nil {
			return err
		}
		fmt.Println("approved")
		return nil
	},
}

var edgeLoginPollCmd = &cobra.Command{
	Use:   "edge-login-poll <lobby> <private-key>",
	Short: "Poll a lobby until the approving device replies",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		privateKey, err := crypto.DecodeBase58(args[1])
		if err != nil {
			return abcerr.Wrap(abcerr.Generic, err, "decoding private key")
		}

		const pollInterval = time.Second
		const pollTimeout = 2 * time.Minute
		deadline := time.Now().Add(pollTimeout)

		for {
			result, err := login.PollEdgeLogin(context.Background(), a.server, args[0], privateKey)
			if err == nil {
				fmt.Println("username:", result.Username)
				fmt.Println("dataKey:", result.DataKey)
				fmt.Println("syncKey:", result.SyncKey)
				if result.PIN != "" {
					fmt.Println("pin:", result.PIN)
				}
				return nil
			}
			if !abcerr.Is(err, abcerr.FileDoesNotExist) {
				return err
			}
			if time.Now().After(deadline) {
				return abcerr.New(abcerr.Generic, "timed out waiting for edge-login approval")
			}
			time.Sleep(pollInterval)
		}
	},
}
