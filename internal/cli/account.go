// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(accountAvailableCmd, accountCreateCmd, accountListCmd,
		accountDecryptCmd, accountEncryptCmd, signInCmd)
}

var accountAvailableCmd = &cobra.Command{
	Use:   "account-available <user>",
	Short: "Report whether a username has no account registered yet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		store, err := a.store(args[0])
		if err != nil {
			return err
		}

		_, err = a.server.FetchCarePackage(context.Background(), store.UserID())
		switch {
		case err == nil:
			fmt.Println("account is taken")
		case abcerr.Is(err, abcerr.AccountDoesNotExist):
			fmt.Println("account is available")
		default:
			return err
		}
		return nil
	},
}

var accountCreateCmd = &cobra.Command{
	Use:   "account-create <user> <pass>",
	Short: "Provision a brand-new account",
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
		_, err = login.CreateNew(context.Background(), a.server, store, args[1])
		return err
	},
}

var signInCmd = &cobra.Command{
	Use:   "sign-in <user> <pass>",
	Short: "Authenticate with a username and password",
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
		if _, err := login.LoginPassword(context.Background(), a.server, store, args[1]); err != nil {
			return err
		}
		fmt.Println("signed in")
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "account-list",
	Short: "List every account username under the account root",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		usernames, err := login.ListUsernames(a.ctx)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(usernames, "\n"))
		return nil
	},
}

var accountEncryptCmd = &cobra.Command{
	Use:   "account-encrypt <user> <pass> <file>",
	Short: "Encrypt a file under the account's dataKey and print the resulting box as JSON",
	Args:  cobra.ExactArgs(3),
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

		plaintext, err := os.ReadFile(args[2])
		if err != nil {
			return abcerr.Wrap(abcerr.FileReadError, err, "reading %s", args[2])
		}
		box, err := crypto.EncryptBox(plaintext, l.DataKey())
		if err != nil {
			return err
		}
		out, err := json.Marshal(box)
		if err != nil {
			return abcerr.Wrap(abcerr.JsonError, err, "encoding box")
		}
		fmt.Println(string(out))
		return nil
	},
}

var accountDecryptCmd = &cobra.Command{
	Use:   "account-decrypt <user> <pass> <file>",
	Short: "Decrypt a JSON box file under the account's dataKey and print the plaintext",
	Args:  cobra.ExactArgs(3),
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

		data, err := os.ReadFile(args[2])
		if err != nil {
			return abcerr.Wrap(abcerr.FileReadError, err, "reading %s", args[2])
		}
		var box crypto.Box
		if err := json.Unmarshal(data, &box); err != nil {
			return abcerr.Wrap(abcerr.JsonError, err, "decoding box file %s", args[2])
		}
		plaintext, err := box.Decrypt(l.DataKey())
		if err != nil {
			return abcerr.Wrap(abcerr.DecryptFailure, err, "decrypting %s", args[2])
		}
		os.Stdout.Write(plaintext)
		return nil
	},
}
