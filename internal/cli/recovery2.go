// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recovery2QuestionsCmd, recovery2KeyCmd, recovery2LoginCmd,
		recovery2ChangePasswordCmd, recovery2SetupCmd)
}

var recovery2QuestionsCmd = &cobra.Command{
	Use:   "recovery2-questions <user> <recovery2Key>",
	Short: "Print the recovery questions for a recovery2Key",
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
		recovery2Key, err := crypto.DecodeBase58(args[1])
		if err != nil {
			return abcerr.Wrap(abcerr.Generic, err, "decoding recovery2Key")
		}
		questions, err := login.Recovery2Questions(context.Background(), a.server, store, recovery2Key)
		if err != nil {
			return err
		}
		for _, q := range questions {
			fmt.Println(q)
		}
		return nil
	},
}

var recovery2KeyCmd = &cobra.Command{
	Use:   "recovery2-key <user> <pass>",
	Short: "Authenticate with a password and print the account's recovery2Key",
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
		recovery2Key, err := login.Recovery2Key(l)
		if err != nil {
			return err
		}
		encoded := crypto.EncodeBase58(recovery2Key)
		if err := clipboard.WriteAll(encoded); err == nil {
			fmt.Println("recovery2Key copied to clipboard")
		}
		fmt.Println("recovery2Key:", encoded)
		return nil
	},
}

var recovery2LoginCmd = &cobra.Command{
	Use:   "recovery2-login <user> <recovery2Key> <answer>...",
	Short: "Authenticate with a recovery2Key and its ordered answers",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		store, err := a.store(args[0])
		if err != nil {
			return err
		}
		recovery2Key, err := crypto.DecodeBase58(args[1])
		if err != nil {
			return abcerr.Wrap(abcerr.Generic, err, "decoding recovery2Key")
		}
		_, err = login.LoginRecovery2(context.Background(), a.server, store, recovery2Key, args[2:])
		if err != nil {
			return err
		}
		fmt.Println("signed in")
		return nil
	},
}

var recovery2ChangePasswordCmd = &cobra.Command{
	Use:   "recovery2-change-password <user> <recovery2Key> <new-pass> <answer>...",
	Short: "Authenticate with a recovery2Key and set a new password",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		store, err := a.store(args[0])
		if err != nil {
			return err
		}
		recovery2Key, err := crypto.DecodeBase58(args[1])
		if err != nil {
			return abcerr.Wrap(abcerr.Generic, err, "decoding recovery2Key")
		}
		l, err := login.LoginRecovery2(context.Background(), a.server, store, recovery2Key, args[3:])
		if err != nil {
			return err
		}
		return login.ChangePassword(context.Background(), l, args[2])
	},
}

var recovery2SetupCmd = &cobra.Command{
	Use:   "recovery2-setup <user> <pass> [<question> <answer>]...",
	Short: "Configure recovery2 questions and answers as ordered pairs",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs := args[2:]
		if len(pairs)%2 != 0 {
			return abcerr.New(abcerr.Generic, "questions and answers must be given in pairs")
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

		questions := make([]string, 0, len(pairs)/2)
		answers := make([]string, 0, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			questions = append(questions, pairs[i])
			answers = append(answers, pairs[i+1])
		}

		recovery2Key, err := login.Recovery2Setup(context.Background(), l, questions, answers)
		if err != nil {
			return err
		}
		fmt.Println("Please save the following key:", crypto.EncodeBase58(recovery2Key))
		return nil
	},
}
