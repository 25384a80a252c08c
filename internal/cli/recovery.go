// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/abcwallet/abc-core/internal/login"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recoveryQuestionsCmd, recoveryQuestionChoicesCmd,
		recoveryLoginCmd, recoveryChangePasswordCmd, recoverySetupCmd)
}

// recoveryQuestionChoicesList is the canonical recovery-question prompt set
// offered during recovery-setup. The original server-fetched choice list is
// out of scope here (no question-choices endpoint exists in this system's
// wire contract); this fixed set plays the same "pick from a menu" role.
var recoveryQuestionChoicesList = []string{
	"What was the name of your first pet?",
	"What city were you born in?",
	"What was your childhood nickname?",
	"What is the name of your favorite teacher?",
	"What was the make of your first car?",
}

var recoveryQuestionChoicesCmd = &cobra.Command{
	Use:   "recovery-question-choices",
	Short: "List the canonical recovery question prompts",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Choices:")
		for _, q := range recoveryQuestionChoicesList {
			fmt.Printf(" %s\n", q)
		}
		return nil
	},
}

var recoveryQuestionsCmd = &cobra.Command{
	Use:   "recovery-questions <user>",
	Short: "Print the stored recovery questions (legacy v1)",
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
		questions, err := login.RecoveryQuestions(store)
		if err != nil {
			return err
		}
		fmt.Println("Questions:", strings.Join(questions, ", "))
		return nil
	},
}

var recoveryLoginCmd = &cobra.Command{
	Use:   "recovery-login <user> <answers>",
	Short: "Authenticate with comma-separated recovery answers (legacy v1)",
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
		_, err = login.LoginRecovery(context.Background(), a.server, store, strings.Split(args[1], ","))
		if err != nil {
			return err
		}
		fmt.Println("signed in")
		return nil
	},
}

var recoveryChangePasswordCmd = &cobra.Command{
	Use:   "recovery-change-password <user> <answers> <new-pass>",
	Short: "Authenticate with recovery answers and set a new password",
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
		l, err := login.LoginRecovery(context.Background(), a.server, store, strings.Split(args[1], ","))
		if err != nil {
			return err
		}
		return login.ChangePassword(context.Background(), l, args[2])
	},
}

var recoverySetupCmd = &cobra.Command{
	Use:   "recovery-setup <user> <pass> <questions> <answers>",
	Short: "Configure legacy v1 recovery questions and answers (comma-separated)",
	Args:  cobra.ExactArgs(4),
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
		return login.RecoverySetup(context.Background(), l, strings.Split(args[2], ","), strings.Split(args[3], ","))
	},
}
