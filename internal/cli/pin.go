// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"

	"github.com/abcwallet/abc-core/internal/login"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pinLoginCmd, pinSetupCmd, pinDeleteCmd)
}

var pinLoginCmd = &cobra.Command{
	Use:   "pin-login <user> <pin>",
	Short: "Authenticate with a numeric PIN, preferring the v2 credential",
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
		if _, err := login.LoginPin(context.Background(), a.server, store, args[1]); err != nil {
			return err
		}
		fmt.Println("signed in")
		return nil
	},
}

var pinSetupCmd = &cobra.Command{
	Use:   "pin-setup <user> <pass> <pin>",
	Short: "Provision (or rotate) the v2 PIN credential",
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
		return login.LoginPin2Set(context.Background(), l, args[2])
	},
}

var pinDeleteCmd = &cobra.Command{
	Use:   "pin-delete <user> <pass>",
	Short: "Remove the v2 PIN credential",
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
		return login.LoginPin2Delete(context.Background(), l)
	},
}
