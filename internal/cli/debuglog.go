// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"

	"github.com/abcwallet/abc-core/internal/debuglog"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(debugLogUploadCmd)
}

var debugLogUploadCmd = &cobra.Command{
	Use:   "debug-log-upload <user> <pass> <log-path>",
	Short: "Upload a local diagnostic log to the auth server",
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

		log, err := debuglog.Open(args[2], debuglog.DefaultMaxBytes)
		if err != nil {
			return err
		}
		contents, err := log.Read()
		if err != nil {
			return err
		}

		if err := a.server.UploadDebugLog(context.Background(), login.LoginSet(l), contents); err != nil {
			return err
		}
		fmt.Println("uploaded")
		return nil
	},
}
