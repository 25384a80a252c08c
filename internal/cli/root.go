// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "abccli <rootDir> <command> [args...]",
	Short:         "Credential and key-custody operations for an abc-core account root",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI against the raw process arguments (os.Args[1:]).
// args[0] is consumed as rootDir per the external contract; the remainder
// is handed to cobra as the command and its arguments.
func Execute(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: abccli <rootDir> <command> [args...]")
	}
	rootDir = args[0]
	rootCmd.SetArgs(args[1:])
	return rootCmd.Execute()
}
