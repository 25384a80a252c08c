// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(repoCloneCmd, repoSyncCmd)
}

// The git-backed wallet sync repository (clone/sync of a remote replica
// identified by a sync key) has no transport implementation here; both
// commands exist to keep the external command surface complete and fail
// explicitly rather than silently doing nothing.

var repoCloneCmd = &cobra.Command{
	Use:   "repo-clone <sync-key>",
	Short: "Clone a wallet sync repository (not implemented)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return abcerr.New(abcerr.NotSupported, "repository sync transport is not implemented")
	},
}

var repoSyncCmd = &cobra.Command{
	Use:   "repo-sync <sync-key>",
	Short: "Sync a wallet sync repository (not implemented)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return abcerr.New(abcerr.NotSupported, "repository sync transport is not implemented")
	},
}
