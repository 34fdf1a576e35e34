package cmd

import (
	"fmt"
	"sort"

	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync [user@remote]",
	Short: "Force cache reconciliation",
	Long: `Reconcile the local cache against one remote, or against every
configured remote when no identifier is given. Reconciliation fetches
the remote's complete context and workspace lists, replaces that
remote's slice of the cache, and drops cached entries the server no
longer has. Staleness is ignored; sync always runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}

		var ids []string
		if len(args) == 1 {
			id, err := internal.ParseRemoteID(args[0])
			if err != nil {
				return err
			}
			ids = []string{id}
		} else {
			for id := range e.store.Remotes() {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No remotes configured, nothing to sync.")
				return nil
			}
		}

		failed := 0
		for _, id := range ids {
			if err := e.sync.Sync(cmd.Context(), id); err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", id, err)
				continue
			}
			contexts := len(e.store.ContextsForRemote(id))
			workspaces := len(e.store.WorkspacesForRemote(id))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d contexts, %d workspaces\n", id, contexts, workspaces)
		}
		if failed == len(ids) {
			return fmt.Errorf("sync failed for all %d remote(s)", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
