package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
)

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List cached workspaces for the bound remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		remoteID, ok := e.resolver.ActiveRemote()
		if !ok {
			return &internal.UnboundRemoteError{Token: "workspaces"}
		}
		e.autoSync(cmd, remoteID)

		workspaces := e.store.WorkspacesForRemote(remoteID)
		if len(workspaces) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No cached workspaces for %s. Try 'hubctl sync %s'.\n", remoteID, remoteID)
			return nil
		}

		keys := make([]string, 0, len(workspaces))
		for k := range workspaces {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		defaultWS := e.store.Session().DefaultWorkspace

		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("Workspaces on %s", remoteID)))
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, listHeaderStyle.Render("ID")+"\t"+listHeaderStyle.Render("NAME")+"\t"+listHeaderStyle.Render("CONTEXTS"))
		for _, k := range keys {
			ws := workspaces[k]
			marker := ""
			if k == defaultWS {
				marker = " *"
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\n", ws.ID, marker, ws.Name, strings.Join(ws.ContextIDs, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(workspacesCmd)
}
