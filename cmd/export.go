package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hubgrid/hubctl/internal"
	"github.com/hubgrid/hubctl/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [user@remote]",
	Short: "Export a remote's cached inventory",
	Long: `Write the cached contexts and workspaces of a remote as json, jsonl,
yaml or markdown. Defaults to the session's bound remote and stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}

		var remoteID string
		if len(args) == 1 {
			remoteID, err = internal.ParseRemoteID(args[0])
			if err != nil {
				return err
			}
		} else {
			var ok bool
			remoteID, ok = e.resolver.ActiveRemote()
			if !ok {
				return &internal.UnboundRemoteError{Token: "export"}
			}
		}
		if _, ok := e.store.Remote(remoteID); !ok {
			return &internal.RemoteNotFoundError{RemoteID: remoteID}
		}
		e.autoSync(cmd, remoteID)

		inv := buildInventory(e.store, remoteID)

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			return exporter.Export(inv, cmd.OutOrStdout())
		}
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOutput, err)
		}
		defer func() { _ = f.Close() }()
		if err := exporter.Export(inv, f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s inventory to %s\n", remoteID, exportOutput)
		return nil
	},
}

// buildInventory snapshots one remote's cached resources in a stable order
func buildInventory(store *internal.Store, remoteID string) *internal.Inventory {
	inv := &internal.Inventory{
		RemoteID:    remoteID,
		GeneratedAt: time.Now(),
	}
	for _, c := range store.ContextsForRemote(remoteID) {
		inv.Contexts = append(inv.Contexts, c)
	}
	sort.Slice(inv.Contexts, func(i, j int) bool { return inv.Contexts[i].ID < inv.Contexts[j].ID })
	for _, ws := range store.WorkspacesForRemote(remoteID) {
		inv.Workspaces = append(inv.Workspaces, ws)
	}
	sort.Slice(inv.Workspaces, func(i, j int) bool { return inv.Workspaces[i].ID < inv.Workspaces[j].ID })
	return inv
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, jsonl, yaml, md)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
