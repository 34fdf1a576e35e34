package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
)

var pingOKStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("42")).
	Bold(true)

var pingCmd = &cobra.Command{
	Use:   "ping [user@remote]",
	Short: "Check whether a remote is reachable",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}

		var id string
		if len(args) == 1 {
			id, err = internal.ParseRemoteID(args[0])
			if err != nil {
				return err
			}
		} else {
			var ok bool
			id, ok = e.resolver.ActiveRemote()
			if !ok {
				return &internal.UnboundRemoteError{Token: "ping"}
			}
		}

		if _, ok := e.store.Remote(id); !ok {
			return &internal.RemoteNotFoundError{RemoteID: id}
		}

		if e.sync.IsRemoteReachable(cmd.Context(), id) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is reachable\n", pingOKStyle.Render("✓"), id)
			return nil
		}
		return fmt.Errorf("remote %s did not respond", id)
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
