package cmd

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
)

var statusCheckReachability bool

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// statusCmd reports the local state without mutating anything
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session bindings and per-remote cache freshness",
	Long: `Show the data directory, the session's bindings, and every remote's
cache freshness (unsynced, fresh or stale). With --reachability each
remote is also pinged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, sectionStyle.Render("hubctl status"))
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s\n", infoStyle.Render("Data directory:"), e.store.Dir())
		fmt.Fprintf(out, "%s %v (threshold %s)\n", infoStyle.Render("Auto-sync:"), e.cfg.SyncEnabled, e.cfg.StaleThreshold)
		fmt.Fprintln(out)

		sess := e.store.Session()
		fmt.Fprintln(out, sectionStyle.Render("Session"))
		if sess.BoundRemote == "" {
			fmt.Fprintln(out, warningStyle.Render("  no remote bound"))
		} else if _, ok := e.store.Remote(sess.BoundRemote); !ok {
			fmt.Fprintf(out, "  %s %s\n", warningStyle.Render("dangling remote binding:"), sess.BoundRemote)
		} else {
			fmt.Fprintf(out, "  remote: %s\n", successStyle.Render(sess.BoundRemote))
		}
		if sess.BoundContext != "" {
			fmt.Fprintf(out, "  context: %s\n", sess.BoundContext)
		}
		if sess.DefaultWorkspace != "" {
			fmt.Fprintf(out, "  workspace: %s\n", sess.DefaultWorkspace)
		}
		fmt.Fprintln(out)

		remotes := e.store.Remotes()
		fmt.Fprintln(out, sectionStyle.Render(fmt.Sprintf("Remotes (%d)", len(remotes))))
		ids := make([]string, 0, len(remotes))
		for id := range remotes {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			r := remotes[id]
			contexts := len(e.store.ContextsForRemote(id))
			workspaces := len(e.store.WorkspacesForRemote(id))
			line := fmt.Sprintf("  %s [%s] %d contexts, %d workspaces",
				internal.DisplayRemoteID(id), renderFreshness(e.sync.Freshness(r)), contexts, workspaces)
			if statusCheckReachability {
				if e.sync.IsRemoteReachable(cmd.Context(), id) {
					line += " " + successStyle.Render("(reachable)")
				} else {
					line += " " + warningStyle.Render("(unreachable)")
				}
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusCheckReachability, "reachability", false, "Ping each remote")
	rootCmd.AddCommand(statusCmd)
}
