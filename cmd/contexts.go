package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
)

var (
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "List cached contexts for the bound remote",
	Long: `List the cached contexts of the session's bound remote. If the cache
is stale it is refreshed first; when the remote is unreachable the
cached entries are shown as is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		remoteID, ok := e.resolver.ActiveRemote()
		if !ok {
			return &internal.UnboundRemoteError{Token: "contexts"}
		}
		e.autoSync(cmd, remoteID)

		contexts := e.store.ContextsForRemote(remoteID)
		if len(contexts) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No cached contexts for %s. Try 'hubctl sync %s'.\n", remoteID, remoteID)
			return nil
		}

		keys := make([]string, 0, len(contexts))
		for k := range contexts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("Contexts on %s", remoteID)))
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, listHeaderStyle.Render("ID")+"\t"+listHeaderStyle.Render("NAME")+"\t"+listHeaderStyle.Render("NODES"))
		for _, k := range keys {
			c := contexts[k]
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, countStyle.Render(fmt.Sprintf("%d", c.NodeCount)))
		}
		return w.Flush()
	},
}

var contextsShowCmd = &cobra.Command{
	Use:   "show <token>",
	Short: "Show one context",
	Long: `Show a single context. The token may be a bare id, an alias, or a
full user@remote:context address; detail is fetched live from the
resolved remote.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		target, err := e.resolver.Resolve(args[0], internal.ContainerContext)
		if err != nil {
			return err
		}
		e.autoSync(cmd, target.RemoteID)

		client, err := e.clients.Client(target.RemoteID)
		if err != nil {
			return err
		}
		ctx, err := client.GetContext(cmd.Context(), target.ResourceID)
		if err != nil {
			// Unreachable remote: fall back to the cache
			if cached, ok := e.store.Contexts()[internal.CacheKey(target.RemoteID, target.ResourceID)]; ok {
				internal.LogWarn("Remote fetch failed, showing cached copy: %v", err)
				ctx = &cached
			} else {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(displayName(ctx)))
		fmt.Fprintln(out, idStyle.Render(internal.CacheKey(target.RemoteID, ctx.ID)))
		if ctx.Description != "" {
			fmt.Fprintf(out, "\n%s\n", ctx.Description)
		}
		fmt.Fprintf(out, "\nNodes: %s\n", countStyle.Render(fmt.Sprintf("%d", ctx.NodeCount)))
		if target.Path != "" {
			fmt.Fprintf(out, "Path: %s\n", strings.TrimPrefix(target.Path, "/"))
		}
		if !ctx.LastSynced.IsZero() {
			fmt.Fprintf(out, "Last synced: %s\n", ctx.LastSynced.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func displayName(c *internal.CachedContext) string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

func init() {
	contextsCmd.AddCommand(contextsShowCmd)
	rootCmd.AddCommand(contextsCmd)
}
