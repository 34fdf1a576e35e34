package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
)

var aliasHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("62"))

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage address aliases",
	Long: `Manage short names for full resource addresses.

An alias target must be a syntactically valid user@remote:resource
address; it is validated when the alias is written. Aliases do not
chain: an alias pointing at another alias name is resolved as the
literal string, not followed.`,
}

var aliasSetCmd = &cobra.Command{
	Use:   "set <name> <address>",
	Short: "Create or update an alias",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		if err := e.store.SetAlias(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Alias %s -> %s\n", args[0], args[1])
		return nil
	},
}

var aliasRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove an alias",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		found, err := e.store.RemoveAlias(args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no alias named %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed alias %s\n", args[0])
		return nil
	},
}

var aliasListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		aliases := e.store.Aliases()
		if len(aliases) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No aliases defined.")
			return nil
		}
		names := make([]string, 0, len(aliases))
		for name := range aliases {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, aliasHeaderStyle.Render("NAME")+"\t"+aliasHeaderStyle.Render("ADDRESS")+"\t"+aliasHeaderStyle.Render("TYPE")+"\t"+aliasHeaderStyle.Render("UPDATED"))
		for _, name := range names {
			a := aliases[name]
			// Inferred from the resource name, for display only
			kind := ""
			if addr, err := internal.ParseAddress(a.Address); err == nil {
				kind = string(internal.InferContainerType(addr.Resource))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, a.Address, kind, a.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func init() {
	aliasCmd.AddCommand(aliasSetCmd)
	aliasCmd.AddCommand(aliasRemoveCmd)
	aliasCmd.AddCommand(aliasListCmd)
	rootCmd.AddCommand(aliasCmd)
}
