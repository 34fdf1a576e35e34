package cmd

import (
	"fmt"
	"time"

	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use",
	Short: "Bind the session to a remote, context or workspace",
	Long: `Bind the session's defaults. Bare resource tokens resolve against the
bound remote; the bound context and default workspace are conveniences
for commands that accept an implicit target.`,
}

var useRemoteCmd = &cobra.Command{
	Use:   "remote <user@remote>",
	Short: "Bind the default remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := internal.ParseRemoteID(args[0])
		if err != nil {
			return err
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		if _, ok := e.store.Remote(id); !ok {
			return &internal.RemoteNotFoundError{RemoteID: id}
		}
		sess := e.store.Session()
		sess.BoundRemote = id
		now := time.Now()
		sess.BoundAt = &now
		if err := e.store.SaveSession(sess); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bound remote %s\n", id)
		return nil
	},
}

var useContextCmd = &cobra.Command{
	Use:   "context <token>",
	Short: "Bind the default context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		target, err := e.resolver.Resolve(args[0], internal.ContainerContext)
		if err != nil {
			return err
		}
		sess := e.store.Session()
		sess.BoundContext = internal.CacheKey(target.RemoteID, target.ResourceID)
		now := time.Now()
		sess.BoundAt = &now
		if err := e.store.SaveSession(sess); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bound context %s on %s\n", target.ResourceID, target.RemoteID)
		return nil
	},
}

var useWorkspaceCmd = &cobra.Command{
	Use:   "workspace <token>",
	Short: "Bind the default workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		target, err := e.resolver.Resolve(args[0], internal.ContainerWorkspace)
		if err != nil {
			return err
		}
		sess := e.store.Session()
		sess.DefaultWorkspace = internal.CacheKey(target.RemoteID, target.ResourceID)
		now := time.Now()
		sess.BoundAt = &now
		if err := e.store.SaveSession(sess); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bound workspace %s on %s\n", target.ResourceID, target.RemoteID)
		return nil
	},
}

var useClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all session bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		if err := e.store.SaveSession(internal.Session{}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
		return nil
	},
}

func init() {
	useCmd.AddCommand(useRemoteCmd)
	useCmd.AddCommand(useContextCmd)
	useCmd.AddCommand(useWorkspaceCmd)
	useCmd.AddCommand(useClearCmd)
	rootCmd.AddCommand(useCmd)
}
