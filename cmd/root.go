package cmd

import (
	"fmt"
	"os"

	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dataDir string
	noSync  bool
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hubctl",
	Short: "Address, cache and sync resources across hub remotes",
	Long: `hubctl is a client for hub servers: it addresses resources with the
user@remote:resource/path grammar, keeps a local cache of each remote's
contexts and workspaces, and reconciles that cache against the remotes
when it goes stale.

Quick Start:
  hubctl remote add alice@hub https://hub.example.com   # register a remote
  hubctl login alice@hub -u alice                       # obtain a token
  hubctl use remote alice@hub                           # bind the session
  hubctl contexts                                       # list cached contexts
  hubctl sync                                           # force reconciliation

Addresses resolve in three steps: alias substitution, full-address
parse, then bare-token fallback against the bound remote.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Custom data directory (default ~/.hubctl)")
	rootCmd.PersistentFlags().BoolVar(&noSync, "no-sync", false, "Disable automatic cache reconciliation")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// env bundles the store, config and coordinator a command needs
type env struct {
	store    *internal.Store
	cfg      *internal.Config
	clients  *internal.ClientFactory
	sync     *internal.Coordinator
	resolver *internal.Resolver
}

// openEnv wires the shared dependencies from the persistent flags
func openEnv() (*env, error) {
	dir := dataDir
	if dir == "" {
		var err error
		dir, err = internal.DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate data directory: %w", err)
		}
	}
	store := internal.NewStore(dir)
	cfg := internal.LoadConfig(dir)
	if noSync {
		cfg.SyncEnabled = false
	}
	clients := internal.NewClientFactory(store, cfg.HTTPTimeout)
	return &env{
		store:    store,
		cfg:      cfg,
		clients:  clients,
		sync:     internal.NewCoordinator(store, clients, cfg),
		resolver: internal.NewResolver(store),
	}, nil
}

// autoSync opportunistically refreshes a remote's cache. Failures are
// logged and swallowed: commands always proceed against the cache.
func (e *env) autoSync(cmd *cobra.Command, remoteID string) {
	synced, err := e.sync.CheckAndAutoSync(cmd.Context(), remoteID)
	if err != nil {
		internal.LogDebug("Auto-sync of %s failed, using cached data: %v", remoteID, err)
		return
	}
	if synced {
		internal.LogDebug("Auto-synced %s", remoteID)
	}
}
