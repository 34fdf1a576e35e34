package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hubgrid/hubctl/internal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login <user@remote>",
	Short: "Obtain and store a bearer token for a remote",
	Long: `Exchange credentials for a bearer token via the remote's auth
endpoint and store the token on the remote record. The password is
prompted for when not given with --password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := internal.ParseRemoteID(args[0])
		if err != nil {
			return err
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		remote, ok := e.store.Remote(id)
		if !ok {
			return &internal.RemoteNotFoundError{RemoteID: id}
		}

		username := loginUsername
		if username == "" {
			// Default to the user part of the identifier
			username = id[:strings.Index(id, "@")]
		}
		password := loginPassword
		if password == "" {
			password, err = promptPassword(cmd)
			if err != nil {
				return err
			}
		}

		client, err := e.clients.Client(id)
		if err != nil {
			return err
		}
		token, err := client.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}

		remote.Auth = internal.AuthConfig{Type: "bearer", Token: token}
		if err := e.store.SaveRemote(remote); err != nil {
			return err
		}
		e.clients.Invalidate(id)

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", id, username)
		return nil
	},
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (defaults to the identifier's user part)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}
