// Package commands implements the syncflow CLI subcommands.
package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/syncflowhq/syncflow/internal/types"
	"github.com/syncflowhq/syncflow/pkg/api/v1/client"
)

// flag names
const (
	flagOwnerID       = "owner-id"
	flagOwnerEmail    = "owner-email"
	flagServerAddress = "server-address"
)

// environment variable names
const (
	envServerAddress = "SYNCFLOW_SERVER_ADDRESS"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress

	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", client.DefaultBaseURL, "Address of the SyncFlow API server (env: SYNCFLOW_SERVER_ADDRESS)")
	RootCmd.PersistentFlags().StringP(flagOwnerID, "o", "", "Owner ID for owner-scoped operations")
	RootCmd.PersistentFlags().StringP(flagOwnerEmail, "e", "", "Owner email, attached to new projects")

	RootCmd.AddCommand(GetProjectsCmd())
	RootCmd.AddCommand(GetFeedbackCmd())
	RootCmd.AddCommand(GetPublicCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "syncflow",
	Short: "SyncFlow CLI - manage client-update projects from the terminal",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > env var > default precedence for the server address.
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(envServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}
		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// getSession builds the explicit session from the owner flags.
func getSession(cmd *cobra.Command) (types.Session, error) {
	flag := cmd.Flag(flagOwnerID)
	if flag == nil {
		return types.Session{}, fmt.Errorf("flag '%s' is not defined", flagOwnerID)
	}

	raw := flag.Value.String()
	if raw == "" {
		return types.Session{}, fmt.Errorf("required flag \"%s\" not set", flagOwnerID)
	}
	ownerID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return types.Session{}, fmt.Errorf("invalid owner-id format: %w", err)
	}

	email := ""
	if f := cmd.Flag(flagOwnerEmail); f != nil {
		email = f.Value.String()
	}

	return types.Session{
		OwnerID:    uint(ownerID),
		OwnerEmail: email,
	}, nil
}
