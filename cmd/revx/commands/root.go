// Package commands implements the revx CLI commands.
package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/revxlabs/revx/pkg/revx"
)

var (
	serverURL string

	client  *revx.Client
	session *revx.Session
)

var rootCmd = &cobra.Command{
	Use:   "revx",
	Short: "Terminal client for the RevX project review platform",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		client = revx.NewClient(serverURL)
		session = revx.NewSession(client, revx.NewFileStore(credentialsPath()))
		return session.Restore()
	},
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("REVX_SERVER", revx.DefaultBaseURL), "RevX API base URL")
}

func credentialsPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "revx", "credentials.json")
	}
	return ".revx-credentials.json"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
