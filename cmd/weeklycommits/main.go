package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "weeklycommits",
		Short: "Serves a GitHub user's commit counts for the trailing week.",
		Long: `weeklycommits exposes a single HTTP endpoint that accepts an AES-CBC
encrypted GitHub token and returns the token owner's commit counts per day
across all of their repositories for the last seven days.

Key material is read from WEEKLYCOMMITS_ENCRYPTION_KEY and
WEEKLYCOMMITS_ENCRYPTION_IV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newEncryptTokenCmd())
	return root
}
