package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/skateshare"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cfg := skateshare.LoadConfig()

	root := &cobra.Command{
		Use:   "skateshare",
		Short: "skateshare - share your favorite skating memories",
		Long: `skateshare serves a small blog where visitors page through shared
memories and post their own, with an optional image.

Configuration is read from the environment (and .env / .env.local):
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, ADDR, DATABASE_PATH,
  ADMIN_PASSWORD, ADMIN_SESSION_SECRET, COOKIE_SECURE,
  PAGE_CACHE_TTL, DEFAULT_PAGE_LIMIT, MAX_UPLOAD_BYTES, POST_RATE_LIMIT`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "path to the SQLite database")

	root.AddCommand(
		serveCommand(&cfg),
		seedCommand(&cfg),
		&cobra.Command{
			Use:   "version",
			Short: "Print the skateshare version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("skateshare %s\n", version)
			},
		},
	)
	return root
}
