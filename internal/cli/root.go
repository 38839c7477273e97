// Package cli wires the catalog commands together.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mirrow/internal/config"
	"mirrow/internal/logging"
)

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	logLevel string
}

// NewRootCommand returns the catalog command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Format product descriptions and keep the Shopify and Whop catalogs in sync",
		Long: `catalog turns supplier product descriptions into structured records
(clean description, specifications, features, included items, sizes) and
moves them between Shopify, Postgres and Whop.

Examples:
  catalog format --title "Round Mirror" description.html
  catalog short --max 120 - < description.html
  catalog ingest && catalog process && catalog embed
  catalog sync-whop && catalog update-metafields`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.cfg = config.Load()
			level := a.cfg.LogLevel
			if a.logLevel != "" {
				level = a.logLevel
			}
			logger, err := logging.New(level)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	root.AddCommand(
		newFormatCommand(),
		newShortCommand(),
		newPageCommand(a),
		newMigrateCommand(a),
		newIngestCommand(a),
		newProcessCommand(a),
		newEmbedCommand(a),
		newSyncWhopCommand(a),
		newUpdateMetafieldsCommand(a),
		newFixPlansCommand(a),
		newProductsCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readInput reads the file named by args[0], or stdin when there is no
// argument or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(b), nil
}
