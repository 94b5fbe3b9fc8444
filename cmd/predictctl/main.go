// Command predictctl checks, publishes and exercises prediction artifacts
// from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fininclusion/internal/config"
	"fininclusion/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "predictctl",
		Short:         "Manage financial inclusion prediction artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Init(logging.Config{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				File:   cfg.LogFile,
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.ArtifactSource, "source", cfg.ArtifactSource, `artifact source, "file" or "postgres"`)
	flags.StringVar(&cfg.ArtifactDir, "dir", cfg.ArtifactDir, "artifact directory for the file source")
	flags.StringVar(&cfg.ModelArtifact, "model", cfg.ModelArtifact, "model artifact name")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string")

	root.AddCommand(
		newCheckCmd(cfg),
		newPredictCmd(cfg),
		newPublishCmd(cfg),
	)
	return root
}
