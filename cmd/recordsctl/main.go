package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/internal/bootstrap"
	"github.com/johnquangdev/assessment-records/pkg/config"
	"github.com/johnquangdev/assessment-records/pkg/logger"
)

var (
	// Global flags
	verbose bool
	email   string
	asJSON  bool
	timeout time.Duration

	cfg *config.Config
	app *bootstrap.App
	log *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recordsctl",
	Short: "Browse interview assessment records from the terminal",
	Long: `recordsctl lists a user's assessment records, opens decoded reports
and resolves video links, using the same backend and configuration as the
records API server.

Configuration comes from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if app != nil {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		cfg.Log.Format = "console"
		if verbose {
			cfg.Log.Level = "debug"
		} else {
			cfg.Log.Level = "warn"
		}
		log, err = logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		app, err = bootstrap.New(cfg, log)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			_ = app.Close()
		}
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&email, "email", "e", os.Getenv("RECORDS_EMAIL"), "User identity (or set RECORDS_EMAIL env)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Operation timeout")

	reportCmd.Flags().StringVar(&recordID, "id", "", "Record ID (required)")
	reportCmd.MarkFlagRequired("id")
	videoCmd.Flags().StringVar(&recordID, "id", "", "Record ID (required)")
	videoCmd.MarkFlagRequired("id")

	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
