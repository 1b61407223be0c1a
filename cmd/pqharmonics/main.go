// Package main provides the CLI entry point for pqharmonics.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/logging"
)

// Environment variables seeding flag defaults.
const (
	envConfig     = "PQH_CONFIG"
	envLogLevel   = "PQH_LOG_LEVEL"
	envMode       = "PQH_ENV"
	envWorkers    = "PQH_WORKERS"
	envDocTimeout = "PQH_DOC_TIMEOUT"
)

var (
	configPath string
	logLevel   string
	pretty     bool
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pqharmonics",
		Short: "Extract harmonic tables from power-quality reports",
		Long: `pqharmonics reads power-quality analyzer PDF reports, reconstructs the
harmonic voltage and current tables, and reports values above their
regulatory limits.

Outputs:
  - JSON reports with metadata, tables, missing harmonics and violations
  - Violation CSVs
  - Highlighted workbooks, one sheet per time limit and harmonic parity`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv(envConfig), "Extraction config YAML (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr(envLogLevel, "warn"), "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(violationsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(bulkCmd())
	rootCmd.AddCommand(inspectCmd())
	return rootCmd
}

func setupLogging() error {
	log, err := logging.New(logLevel, os.Getenv(envMode) == "production")
	if err != nil {
		return err
	}
	logging.SetLogger(log)
	return nil
}

// loadOptions builds processing options from the global flags.
func loadOptions() (pqharmonics.Options, error) {
	opts := pqharmonics.DefaultOptions()
	if configPath == "" {
		return opts, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return opts, fmt.Errorf("failed to load config: %w", err)
	}
	opts.Config = cfg
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
