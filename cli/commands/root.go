// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/capybaradb/capybaradb-go/cli/config"
)

var (
	// Global flags
	cfgFile    string
	database   string
	collection string
	jsonOutput bool
	verbose    bool

	// Loaded configuration
	cfg *config.Config
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "capy",
	Short: "Capy - CapybaraDB command-line client",
	Long: `Capy is a command-line client for CapybaraDB.

Use Capy to manage API keys, insert documents, and run filter or
semantic queries against your collections.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.capybaradb/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&database, "db", "", "database name")
	rootCmd.PersistentFlags().StringVar(&collection, "collection", "", "collection name")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// initConfig reads in config file and sets defaults.
func initConfig() error {
	// A .env file in the working directory is picked up if present.
	// Values never override variables already set in the environment.
	_ = godotenv.Load()

	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.LoadConfig(path)
	if err != nil {
		return err
	}

	// Apply config defaults if flags not set
	if database == "" && cfg.DefaultDatabase != "" {
		database = cfg.DefaultDatabase
	}
	if collection == "" && cfg.DefaultCollection != "" {
		collection = cfg.DefaultCollection
	}

	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}

// GetDatabase returns the effective database name (flag or config default).
func GetDatabase() string {
	return database
}

// GetCollection returns the effective collection name (flag or config default).
func GetCollection() string {
	return collection
}

// IsJSONOutput returns true if JSON output is enabled.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsVerbose returns true if verbose output is enabled.
func IsVerbose() bool {
	return verbose
}
