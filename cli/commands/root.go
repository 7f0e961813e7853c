// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ncloud-labs/hyperclova-go/cli/config"
)

var (
	// Global flags
	cfgFile    string
	model      string
	jsonOutput bool
	verbose    bool

	// Loaded configuration
	cfg *config.Config
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "clova",
	Short: "clova - CLOVA Studio command-line interface",
	Long: `clova is a command-line interface for the Naver CLOVA Studio API.

Use clova to manage API keys, chat with HyperCLOVA X models, and
generate text embeddings.`,
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
	// A .env in the working directory supplies HYPERCLOVA_* variables
	// for local development. Missing files are fine.
	_ = godotenv.Load()

	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.clova/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model ID (HCX-005, HCX-007, HCX-DASH-002)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
}

// initConfig reads in config file and sets defaults.
func initConfig() error {
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
	if model == "" && cfg.DefaultModel != "" {
		model = cfg.DefaultModel
	}

	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}

// GetModel returns the effective model ID (flag or config default).
func GetModel() string {
	return model
}

// IsJSONOutput returns true if JSON output is enabled.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsVerbose returns true if verbose output is enabled.
func IsVerbose() bool {
	return verbose
}
