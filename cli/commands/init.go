package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ncloud-labs/hyperclova-go/cli/config"
	"github.com/ncloud-labs/hyperclova-go/providers/clovastudio"
)

var initModel string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a starter configuration file to ~/.clova/config.yaml.

Example:
  clova init
  clova init --default-model HCX-007`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initModel, "default-model", string(clovastudio.ModelHCX005), "Default model for chat commands")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %q already exists", path)
	}

	newCfg := &config.Config{
		DefaultModel: initModel,
	}
	if err := newCfg.Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Printf("  export %s=<your-key>   (or run 'clova keys set')\n", clovastudio.EnvAPIKey)
	fmt.Println("  clova chat --prompt \"Hello\"")

	return nil
}
