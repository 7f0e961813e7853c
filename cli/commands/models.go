package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ncloud-labs/hyperclova-go/cli/ui"
	"github.com/ncloud-labs/hyperclova-go/providers/clovastudio"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models and their capabilities",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	// Listing models needs no credentials.
	provider := clovastudio.New("")
	models := provider.Models()

	if IsJSONOutput() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	}

	for _, m := range models {
		fmt.Println(ui.Name(string(m.ID)) + "  " + m.DisplayName)
		for _, c := range m.Capabilities {
			fmt.Printf("    %s\n", c)
		}
	}
	return nil
}
