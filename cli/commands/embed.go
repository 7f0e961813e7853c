package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ncloud-labs/hyperclova-go/cli/ui"
	"github.com/ncloud-labs/hyperclova-go/core"
)

var embedText string

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Generate a text embedding",
	Long: `Generate a 1024-dimensional embedding vector for a text.

Examples:
  clova embed --text "The quick brown fox"
  clova embed --text "The quick brown fox" --json`,
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringVar(&embedText, "text", "", "Text to embed (required)")
	_ = embedCmd.MarkFlagRequired("text")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	client := core.NewClient(provider, clientOptions()...)

	resp, err := client.Embed(context.Background(), embedText)
	if err != nil {
		return handleChatError(err)
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(resp)
	}

	fmt.Printf("dimension: %d\n", resp.Dimension())
	fmt.Printf("input tokens: %d\n", resp.InputTokens)
	if IsVerbose() {
		fmt.Println(ui.Name(fmt.Sprintf("%v", resp.Embedding)))
	}
	return nil
}
