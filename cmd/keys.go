package cmd

import (
	"fmt"
	"storm/llm"
	"storm/paths"
	"storm/storage"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage provider API keys",
	Long:  `Store and inspect API keys for providers that require one`,
}

var keysSetCmd = &cobra.Command{
	Use:   "set [provider] [key]",
	Short: "Store an API key for a provider (gemini or openrouter)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			return
		}

		keys := llm.LoadKeys(store)
		switch args[0] {
		case "gemini":
			keys.Gemini = args[1]
		case "openrouter":
			keys.OpenRouter = args[1]
		default:
			fmt.Printf("Unknown provider: %s (expected gemini or openrouter)\n", args[0])
			return
		}

		if err := llm.SaveKeys(store, keys); err != nil {
			fmt.Printf("Error saving keys: %v\n", err)
			return
		}
		fmt.Printf("Stored %s key\n", args[0])
	},
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show which providers have a key configured",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			return
		}

		keys := llm.LoadKeys(store)
		fmt.Printf("gemini:     %s\n", keyStatus(keys.Gemini))
		fmt.Printf("openrouter: %s\n", keyStatus(keys.OpenRouter))
	},
}

func keyStatus(key string) string {
	if key == "" {
		return "not set"
	}
	return "configured"
}

func openStore() (storage.Store, error) {
	if err := paths.EnsureStormDir(); err != nil {
		return nil, err
	}
	storageDir, err := paths.StorageDir()
	if err != nil {
		return nil, err
	}
	return storage.NewFileStore(storageDir)
}

func init() {
	keysCmd.AddCommand(keysSetCmd)
	keysCmd.AddCommand(keysListCmd)
}
