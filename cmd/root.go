package cmd

import (
	"fmt"
	"os"
	"storm/config"
	"storm/debug"
	"storm/paths"
	"storm/storage"
	"storm/tui"

	"github.com/spf13/cobra"
)

var selectedModelFlag string

var rootCmd = &cobra.Command{
	Use:   "storm",
	Short: "Storm is a terminal-based code editor with an AI assistant",
	Long: `Storm is a terminal-based code editor written in Go.
It keeps your files in a built-in workspace, lets you chat with several
AI providers about the code you are editing, and renders the replies
inline.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Ensure ~/.storm exists
		if err := paths.EnsureStormDir(); err != nil {
			fmt.Printf("Error creating storm directory: %v\n", err)
			os.Exit(1)
		}

		// Load configuration
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		// Open persistence
		storageDir, err := paths.StorageDir()
		if err != nil {
			fmt.Printf("Error resolving storage directory: %v\n", err)
			os.Exit(1)
		}
		store, err := storage.NewFileStore(storageDir)
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			os.Exit(1)
		}

		// The TUI owns the terminal, so logging goes to a file.
		closeLog, err := debug.RedirectLog()
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer closeLog()

		if err := tui.Start(cfg, store, selectedModelFlag); err != nil {
			fmt.Printf("Error starting TUI: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Configure command line flags
	rootCmd.Flags().StringVarP(&selectedModelFlag, "model", "m", "", "Start with a specific AI model")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(chatsCmd)
	rootCmd.AddCommand(transcriptsCmd)
	rootCmd.AddCommand(modelsCmd)
}
