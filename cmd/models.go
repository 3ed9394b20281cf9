package cmd

import (
	"fmt"
	"storm/llm"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available AI models",
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range llm.Models() {
			note := ""
			if m.RequiresKey {
				note = " (requires API key)"
			}
			fmt.Printf("%-16s %s%s\n", m.ID, m.Label, note)
		}
	},
}
