package cmd

import (
	"fmt"
	"storm/chat"

	"github.com/spf13/cobra"
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Inspect saved chat sessions",
}

var chatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved chat sessions, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			return
		}

		// Read-only: inspection must not create or evict sessions.
		for i, session := range chat.LoadSessions(store) {
			marker := " "
			if i == 0 {
				marker = "*"
			}
			fmt.Printf("%s %s  %s  (%d messages)\n", marker, session.ID, session.Title, len(session.Messages))
		}
	},
}

var chatsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a session's messages",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			return
		}

		for _, session := range chat.LoadSessions(store) {
			if session.ID != args[0] {
				continue
			}
			fmt.Printf("%s\n\n", session.Title)
			for _, msg := range session.Messages {
				fmt.Printf("[%s] %s\n", msg.Sender, msg.Content)
			}
			return
		}
		fmt.Printf("No session with id %s\n", args[0])
	},
}

func init() {
	chatsCmd.AddCommand(chatsListCmd)
	chatsCmd.AddCommand(chatsShowCmd)
}
