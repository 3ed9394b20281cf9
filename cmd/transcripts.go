package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"storm/transcript"

	"github.com/spf13/cobra"
)

var transcriptAudioPath string

var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "Manage voice transcription history",
}

var transcriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved transcriptions, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			return
		}

		transcripts := transcript.NewStore(store)
		for _, entry := range transcripts.All() {
			audio := ""
			if _, ok := transcripts.Audio(entry.ID); ok {
				audio = " [audio]"
			}
			fmt.Printf("%s  %s  %s%s\n", entry.ID, entry.Timestamp.Format("2006-01-02 15:04"), transcriptSummary(entry.Text), audio)
		}
	},
}

var transcriptsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a transcription with its word timings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			return
		}

		transcripts := transcript.NewStore(store)
		for _, entry := range transcripts.All() {
			if entry.ID != args[0] {
				continue
			}
			fmt.Printf("%s (%.1fs)\n\n", entry.Text, entry.Duration)
			for _, word := range entry.Words {
				fmt.Printf("%6.2f-%6.2f  %s\n", word.Start, word.End, word.Text)
			}
			return
		}
		fmt.Printf("No transcription with id %s\n", args[0])
	},
}

var transcriptsAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Record a transcription, optionally attaching an audio file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			return
		}

		audio := ""
		if transcriptAudioPath != "" {
			data, err := os.ReadFile(transcriptAudioPath)
			if err != nil {
				fmt.Printf("Error reading audio file: %v\n", err)
				return
			}
			audio = base64.StdEncoding.EncodeToString(data)
		}

		transcripts := transcript.NewStore(store)
		entry := transcripts.Add(args[0], 0, nil, audio)
		fmt.Printf("Saved %s\n", entry.ID)
	},
}

var transcriptsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a transcription and its audio",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error opening storage: %v\n", err)
			return
		}

		transcript.NewStore(store).Delete(args[0])
		fmt.Printf("Deleted %s\n", args[0])
	},
}

// transcriptSummary trims long transcription text to one list line.
func transcriptSummary(text string) string {
	const limit = 50
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func init() {
	transcriptsAddCmd.Flags().StringVarP(&transcriptAudioPath, "audio", "a", "", "Path to an audio file to store with the transcription")

	transcriptsCmd.AddCommand(transcriptsListCmd)
	transcriptsCmd.AddCommand(transcriptsShowCmd)
	transcriptsCmd.AddCommand(transcriptsAddCmd)
	transcriptsCmd.AddCommand(transcriptsDeleteCmd)
}
