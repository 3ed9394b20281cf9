package debug

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"storm/paths"
)

// DumpAndDie drops out of the alt screen and prints a value for inspection.
func DumpAndDie(v any) {
	tea.ClearScreen() // exit alt screen to show output in terminal

	fmt.Println("====== DEBUG DUMP ======")
	fmt.Printf("%#v\n", v)
	fmt.Println("========================")

	os.Exit(1)
}

// RedirectLog points the standard logger at ~/.storm/storm.log. The TUI owns
// stdout, so everything logged through the run goes to the file instead.
// Returns a close function for the log file.
func RedirectLog() (func(), error) {
	if err := paths.EnsureStormDir(); err != nil {
		return nil, err
	}

	dir, err := paths.UserStormDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "storm.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return func() { f.Close() }, nil
}
