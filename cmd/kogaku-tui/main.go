package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/kogaku/internal/tui"
)

func main() {
	// An optional argument replaces the built-in parameter tables
	tablesPath := ""
	if len(os.Args) > 1 {
		tablesPath = os.Args[1]
		if _, err := os.Stat(tablesPath); os.IsNotExist(err) {
			fmt.Printf("Error: tables file not found: %s\n", tablesPath)
			os.Exit(1)
		}
	}

	model := tui.NewModel(tablesPath)
	if dir := os.Getenv("KOGAKU_EXPORT_DIR"); dir != "" {
		model = model.WithExportDir(dir)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
