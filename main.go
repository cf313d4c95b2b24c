package main

import (
	"fmt"
	"os"
	"path/filepath"

	"charm-voting-tui/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// -------------------- MAIN --------------------

func main() {
	// .env is optional; existing environment variables win
	_ = godotenv.Load()

	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".charm-voting-config.json")

	cfg, err := config.Resolve(configPath)
	if err != nil {
		fmt.Println("config:", err)
		os.Exit(1)
	}

	m := newModel(cfg, configPath)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
