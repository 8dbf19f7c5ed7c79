// Command navtui drives the proximity nav in a terminal, treating mouse cell
// motion as the pointer.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/prefs"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfig+")")
	dbPath := flag.String("db", "", "preferences database, shared with the desktop app")
	flag.Parse()

	config.LoadEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DB = *dbPath
	}
	if cfg.DB == "" {
		cfg.DB = prefs.DefaultPath()
	}

	var p store
	if st, err := prefs.Open(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "warning: preferences disabled:", err)
	} else {
		defer st.Close()
		p = st
	}

	m, err := newModel(cfg, p)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if _, err := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
