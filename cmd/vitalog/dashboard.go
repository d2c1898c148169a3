package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalog-dev/vitalog/internal/appupdate"
	"github.com/vitalog-dev/vitalog/internal/config"
	"github.com/vitalog-dev/vitalog/internal/store"
	"github.com/vitalog-dev/vitalog/internal/tui"
	"github.com/vitalog-dev/vitalog/internal/version"
)

func runDashboard(cfg config.Config) {
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		log.Printf("theme load: %v", err)
	}
	tui.SetThemeByName(cfg.Theme)

	db, err := store.Open(config.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	backend := newLocalBackend(db, cfg.Location())
	model := tui.NewModel(backend, cfg)

	program := tea.NewProgram(model, tea.WithAltScreen())

	watch, err := config.WatchSettings(config.ConfigPath(), func(next config.Config) {
		program.Send(tui.ConfigMsg(next))
	})
	if err != nil {
		log.Printf("settings watch: %v", err)
	} else {
		defer watch.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	verbose := os.Getenv("VITALOG_DEBUG") != ""
	go runStartupUpdateCheck(
		ctx,
		version.Version,
		1500*time.Millisecond,
		verbose,
		appupdate.Check,
		func(msg tui.AppUpdateMsg) {
			program.Send(msg)
		},
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
}
