package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalog-dev/vitalog/internal/config"
	"github.com/vitalog-dev/vitalog/internal/version"
)

func main() {
	if os.Getenv("VITALOG_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	root := cobra.Command{
		Use:   "vitalog",
		Short: "Vitalog is a terminal dashboard for tracking weight, sleep, workouts, and other health metrics.",
		Run: func(_ *cobra.Command, _ []string) {
			runDashboard(cfg)
		},
	}

	root.AddCommand(newLogCommand(cfg))
	root.AddCommand(newLoginCommand(cfg))
	root.AddCommand(newSyncCommand(cfg))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("vitalog " + version.String())
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
