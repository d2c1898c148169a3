package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalog-dev/vitalog/internal/api"
	"github.com/vitalog-dev/vitalog/internal/config"
	"github.com/vitalog-dev/vitalog/internal/core"
	"github.com/vitalog-dev/vitalog/internal/store"
)

// newLoginCommand authenticates against the remote backend and stores
// the issued token pair next to the config file.
func newLoginCommand(cfg config.Config) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the sync backend and store the tokens.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Sync.BackendURL == "" {
				return fmt.Errorf("no sync backend configured; set sync.backend_url in %s", config.ConfigPath())
			}
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			if password == "" {
				// VITALOG_PASSWORD keeps the secret out of shell history.
				password = os.Getenv("VITALOG_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			client := api.New(cfg.Sync.BackendURL, "")
			tokens, err := client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			err = config.SaveCredentials(config.Credentials{
				Username: username,
				Access:   tokens.Access,
				Refresh:  tokens.Refresh,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "backend account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "backend account password (prefer VITALOG_PASSWORD or the prompt)")
	return cmd
}

// newSyncCommand pulls every tracker's entries from the remote backend
// into the local database. Remote rows map to deterministic local IDs,
// so re-running the sync never duplicates entries.
func newSyncCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull entries from the sync backend into the local database.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Sync.BackendURL == "" {
				return fmt.Errorf("no sync backend configured; set sync.backend_url in %s", config.ConfigPath())
			}
			creds, err := config.LoadCredentials()
			if err != nil {
				return fmt.Errorf("not logged in; run vitalog login first (%w)", err)
			}

			client := api.New(cfg.Sync.BackendURL, creds.Access)

			db, err := store.Open(config.DBPath())
			if err != nil {
				return err
			}
			defer db.Close()

			total := 0
			for _, tracker := range core.Trackers() {
				entries, err := client.Entries(cmd.Context(), tracker.ID)
				if err != nil {
					return fmt.Errorf("%s: %w", tracker.ID, err)
				}
				for _, e := range entries {
					if _, err := db.Insert(cmd.Context(), e); err != nil {
						return fmt.Errorf("%s: %w", tracker.ID, err)
					}
				}
				fmt.Printf("%s %-14s %d entries\n", tracker.Icon, tracker.Name, len(entries))
				total += len(entries)
			}

			fmt.Printf("Synced %d entries from %s\n", total, cfg.Sync.BackendURL)

			if streaks, err := client.Streaks(cmd.Context()); err == nil && len(streaks) > 0 {
				var parts []string
				for _, tracker := range core.Trackers() {
					if days, ok := streaks[tracker.ID]; ok && days > 0 {
						parts = append(parts, fmt.Sprintf("%s %dd", tracker.ID, days))
					}
				}
				if len(parts) > 0 {
					fmt.Printf("Streaks: %s\n", strings.Join(parts, ", "))
				}
			}
			return nil
		},
	}
}
