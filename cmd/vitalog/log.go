package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitalog-dev/vitalog/internal/config"
	"github.com/vitalog-dev/vitalog/internal/core"
	"github.com/vitalog-dev/vitalog/internal/store"
)

// newLogCommand records one entry from the command line, e.g.
//
//	vitalog log weight weight=181.5
//	vitalog log cardio duration=45 distance=3.1 --note "morning run"
func newLogCommand(cfg config.Config) *cobra.Command {
	var dateFlag string
	var noteFlag string
	var idFlag string

	cmd := &cobra.Command{
		Use:   "log <tracker> <field=value>...",
		Short: "Record or amend a tracker entry without opening the dashboard.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, ok := core.TrackerByID(args[0])
			if !ok {
				return fmt.Errorf("unknown tracker %q (one of: %s)", args[0], strings.Join(core.TrackerIDs(), ", "))
			}

			values, err := parseFieldArgs(tracker, args[1:])
			if err != nil {
				return err
			}

			loc := cfg.Location()
			occurred := time.Now().In(loc)
			if dateFlag != "" {
				occurred, err = time.ParseInLocation("2006-01-02", dateFlag, loc)
				if err != nil {
					return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", dateFlag)
				}
			}

			db, err := store.Open(config.DBPath())
			if err != nil {
				return err
			}
			defer db.Close()

			entry := store.Entry{
				Tracker:    tracker.ID,
				OccurredAt: occurred,
				Note:       noteFlag,
				Values:     values,
			}

			if idFlag != "" {
				entry.ID = idFlag
				if err := db.Update(cmd.Context(), entry); err != nil {
					return err
				}
				fmt.Printf("%s updated %s (%s)\n", tracker.Icon, tracker.Name, idFlag)
				return nil
			}

			id, err := db.Insert(cmd.Context(), entry)
			if err != nil {
				return err
			}

			fmt.Printf("%s logged %s (%s)\n", tracker.Icon, tracker.Name, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "entry date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&noteFlag, "note", "", "free-form note attached to the entry")
	cmd.Flags().StringVar(&idFlag, "id", "", "amend an existing entry (replaces its date, note, and values)")
	return cmd
}

func parseFieldArgs(tracker core.TrackerSchema, args []string) (map[string]float64, error) {
	values := make(map[string]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		field, known := tracker.Field(name)
		if !known {
			return nil, fmt.Errorf("tracker %s has no field %q (fields: %s)",
				tracker.ID, name, strings.Join(tracker.FieldNames(), ", "))
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", field.Name, raw)
		}
		values[field.Name] = v
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one field=value is required")
	}
	return values, nil
}
