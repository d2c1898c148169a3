package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/vitalog-dev/vitalog/internal/appupdate"
	"github.com/vitalog-dev/vitalog/internal/tui"
)

// runStartupUpdateCheck asks GitHub for the latest release once, shortly
// after startup, and notifies the dashboard when a newer version exists.
// Failures are silent unless debug logging is on; the dashboard must
// never block on this.
func runStartupUpdateCheck(
	ctx context.Context,
	currentVersion string,
	timeout time.Duration,
	debug bool,
	check func(context.Context, appupdate.CheckOptions) (appupdate.Result, error),
	send func(tui.AppUpdateMsg),
) {
	result, err := check(ctx, appupdate.CheckOptions{
		CurrentVersion: strings.TrimSpace(currentVersion),
		Timeout:        timeout,
	})
	if err != nil {
		if debug {
			log.Printf("app update check failed: %v", err)
		}
		return
	}
	if !result.UpdateAvailable {
		return
	}

	send(tui.AppUpdateMsg{
		CurrentVersion: result.CurrentVersion,
		LatestVersion:  result.LatestVersion,
		UpgradeHint:    result.UpgradeHint,
	})
}
