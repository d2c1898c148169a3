package appupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultReleaseURL     = "https://api.github.com/repos/vitalog-dev/vitalog/releases/latest"
	releasePageURL        = "https://github.com/vitalog-dev/vitalog/releases/latest"
	defaultRequestTimeout = 1500 * time.Millisecond
)

// Vitalog is distributed through a Homebrew tap and `go install`;
// any other binary location gets the release-page hint.
type InstallMethod string

const (
	InstallMethodUnknown   InstallMethod = "unknown"
	InstallMethodHomebrew  InstallMethod = "homebrew"
	InstallMethodGoInstall InstallMethod = "go_install"
)

type CheckOptions struct {
	CurrentVersion   string
	ExecutablePath   string
	LatestReleaseURL string
	Timeout          time.Duration
	HTTPClient       *http.Client
}

type Result struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	InstallMethod   InstallMethod
	UpgradeHint     string
	ExecutablePath  string
}

// Check asks GitHub for the latest release tag and compares it with the
// running build. Dev builds and pre-releases never report an update.
func Check(ctx context.Context, opts CheckOptions) (Result, error) {
	current := canonicalVersion(opts.CurrentVersion)
	exe := executablePath(opts.ExecutablePath)
	method := installMethodFor(exe)

	result := Result{
		CurrentVersion: current,
		InstallMethod:  method,
		UpgradeHint:    upgradeHint(method),
		ExecutablePath: exe,
	}
	if current == "" {
		return result, nil
	}

	latest, err := latestReleaseTag(ctx, opts, current)
	if err != nil {
		return result, err
	}
	result.LatestVersion = latest
	result.UpdateAvailable = semver.Compare(latest, current) > 0
	return result, nil
}

func latestReleaseTag(ctx context.Context, opts CheckOptions, current string) (string, error) {
	releaseURL := strings.TrimSpace(opts.LatestReleaseURL)
	if releaseURL == "" {
		releaseURL = defaultReleaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return "", fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "vitalog/"+current)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var payload struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode release payload: %w", err)
	}
	latest := canonicalVersion(payload.TagName)
	if latest == "" {
		return "", fmt.Errorf("release tag %q is not a stable semver", payload.TagName)
	}
	return latest, nil
}

func executablePath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return normalizePath(p)
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil && resolved != "" {
		exe = resolved
	}
	return normalizePath(exe)
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return strings.ToLower(filepath.ToSlash(filepath.Clean(p)))
}

func installMethodFor(exe string) InstallMethod {
	switch {
	case exe == "":
		return InstallMethodUnknown
	case strings.Contains(exe, "/cellar/vitalog/"), exe == "/opt/homebrew/bin/vitalog":
		return InstallMethodHomebrew
	case strings.HasSuffix(exe, "/go/bin/vitalog"), strings.HasSuffix(exe, "/go/bin/vitalog.exe"), inGoBin(exe):
		return InstallMethodGoInstall
	default:
		return InstallMethodUnknown
	}
}

func inGoBin(exe string) bool {
	if gobin := normalizePath(os.Getenv("GOBIN")); gobin != "" && strings.HasPrefix(exe, gobin+"/") {
		return true
	}
	for _, gp := range filepath.SplitList(os.Getenv("GOPATH")) {
		if gopath := normalizePath(gp); gopath != "" && strings.HasPrefix(exe, gopath+"/bin/") {
			return true
		}
	}
	return false
}

func upgradeHint(method InstallMethod) string {
	switch method {
	case InstallMethodHomebrew:
		return "brew upgrade vitalog-dev/tap/vitalog"
	case InstallMethodGoInstall:
		return "go install github.com/vitalog-dev/vitalog/cmd/vitalog@latest"
	default:
		return releasePageURL
	}
}

// canonicalVersion maps a release tag or build version onto canonical
// semver, or "" for anything that is not a stable release (dev builds,
// pre-releases, build metadata).
func canonicalVersion(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return ""
	}
	return semver.Canonical(v)
}
