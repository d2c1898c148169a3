// Package api talks to the tracking backend's REST API. The dashboard
// works fully offline; this client only backs the explicit sync command.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vitalog-dev/vitalog/internal/core"
	"github.com/vitalog-dev/vitalog/internal/store"
)

const defaultTimeout = 15 * time.Second

// endpoint binds a tracker ID to its backend route and primary key
// field name.
type endpoint struct {
	path    string
	idField string
}

var endpoints = map[string]endpoint{
	"weight":       {path: "api/logging/weight/", idField: "weight_log_id"},
	"water":        {path: "api/logging/water/", idField: "water_log_id"},
	"steps":        {path: "api/logging/steps/", idField: "step_log_id"},
	"cardio":       {path: "api/logging/cardio/", idField: "cardio_log_id"},
	"sleep":        {path: "api/logging/sleep/", idField: "sleep_log_id"},
	"measurements": {path: "api/logging/body-measurement/", idField: "measurement_id"},
	"health":       {path: "api/logging/health-metrics/", idField: "health_metrics_id"},
	"workouts":     {path: "api/workouts/logs/", idField: "workout_log_id"},
}

// Client is an authenticated backend API client.
type Client struct {
	baseURL    string
	token      string
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Tokens is the JWT pair the login endpoint issues.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (Tokens, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return Tokens{}, fmt.Errorf("api: encode login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/auth/login/", bytes.NewReader(body))
	if err != nil {
		return Tokens{}, fmt.Errorf("api: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var tokens Tokens
	if err := c.do(req, &tokens); err != nil {
		return Tokens{}, err
	}
	if tokens.Access == "" {
		return Tokens{}, fmt.Errorf("api: login response missing access token")
	}
	c.token = tokens.Access
	return tokens, nil
}

// Entries fetches a tracker's remote logs. Remote rows are converted to
// store entries with deterministic IDs so repeated syncs are no-ops.
func (c *Client) Entries(ctx context.Context, tracker string) ([]store.Entry, error) {
	ep, ok := endpoints[tracker]
	if !ok {
		return nil, fmt.Errorf("api: no endpoint for tracker %q", tracker)
	}
	schema, ok := core.TrackerByID(tracker)
	if !ok {
		return nil, fmt.Errorf("api: unknown tracker %q", tracker)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/"+ep.path, nil)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	var rows []map[string]json.RawMessage
	if err := c.do(req, &rows); err != nil {
		return nil, err
	}

	entries := make([]store.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := decodeEntry(tracker, ep, schema, row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Create pushes one entry and returns the remote ID.
func (c *Client) Create(ctx context.Context, e store.Entry) (string, error) {
	ep, ok := endpoints[e.Tracker]
	if !ok {
		return "", fmt.Errorf("api: no endpoint for tracker %q", e.Tracker)
	}

	payload := make(map[string]interface{}, len(e.Values)+1)
	for field, value := range e.Values {
		payload[field] = value
	}
	payload["date_time"] = e.OccurredAt.UTC().Format(time.RFC3339)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("api: encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+ep.path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var row map[string]json.RawMessage
	if err := c.do(req, &row); err != nil {
		return "", err
	}
	id, err := decodeID(row, ep.idField)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a remote log by its backend primary key.
func (c *Client) Delete(ctx context.Context, tracker, remoteID string) error {
	ep, ok := endpoints[tracker]
	if !ok {
		return fmt.Errorf("api: no endpoint for tracker %q", tracker)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/"+ep.path+remoteID+"/", nil)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	return c.do(req, nil)
}

// Streaks fetches consecutive-day logging streaks for all trackers.
func (c *Client) Streaks(ctx context.Context) (map[string]int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/logging/streaks/", nil)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	var streaks map[string]int
	if err := c.do(req, &streaks); err != nil {
		return nil, err
	}
	return streaks, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("api: %s %s: status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func decodeEntry(tracker string, ep endpoint, schema core.TrackerSchema, row map[string]json.RawMessage) (store.Entry, error) {
	id, err := decodeID(row, ep.idField)
	if err != nil {
		return store.Entry{}, err
	}

	occurred, err := decodeTime(row)
	if err != nil {
		return store.Entry{}, fmt.Errorf("api: entry %s/%s: %w", tracker, id, err)
	}

	values := make(map[string]float64)
	for _, field := range schema.FieldNames() {
		raw, ok := row[field]
		if !ok || string(raw) == "null" {
			continue
		}
		v, err := decodeNumber(raw)
		if err != nil {
			return store.Entry{}, fmt.Errorf("api: entry %s/%s field %s: %w", tracker, id, field, err)
		}
		values[field] = v
	}

	return store.Entry{
		// Deterministic local ID keyed by the remote row.
		ID:         tracker + "-" + id,
		Tracker:    tracker,
		OccurredAt: occurred,
		Values:     values,
	}, nil
}

func decodeID(row map[string]json.RawMessage, idField string) (string, error) {
	raw, ok := row[idField]
	if !ok {
		return "", fmt.Errorf("api: response missing %s", idField)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("api: decode %s: %w", idField, err)
	}
	return n.String(), nil
}

func decodeTime(row map[string]json.RawMessage) (time.Time, error) {
	for _, key := range []string{"date_time", "created_at"} {
		raw, ok := row[key]
		if !ok || string(raw) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, fmt.Errorf("decode %s: %w", key, err)
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse %s %q: %w", key, s, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("no timestamp field")
}

// decodeNumber accepts both JSON numbers and the backend's
// string-encoded decimals.
func decodeNumber(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("not a number: %s", raw)
	}
	return strconv.ParseFloat(s, 64)
}
