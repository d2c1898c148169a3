package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vitalog-dev/vitalog/internal/store"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		if creds["username"] != "alex" || creds["password"] != "hunter2" {
			t.Errorf("unexpected credentials: %v", creds)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access":  "acc-token",
			"refresh": "ref-token",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	tokens, err := c.Login(context.Background(), "alex", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.Access != "acc-token" || tokens.Refresh != "ref-token" {
		t.Errorf("unexpected tokens: %+v", tokens)
	}
	if c.token != "acc-token" {
		t.Error("expected client to adopt access token")
	}
}

func TestLoginMissingAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"detail": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.Login(context.Background(), "alex", "hunter2"); err == nil {
		t.Fatal("expected error for response without access token")
	}
}

func TestEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/logging/weight/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header: %q", got)
		}
		// weight comes back as a string-encoded decimal
		w.Write([]byte(`[
			{"weight_log_id": 7, "user": 1, "weight": "82.40", "weight_unit": "kg",
			 "date_time": "2024-06-01T08:00:00Z", "created_at": "2024-06-01T08:01:00Z"},
			{"weight_log_id": 8, "user": 1, "weight": 81.9, "weight_unit": "kg",
			 "date_time": "2024-06-02T08:00:00Z", "created_at": "2024-06-02T08:01:00Z"}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	entries, err := c.Entries(context.Background(), "weight")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.ID != "weight-7" {
		t.Errorf("expected deterministic ID weight-7, got %q", first.ID)
	}
	if first.Values["weight"] != 82.4 {
		t.Errorf("expected string decimal parsed to 82.4, got %v", first.Values["weight"])
	}
	if entries[1].Values["weight"] != 81.9 {
		t.Errorf("expected plain number parsed, got %v", entries[1].Values["weight"])
	}
	if first.OccurredAt.Day() != 1 {
		t.Errorf("expected date_time used, got %v", first.OccurredAt)
	}
}

func TestEntriesSkipsNullFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"measurement_id": 3, "user": 1, "waist": "34.00", "upper_arm": null,
			 "date_time": "2024-06-01T08:00:00Z", "created_at": "2024-06-01T08:00:00Z"}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	entries, err := c.Entries(context.Background(), "measurements")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	values := entries[0].Values
	if _, ok := values["upper_arm"]; ok {
		t.Error("expected null field to be absent from values")
	}
	if values["waist"] != 34 {
		t.Errorf("expected waist 34, got %v", values["waist"])
	}
}

func TestEntriesUnknownTracker(t *testing.T) {
	c := New("http://localhost", "tok")
	if _, err := c.Entries(context.Background(), "blood-sugar"); err == nil {
		t.Fatal("expected error for unknown tracker")
	}
}

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/logging/water/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload["amount"] != 500.0 {
			t.Errorf("expected amount 500, got %v", payload["amount"])
		}
		if payload["date_time"] != "2024-06-01T09:00:00Z" {
			t.Errorf("unexpected date_time: %v", payload["date_time"])
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"water_log_id": 42, "amount": "500.00"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	id, err := c.Create(context.Background(), store.Entry{
		Tracker:    "water",
		OccurredAt: mustTime(t, "2024-06-01T09:00:00Z"),
		Values:     map[string]float64{"amount": 500},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "42" {
		t.Errorf("expected remote ID 42, got %q", id)
	}
}

func TestDelete(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.Delete(context.Background(), "steps", "9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "DELETE /api/logging/steps/9/" {
		t.Errorf("unexpected request: %s", gotPath)
	}
}

func TestStreaks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/logging/streaks/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"weight": 5, "water": 12}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	streaks, err := c.Streaks(context.Background())
	if err != nil {
		t.Fatalf("streaks: %v", err)
	}
	if streaks["weight"] != 5 || streaks["water"] != 12 {
		t.Errorf("unexpected streaks: %v", streaks)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token expired"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "stale")
	_, err := c.Entries(context.Background(), "weight")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}
