package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dan9191/calc-service/internal/config"
	"github.com/Dan9191/calc-service/internal/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		TokenSecret:     "secret",
		TokenTTL:        time.Hour,
		CacheTTL:        time.Hour,
		RateLimit:       2,
		RateLimitWindow: time.Minute,
		CleanupSchedule: "@every 1m",
	}
}

func TestRouter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	a, err := New(context.Background(), testConfig(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := a.Router()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hook.Reset()

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "198.51.100.7:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes[i] = w.Code
		if w.Header().Get(middleware.RequestIDHeader) == "" {
			t.Errorf("request %d: expected a request id", i)
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 200, 200, 429, got %v", codes)
	}
	if len(hook.AllEntries()) != 3 {
		t.Errorf("expected one log entry per request, got %d", len(hook.AllEntries()))
	}
}

func TestRouter_UnmatchedRoutes(t *testing.T) {
	logger, hook := test.NewNullLogger()
	a, err := New(context.Background(), testConfig(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := a.Router()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hook.Reset()

	requests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodDelete, "/modes", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nowhere", http.StatusTooManyRequests},
	}
	for i, tt := range requests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.RemoteAddr = "203.0.113.9:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Errorf("request %d: expected %d, got %d", i, tt.status, w.Code)
		}
		if w.Header().Get(middleware.RequestIDHeader) == "" {
			t.Errorf("request %d: expected a request id", i)
		}
	}
	if len(hook.AllEntries()) != len(requests) {
		t.Errorf("expected one log entry per request, got %d", len(hook.AllEntries()))
	}
}

func TestNew_DataFiles(t *testing.T) {
	logger, _ := test.NewNullLogger()
	dir := t.TempDir()

	cfg := testConfig()
	cfg.UnitsFile = filepath.Join(dir, "missing.yaml")
	if _, err := New(context.Background(), cfg, logger); err == nil {
		t.Error("expected an error for a missing units file")
	}

	path := filepath.Join(dir, "units.yaml")
	data := "categories:\n  - name: Time\n    units:\n      - {symbol: s, name: Second, scale_to_base: 1}\n      - {symbol: min, name: Minute, scale_to_base: 60}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("failed to write units: %v", err)
	}
	cfg.UnitsFile = path
	a, err := New(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cats := a.Service().UnitCategories()
	if len(cats) != 1 || cats[0].Name != "Time" {
		t.Errorf("expected the Time table, got %+v", cats)
	}
}

func TestStartHousekeeping_InvalidSchedule(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := testConfig()
	cfg.CleanupSchedule = "whenever"

	a, err := New(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Router(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.startHousekeeping(); err == nil {
		t.Error("expected an error for an invalid schedule")
	}
}

func TestNewLogger(t *testing.T) {
	if got := NewLogger("debug").GetLevel(); got != logrus.DebugLevel {
		t.Errorf("expected debug, got %v", got)
	}
	if got := NewLogger("loud").GetLevel(); got != logrus.InfoLevel {
		t.Errorf("expected info fallback, got %v", got)
	}
}
