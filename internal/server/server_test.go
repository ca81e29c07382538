package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/yeschef/hungie/internal/config"
	"github.com/yeschef/hungie/internal/home"
	"github.com/yeschef/hungie/internal/server/endpoints"
)

// startTestServer boots a full server on a random-ish test port with a
// temp home directory, and waits for it to answer health checks.
func startTestServer(t *testing.T, port string) (baseURL string, cancel context.CancelFunc) {
	t.Helper()

	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New: %v", err)
	}
	cm, err := config.NewManager("")
	if err != nil {
		t.Fatalf("config.NewManager: %v", err)
	}

	srv, err := New(Config{
		Host:          "127.0.0.1",
		Port:          port,
		Home:          h,
		ConfigManager: cm,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancelCtx := context.WithCancel(context.Background())
	go func() {
		if err := srv.Start(ctx); err != nil {
			t.Logf("server exited: %v", err)
		}
	}()

	baseURL = fmt.Sprintf("http://127.0.0.1:%s", port)
	if err := waitForServer(baseURL, 10*time.Second); err != nil {
		cancelCtx()
		t.Fatalf("server did not start: %v", err)
	}
	return baseURL, cancelCtx
}

func waitForServer(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server not responding at %s", baseURL)
}

func TestServer_Lifecycle(t *testing.T) {
	baseURL, cancel := startTestServer(t, "18090")
	defer cancel()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		defer resp.Body.Close()

		var health endpoints.HealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if health.Status != "ok" {
			t.Errorf("health.Status = %q, want ok", health.Status)
		}
	})

	t.Run("ready", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/ready")
		if err != nil {
			t.Fatalf("ready check failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("ready status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("books empty", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/api/books")
		if err != nil {
			t.Fatalf("list books failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("books status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var books []any
		if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
			t.Fatalf("failed to decode books: %v", err)
		}
		if len(books) != 0 {
			t.Errorf("expected empty book list, got %d", len(books))
		}
	})

	t.Run("search requires query", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/api/search")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("search status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("recipe not found", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/api/recipes/no-such-recipe")
		if err != nil {
			t.Fatalf("get recipe failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("recipe status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})

	t.Run("extract rejects missing path", func(t *testing.T) {
		resp, err := http.Post(baseURL+"/api/extract", "application/json",
			strings.NewReader(`{}`))
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("extract status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("swagger spec served", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/swagger.json")
		if err != nil {
			t.Fatalf("swagger fetch failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("swagger status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var spec map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&spec); err != nil {
			t.Fatalf("swagger.json is not valid JSON: %v", err)
		}
		if spec["swagger"] != "2.0" {
			t.Errorf("unexpected spec version: %v", spec["swagger"])
		}
	})
}

func TestNew_RequiresHome(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing home directory")
	}
}
