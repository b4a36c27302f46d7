// Package integration contains tests that exercise the analysis service with
// real handler wiring. Tests that need Redis or PostgreSQL skip themselves
// when the backing service is unavailable.
//
// Run with:
//
//	go test -v ./test/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/textlens/textlens/internal/engine/authorship"
	"github.com/textlens/textlens/internal/server/cache"
	"github.com/textlens/textlens/internal/server/handler"
	"github.com/textlens/textlens/internal/server/store"
	"github.com/textlens/textlens/pkg/config"
	"github.com/textlens/textlens/pkg/middleware"
	"github.com/textlens/textlens/pkg/postgres"
	pkgredis "github.com/textlens/textlens/pkg/redis"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func skipIfNoRedis(t *testing.T) *pkgredis.Client {
	t.Helper()
	client, err := pkgredis.NewClient(config.RedisConfig{
		Addr:     envOrDefault("TEST_REDIS_ADDR", "localhost:6379"),
		PoolSize: 5,
		CacheTTL: time.Minute,
	})
	if err != nil {
		t.Skipf("skipping integration test: redis unavailable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func skipIfNoPostgres(t *testing.T) *postgres.Client {
	t.Helper()
	db, err := postgres.New(config.PostgresConfig{
		Host:            envOrDefault("TEST_POSTGRES_HOST", "localhost"),
		Port:            envOrDefaultInt("TEST_POSTGRES_PORT", 5432),
		Database:        envOrDefault("TEST_POSTGRES_DB", "textlens_test"),
		User:            envOrDefault("TEST_POSTGRES_USER", "textlens"),
		Password:        envOrDefault("TEST_POSTGRES_PASSWORD", "localdev"),
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		t.Skipf("skipping integration test: postgres unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func analyzeConfig() config.AnalyzeConfig {
	return config.AnalyzeConfig{
		MinTextChars:        20,
		MinOverlapTextChars: 50,
		MaxTextBytes:        1 << 20,
		DefaultTone:         "natural",
		DefaultLength:       "medium",
		HistoryLimit:        50,
		RateLimitPerMinute:  120,
	}
}

// newAnalysisServer wires the real handler and middleware chain the way
// cmd/server does, with optional cache and store.
func newAnalysisServer(t *testing.T, resultCache *cache.ResultCache, historyStore *store.Store, rateLimit int) *httptest.Server {
	t.Helper()

	h := handler.New(analyzeConfig(), resultCache, historyStore, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/rewrite", h.Rewrite)
	mux.HandleFunc("POST /api/v1/score", h.Score)
	mux.HandleFunc("POST /api/v1/overlap", h.Overlap)
	mux.HandleFunc("GET /api/v1/analyses", h.History)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)

	limiter := middleware.NewLimiter(rateLimit, time.Minute)

	var chain http.Handler = mux
	chain = middleware.RateLimit(limiter)(chain)
	chain = middleware.RequestID(chain)

	srv := httptest.NewServer(chain)
	t.Cleanup(srv.Close)
	return srv
}

func postText(t *testing.T, url, text string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"text": text})
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

const passage = "The committee reviewed the proposal carefully before reaching a decision. Several members raised concerns about the timeline and the budget."

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

// TestAnalysisEndpointsEndToEnd runs all three analysis endpoints through the
// full middleware chain with caching and history disabled.
func TestAnalysisEndpointsEndToEnd(t *testing.T) {
	srv := newAnalysisServer(t, nil, nil, 120)

	t.Run("rewrite", func(t *testing.T) {
		resp := postText(t, srv.URL+"/api/v1/rewrite", passage)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
		}
		if resp.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
		var out struct {
			Rewritten string `json:"rewritten"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if out.Rewritten == "" {
			t.Error("rewritten text is empty")
		}
	})

	t.Run("score", func(t *testing.T) {
		resp := postText(t, srv.URL+"/api/v1/score", passage)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var out authorship.Result
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if out.Label == "" {
			t.Error("label is empty")
		}
	})

	t.Run("overlap", func(t *testing.T) {
		resp := postText(t, srv.URL+"/api/v1/overlap", passage)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		resp := postText(t, srv.URL+"/api/v1/score", "too short")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

// TestScoreResultCaching verifies that a second identical request is served
// from Redis and that the cached result matches the computed one.
func TestScoreResultCaching(t *testing.T) {
	client := skipIfNoRedis(t)
	resultCache := cache.New(client, time.Minute)

	first, hit, err := cache.GetOrCompute(t.Context(), resultCache, "score", passage, func() (authorship.Result, error) {
		return authorship.Score(passage), nil
	})
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if hit {
		t.Error("first lookup should be a miss")
	}

	second, hit, err := cache.GetOrCompute(t.Context(), resultCache, "score", passage, func() (authorship.Result, error) {
		t.Error("compute should not run on a cache hit")
		return authorship.Result{}, nil
	})
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if !hit {
		t.Error("second lookup should be a hit")
	}
	if second.Score != first.Score || second.Label != first.Label {
		t.Errorf("cached result %+v differs from computed %+v", second, first)
	}

	if err := resultCache.Invalidate(t.Context()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
}

// TestHistoryStoreRoundTrip inserts an analysis record and reads it back.
func TestHistoryStoreRoundTrip(t *testing.T) {
	db := skipIfNoPostgres(t)
	st := store.New(db)

	if err := st.EnsureSchema(t.Context()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	score := 0.512
	label := "Mixed"
	rec := store.Record{
		Kind:       "score",
		TextSHA:    "deadbeef",
		TextChars:  140,
		TokenCount: 22,
		Score:      &score,
		Label:      &label,
		LatencyMs:  3,
	}
	if err := st.Insert(t.Context(), rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	records, err := st.Recent(t.Context(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected at least one record")
	}
	latest := records[0]
	if latest.Kind != "score" {
		t.Errorf("kind = %q, want score", latest.Kind)
	}
	if latest.Score == nil || *latest.Score != score {
		t.Errorf("score = %v, want %v", latest.Score, score)
	}
}

// TestRateLimitEnforced verifies the per-client token bucket.
func TestRateLimitEnforced(t *testing.T) {
	srv := newAnalysisServer(t, nil, nil, 2)

	for i := 0; i < 2; i++ {
		resp := postText(t, srv.URL+"/api/v1/score", passage)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}

	resp := postText(t, srv.URL+"/api/v1/score", passage)
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", resp.StatusCode)
	}
}

// ---------------------------------------------------------------------------
// Env helpers
// ---------------------------------------------------------------------------

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
