// Package handler implements the HTTP transport shell over the analysis
// engine. It owns request validation (minimum text lengths, enum options),
// result caching, history persistence, analytics events, and serialization.
// The engine packages themselves never validate and never fail.
package handler

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/textlens/textlens/internal/analytics"
	"github.com/textlens/textlens/internal/engine/authorship"
	"github.com/textlens/textlens/internal/engine/overlap"
	"github.com/textlens/textlens/internal/engine/rewrite"
	"github.com/textlens/textlens/internal/engine/segment"
	"github.com/textlens/textlens/internal/server/cache"
	"github.com/textlens/textlens/internal/server/store"
	"github.com/textlens/textlens/pkg/apperrors"
	"github.com/textlens/textlens/pkg/config"
	"github.com/textlens/textlens/pkg/logger"
	"github.com/textlens/textlens/pkg/metrics"
	"github.com/textlens/textlens/pkg/middleware"
	"github.com/textlens/textlens/pkg/tracing"
)

// Handler serves the analysis endpoints. Cache, store, collector, and
// metrics are all optional; a nil dependency disables that concern.
type Handler struct {
	cfg       config.AnalyzeConfig
	cache     *cache.ResultCache
	store     *store.Store
	collector *analytics.Collector
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func New(cfg config.AnalyzeConfig, resultCache *cache.ResultCache, historyStore *store.Store, collector *analytics.Collector, m *metrics.Metrics) *Handler {
	return &Handler{
		cfg:       cfg,
		cache:     resultCache,
		store:     historyStore,
		collector: collector,
		metrics:   m,
		logger:    slog.Default().With("component", "analysis-handler"),
	}
}

type rewriteRequest struct {
	Text       string `json:"text"`
	Tone       string `json:"tone"`
	KeepLength string `json:"keep_length"`
}

type rewriteResponse struct {
	Rewritten  string `json:"rewritten"`
	Tone       string `json:"tone"`
	KeepLength string `json:"keep_length"`
}

type textRequest struct {
	Text string `json:"text"`
}

// Rewrite handles POST /api/v1/rewrite.
func (h *Handler) Rewrite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req rewriteRequest
	if err := h.decode(r, &req); err != nil {
		h.writeAppError(w, err)
		return
	}
	text, appErr := h.validateText(req.Text, h.cfg.MinTextChars)
	if appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	tone := rewrite.Tone(defaultString(req.Tone, h.cfg.DefaultTone))
	switch tone {
	case rewrite.ToneNatural, rewrite.ToneFormal, rewrite.ToneCasual:
	default:
		h.writeAppError(w, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest,
			"tone must be one of natural, formal, casual"))
		return
	}
	length := rewrite.Length(defaultString(req.KeepLength, h.cfg.DefaultLength))
	switch length {
	case rewrite.LengthShorter, rewrite.LengthMedium, rewrite.LengthLonger:
	default:
		h.writeAppError(w, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest,
			"keep_length must be one of shorter, medium, longer"))
		return
	}

	// Each invocation gets its own random source so concurrent requests
	// never share generator state.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	_, span := tracing.StartChildSpan(ctx, "engine.rewrite")
	rewritten := rewrite.Rewrite(text, rewrite.Options{Tone: tone, Length: length}, rng)
	span.SetAttr("text_chars", utf8.RuneCountInString(text))
	span.End()

	latency := time.Since(start)
	h.observe(analytics.KindRewrite, text, latency)
	h.record(ctx, store.Record{
		Kind:       string(analytics.KindRewrite),
		TextSHA:    textSHA(text),
		TextChars:  utf8.RuneCountInString(text),
		TokenCount: len(segment.Tokenize(text)),
		LatencyMs:  latency.Milliseconds(),
	})
	h.track(ctx, analytics.AnalysisEvent{
		Kind:          analytics.KindRewrite,
		Tone:          string(tone),
		Length:        string(length),
		TextChars:     utf8.RuneCountInString(text),
		TokenCount:    len(segment.Tokenize(text)),
		SentenceCount: len(segment.SplitSentences(text)),
		LatencyMs:     latency.Milliseconds(),
	})

	log.Info("rewrite completed",
		"tone", tone,
		"keep_length", length,
		"text_chars", utf8.RuneCountInString(text),
		"latency_ms", latency.Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, rewriteResponse{
		Rewritten:  rewritten,
		Tone:       string(tone),
		KeepLength: string(length),
	})
}

// Score handles POST /api/v1/score.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req textRequest
	if err := h.decode(r, &req); err != nil {
		h.writeAppError(w, err)
		return
	}
	text, appErr := h.validateText(req.Text, h.cfg.MinTextChars)
	if appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	result, cacheHit, err := cache.GetOrCompute(ctx, h.cache, "score", text, func() (authorship.Result, error) {
		_, span := tracing.StartChildSpan(ctx, "engine.score")
		defer span.End()
		return authorship.Score(text), nil
	})
	if err != nil {
		log.Error("score computation failed", "error", err)
		h.writeAppError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "scoring failed"))
		return
	}
	h.countCache(cacheHit)

	latency := time.Since(start)
	h.observe(analytics.KindScore, text, latency)
	score := result.Score
	label := result.Label
	h.record(ctx, store.Record{
		Kind:       string(analytics.KindScore),
		TextSHA:    textSHA(text),
		TextChars:  utf8.RuneCountInString(text),
		TokenCount: len(segment.Tokenize(text)),
		Score:      &score,
		Label:      &label,
		LatencyMs:  latency.Milliseconds(),
	})
	h.track(ctx, analytics.AnalysisEvent{
		Kind:          analytics.KindScore,
		TextChars:     utf8.RuneCountInString(text),
		TokenCount:    len(segment.Tokenize(text)),
		SentenceCount: len(segment.SplitSentences(text)),
		Score:         result.Score,
		Label:         result.Label,
		CacheHit:      cacheHit,
		LatencyMs:     latency.Milliseconds(),
	})

	log.Info("score completed",
		"score", result.Score,
		"label", result.Label,
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, result)
}

// Overlap handles POST /api/v1/overlap.
func (h *Handler) Overlap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req textRequest
	if err := h.decode(r, &req); err != nil {
		h.writeAppError(w, err)
		return
	}
	text, appErr := h.validateText(req.Text, h.cfg.MinOverlapTextChars)
	if appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	result, cacheHit, err := cache.GetOrCompute(ctx, h.cache, "overlap", text, func() (overlap.Result, error) {
		_, span := tracing.StartChildSpan(ctx, "engine.overlap")
		defer span.End()
		return overlap.Check(text), nil
	})
	if err != nil {
		log.Error("overlap computation failed", "error", err)
		h.writeAppError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "overlap check failed"))
		return
	}
	h.countCache(cacheHit)

	latency := time.Since(start)
	h.observe(analytics.KindOverlap, text, latency)
	percent := result.PercentOverlap
	h.record(ctx, store.Record{
		Kind:           string(analytics.KindOverlap),
		TextSHA:        textSHA(text),
		TextChars:      utf8.RuneCountInString(text),
		TokenCount:     len(segment.Tokenize(text)),
		PercentOverlap: &percent,
		LatencyMs:      latency.Milliseconds(),
	})
	h.track(ctx, analytics.AnalysisEvent{
		Kind:           analytics.KindOverlap,
		TextChars:      utf8.RuneCountInString(text),
		TokenCount:     len(segment.Tokenize(text)),
		SentenceCount:  len(segment.SplitSentences(text)),
		PercentOverlap: result.PercentOverlap,
		MatchCount:     len(result.Matches),
		CacheHit:       cacheHit,
		LatencyMs:      latency.Milliseconds(),
	})

	log.Info("overlap completed",
		"percent_overlap", result.PercentOverlap,
		"matches", len(result.Matches),
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, result)
}

// History handles GET /api/v1/analyses.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	records, err := h.store.Recent(r.Context(), h.cfg.HistoryLimit)
	if err != nil {
		logger.FromContext(r.Context()).Error("history query failed", "error", err)
		h.writeAppError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "history unavailable"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"analyses": records})
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// CacheInvalidate handles POST /api/v1/cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeAppError(w, apperrors.New(apperrors.ErrInternal, http.StatusServiceUnavailable, "caching is disabled"))
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeAppError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "cache invalidation failed"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) decode(r *http.Request, dst any) *apperrors.AppError {
	r.Body = http.MaxBytesReader(nil, r.Body, int64(h.cfg.MaxTextBytes)+4096)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid JSON body: %v", err)
	}
	return nil
}

// validateText enforces the boundary length checks. The engine never sees
// text that fails them.
func (h *Handler) validateText(text string, minChars int) (string, *apperrors.AppError) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minChars {
		return "", apperrors.Newf(apperrors.ErrTextTooShort, http.StatusBadRequest,
			"text must be at least %d characters", minChars)
	}
	if len(trimmed) > h.cfg.MaxTextBytes {
		return "", apperrors.Newf(apperrors.ErrTextTooLong, http.StatusBadRequest,
			"text must be at most %d bytes", h.cfg.MaxTextBytes)
	}
	return trimmed, nil
}

func (h *Handler) observe(kind analytics.Kind, text string, latency time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.AnalysesTotal.WithLabelValues(string(kind), "ok").Inc()
	h.metrics.AnalysisDuration.WithLabelValues(string(kind)).Observe(latency.Seconds())
	h.metrics.AnalysisTextChars.WithLabelValues(string(kind)).Observe(float64(utf8.RuneCountInString(text)))
}

func (h *Handler) countCache(hit bool) {
	if h.metrics == nil || h.cache == nil {
		return
	}
	if hit {
		h.metrics.CacheHitsTotal.Inc()
	} else {
		h.metrics.CacheMissesTotal.Inc()
	}
}

func (h *Handler) record(ctx context.Context, rec store.Record) {
	if h.store == nil {
		return
	}
	if err := h.store.Insert(ctx, rec); err != nil {
		h.logger.Error("history insert failed", "error", err)
	}
}

func (h *Handler) track(ctx context.Context, event analytics.AnalysisEvent) {
	if h.collector == nil {
		return
	}
	event.RequestID = middleware.GetRequestID(ctx)
	event.Timestamp = time.Now().UTC()
	h.collector.Track(event)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	h.writeJSON(w, appErr.StatusCode, map[string]string{"error": appErr.Message})
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func textSHA(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", sum[:])
}
