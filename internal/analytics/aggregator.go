// Package analytics implements the usage-analytics pipeline: a non-blocking
// collector that publishes per-request analysis events to Kafka, and an
// aggregator service that consumes them into in-memory statistics.
package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/textlens/textlens/pkg/kafka"
)

// AggregatedStats is the dashboard-facing summary of consumed events.
type AggregatedStats struct {
	TotalAnalyses     int64            `json:"total_analyses"`
	ByKind            map[string]int64 `json:"by_kind"`
	LabelCounts       map[string]int64 `json:"label_counts"`
	CacheHits         int64            `json:"cache_hits"`
	CacheMisses       int64            `json:"cache_misses"`
	AvgScore          float64          `json:"avg_score"`
	AvgPercentOverlap float64          `json:"avg_percent_overlap"`
	AvgLatencyMs      float64          `json:"avg_latency_ms"`
	P50LatencyMs      int64            `json:"p50_latency_ms"`
	P95LatencyMs      int64            `json:"p95_latency_ms"`
	P99LatencyMs      int64            `json:"p99_latency_ms"`
	AvgTextChars      float64          `json:"avg_text_chars"`
	AnalysesPerMinute float64          `json:"analyses_per_minute"`
}

// Aggregator consumes analysis events and keeps running statistics.
type Aggregator struct {
	mu           sync.RWMutex
	total        int64
	byKind       map[Kind]int64
	labelCounts  map[string]int64
	cacheHits    int64
	cacheMisses  int64
	scoreSum     float64
	scoreCount   int64
	overlapSum   float64
	overlapCount int64
	charsSum     int64
	latencies    []int64
	startTime    time.Time

	logger *slog.Logger
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		byKind:      make(map[Kind]int64),
		labelCounts: make(map[string]int64),
		latencies:   make([]int64, 0, 10000),
		startTime:   time.Now(),
		logger:      slog.Default().With("component", "analytics-aggregator"),
	}
}

// Start enters the consume loop of the given consumer until ctx is cancelled.
func (a *Aggregator) Start(ctx context.Context, consumer *kafka.Consumer) error {
	a.logger.Info("analytics aggregator starting")
	return consumer.Start(ctx)
}

// HandleEvent returns the Kafka message handler that records events into agg.
func HandleEvent(agg *Aggregator) kafka.MessageHandler {
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[AnalysisEvent](value)
		if err != nil {
			agg.logger.Error("failed to decode analysis event", "error", err)
			return nil
		}
		agg.Record(event)
		return nil
	}
}

// Record folds a single event into the running statistics.
func (a *Aggregator) Record(event AnalysisEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.byKind[event.Kind]++
	a.charsSum += int64(event.TextChars)
	a.latencies = append(a.latencies, event.LatencyMs)

	if event.CacheHit {
		a.cacheHits++
	} else {
		a.cacheMisses++
	}
	if event.Kind == KindScore {
		a.scoreSum += event.Score
		a.scoreCount++
		if event.Label != "" {
			a.labelCounts[event.Label]++
		}
	}
	if event.Kind == KindOverlap {
		a.overlapSum += event.PercentOverlap
		a.overlapCount++
	}
}

// Stats returns a snapshot of the aggregated statistics.
func (a *Aggregator) Stats() AggregatedStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := AggregatedStats{
		TotalAnalyses: a.total,
		ByKind:        make(map[string]int64, len(a.byKind)),
		LabelCounts:   make(map[string]int64, len(a.labelCounts)),
		CacheHits:     a.cacheHits,
		CacheMisses:   a.cacheMisses,
	}
	for kind, count := range a.byKind {
		stats.ByKind[string(kind)] = count
	}
	for label, count := range a.labelCounts {
		stats.LabelCounts[label] = count
	}
	if a.scoreCount > 0 {
		stats.AvgScore = a.scoreSum / float64(a.scoreCount)
	}
	if a.overlapCount > 0 {
		stats.AvgPercentOverlap = a.overlapSum / float64(a.overlapCount)
	}
	if a.total > 0 {
		stats.AvgTextChars = float64(a.charsSum) / float64(a.total)
	}
	if len(a.latencies) > 0 {
		sorted := make([]int64, len(a.latencies))
		copy(sorted, a.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyMs = float64(sum) / float64(len(sorted))
		stats.P50LatencyMs = percentile(sorted, 50)
		stats.P95LatencyMs = percentile(sorted, 95)
		stats.P99LatencyMs = percentile(sorted, 99)
	}
	elapsed := time.Since(a.startTime).Minutes()
	if elapsed > 0 {
		stats.AnalysesPerMinute = float64(a.total) / elapsed
	}
	return stats
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
