package analytics

import "time"

// Kind identifies which analysis produced an event.
type Kind string

const (
	KindRewrite Kind = "rewrite"
	KindScore   Kind = "score"
	KindOverlap Kind = "overlap"
)

// AnalysisEvent is published to Kafka once per completed analysis request.
type AnalysisEvent struct {
	Kind           Kind      `json:"kind"`
	Tone           string    `json:"tone,omitempty"`
	Length         string    `json:"length,omitempty"`
	TextChars      int       `json:"text_chars"`
	TokenCount     int       `json:"token_count"`
	SentenceCount  int       `json:"sentence_count"`
	Score          float64   `json:"score,omitempty"`
	Label          string    `json:"label,omitempty"`
	PercentOverlap float64   `json:"percent_overlap,omitempty"`
	MatchCount     int       `json:"match_count,omitempty"`
	CacheHit       bool      `json:"cache_hit"`
	LatencyMs      int64     `json:"latency_ms"`
	RequestID      string    `json:"request_id"`
	Timestamp      time.Time `json:"timestamp"`
}
