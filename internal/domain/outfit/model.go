package outfit

import (
	"time"

	"github.com/yanqian/outfit-advisor/pkg/metrics"
)

// Period keys every normalized plan must carry.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
)

// Periods lists the day segments in presentation order.
var Periods = []string{PeriodMorning, PeriodAfternoon, PeriodEvening}

// Query defaults used when a parameter is missing.
const (
	DefaultTemperature = "20"
	DefaultDescription = "Açık"
	DefaultWind        = "10"
	DefaultLocation    = "Bilinmiyor"
)

// WeatherQuery carries the raw weather parameters of a request. Values are
// interpolated into text only and never validated numerically.
type WeatherQuery struct {
	Temperature string `json:"temp"`
	Description string `json:"description"`
	Wind        string `json:"wind"`
	Location    string `json:"location"`
}

// Alternative is one optional outfit suggestion within a period.
type Alternative struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recommendation is the advice for a single period.
type Recommendation struct {
	Short        string        `json:"short"`
	Detail       string        `json:"detail"`
	Reason       string        `json:"reason"`
	Alternatives []Alternative `json:"alternatives"`
}

// DayPlan maps period keys to recommendations. It is kept as a generic JSON
// object so that fields and extra keys supplied by the model survive unchanged.
type DayPlan map[string]any

// Source describes where the returned plan came from.
type Source string

const (
	SourceModel              Source = "model"
	SourceFallbackExtraction Source = "fallback_extraction"
	SourceFallbackTimeout    Source = "fallback_timeout"
	SourceUpstreamError      Source = "upstream_error"
)

// IsFallback reports whether the deterministic plan was served.
func (s Source) IsFallback() bool {
	return s == SourceFallbackExtraction || s == SourceFallbackTimeout
}

// Generation is the raw output of one call to the text generation capability.
type Generation struct {
	Text  string
	Model string
	Usage metrics.TokenUsage
}

// Result is the normalized outcome of one recommendation request.
type Result struct {
	Plan   DayPlan
	Source Source
	Model  string
	Usage  metrics.TokenUsage
}

// Outcome is the telemetry kept for a request. It never contains query or plan content.
type Outcome struct {
	Source    Source
	Model     string
	Latency   time.Duration
	Usage     metrics.TokenUsage
	CreatedAt time.Time
}

// SourceCount aggregates outcomes per source.
type SourceCount struct {
	Source Source `json:"source"`
	Count  int64  `json:"count"`
}

// DefaultRecordTimeout bounds an outcome write when Config leaves it unset.
const DefaultRecordTimeout = 2 * time.Second

// Config wires runtime settings for the outfit domain.
type Config struct {
	GenerationTimeout time.Duration
	RecordTimeout     time.Duration
}

func (r Recommendation) value() map[string]any {
	return map[string]any{
		"short":        r.Short,
		"detail":       r.Detail,
		"reason":       r.Reason,
		"alternatives": alternativeValues(r.Alternatives),
	}
}

func alternativeValues(items []Alternative) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"title":       item.Title,
			"description": item.Description,
		})
	}
	return out
}
