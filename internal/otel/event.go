// Package otel provides structured observability for flick.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// events asynchronously via a buffered channel and a background drain
// goroutine. An optional RingBuffer keeps recent events in memory for the
// debug overlay.
package otel

import (
	"time"

	"github.com/goccy/go-json"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an observability event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Debounce scheduler
	KindDebounceSchedule EventKind = "debounce.schedule"
	KindDebounceFire     EventKind = "debounce.fire"
	KindDebounceCancel   EventKind = "debounce.cancel"

	// Suggestion client
	KindSuggestStart    EventKind = "suggest.start"
	KindSuggestComplete EventKind = "suggest.complete"
	KindSuggestError    EventKind = "suggest.error"
	KindSuggestStale    EventKind = "suggest.stale"
	KindSuggestSkipped  EventKind = "suggest.skipped"

	// Recommendation client
	KindRecommendStart    EventKind = "recommend.start"
	KindRecommendComplete EventKind = "recommend.complete"
	KindRecommendError    EventKind = "recommend.error"
	KindRecommendStale    EventKind = "recommend.stale"

	// UI events
	KindKeyPress EventKind = "ui.key"
	KindSelect   EventKind = "ui.select"
	KindDismiss  EventKind = "ui.dismiss"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"
	KindHealth   EventKind = "sys.health"

	// Message tracing (FLICK_TRACE)
	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "ui", "suggest", "recommend", "main"
	SessionID string         `json:"session_id,omitempty"`
	QueryID   string         `json:"qid,omitempty"`
	Token     uint64         `json:"token,omitempty"` // request token, monotonic per client
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"`
	Count     int            `json:"count,omitempty"`
	Status    int            `json:"status,omitempty"` // HTTP status when relevant
	Query     string         `json:"query,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs on the way out.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
