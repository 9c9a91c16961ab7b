package otel

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
)

// TraceEnvVar turns on per-message tracing in the UI loop.
const TraceEnvVar = "FLICK_TRACE"

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(parseTrace(os.Getenv(TraceEnvVar)))
}

// parseTrace accepts the usual boolean spellings. Any other non-empty value
// counts as on, so FLICK_TRACE=yes works too.
func parseTrace(v string) bool {
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return true
}

// TraceEnabled reports whether message tracing is on.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}

// Trace records that comp handled msg, keyed by the message's Go type.
// It is a no-op unless tracing is on.
func (l *Logger) Trace(comp string, msg any) {
	if !TraceEnabled() {
		return
	}
	l.Emit(Event{Level: LevelDebug, Kind: KindMsgReceived, Comp: comp, Msg: fmt.Sprintf("%T", msg)})
}
