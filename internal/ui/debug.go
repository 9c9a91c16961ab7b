package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/abelbrown/flick/internal/otel"
)

// debugPanelChrome is the number of terminal lines consumed by DebugPanel's
// border (top + bottom = 2) and vertical padding (top + bottom = 2).
// Must be updated if DebugPanel style changes.
const debugPanelChrome = 4

// debugOverlay renders request stats, client state and recent events.
// Returns empty string if ring is nil.
func debugOverlay(ring *otel.RingBuffer, state []string, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()
	recent := ring.Last(20)

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Request Stats"))
	lines = append(lines, fmt.Sprintf("  Debounce:   %d scheduled, %d fired, %d cancelled",
		stats[otel.KindDebounceSchedule], stats[otel.KindDebounceFire], stats[otel.KindDebounceCancel]))
	lines = append(lines, fmt.Sprintf("  Suggest:    %d complete, %d errors, %d stale, %d skipped",
		stats[otel.KindSuggestComplete], stats[otel.KindSuggestError], stats[otel.KindSuggestStale], stats[otel.KindSuggestSkipped]))
	lines = append(lines, fmt.Sprintf("  Recommend:  %d started, %d complete, %d errors, %d stale",
		stats[otel.KindRecommendStart], stats[otel.KindRecommendComplete], stats[otel.KindRecommendError], stats[otel.KindRecommendStale]))
	lines = append(lines, fmt.Sprintf("  Buffer:     %d / %d events", ring.Len(), ring.Cap()))
	for _, s := range state {
		lines = append(lines, "  "+s)
	}
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range recent {
		line := fmt.Sprintf("  %6s  %-20s", formatAge(time.Since(e.Time)), string(e.Kind))
		if e.Token != 0 {
			line += fmt.Sprintf("  #%d", e.Token)
		}
		if e.Query != "" {
			line += "  " + ansi.Truncate(fmt.Sprintf("%q", e.Query), 24, "…")
		}
		if e.Msg != "" {
			line += "  " + ansi.Truncate(e.Msg, 30, "…")
		}
		if e.Err != "" {
			line += "  ERR:" + ansi.Truncate(e.Err, 30, "…")
		}
		if e.QueryID != "" {
			line += "  qid:" + e.QueryID
		}
		lines = append(lines, line)
	}

	// Truncate to fit terminal height (subtract chrome added by DebugPanel border/padding)
	maxHeight := height - debugPanelChrome
	if maxHeight < 1 {
		maxHeight = 1
	}
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := 96
	if panelWidth > width-4 {
		panelWidth = width - 4
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// formatAge formats a duration as a compact human string.
// Handles negative durations from clock skew by clamping to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("ctrl+d") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [DEBUG]  " + keys)
}

// debugView is the full-screen debug page.
func (a App) debugView() string {
	var state []string
	if a.suggest != nil {
		state = append(state, fmt.Sprintf("Breaker:    %s (suggest token %d)", a.suggest.BreakerState(), a.suggest.Latest()))
	}
	if a.recommend != nil {
		state = append(state, fmt.Sprintf("Recommend:  token %d", a.recommend.Latest()))
	}
	if a.health != nil {
		state = append(state, fmt.Sprintf("Health:     %s, %d movies, %dms", healthLabel(*a.health), a.health.TotalMovies, a.health.Latency.Milliseconds()))
	}
	if d := a.events.Dropped(); d > 0 {
		state = append(state, fmt.Sprintf("Dropped:    %d events", d))
	}

	overlay := debugOverlay(a.ring, state, a.width, a.height-1)
	if overlay == "" {
		overlay = StatusBarText.Render("  event ring disabled")
	}
	return overlay + "\n" + debugStatusBar(a.width)
}

func healthLabel(h HealthChecked) string {
	if h.Online() {
		return "online"
	}
	if h.Err != nil {
		return "offline (" + h.Err.Error() + ")"
	}
	return "offline (" + h.Status + ")"
}
