// Package debounce collapses bursts of keystrokes into at most one
// "search now" signal per typing pause.
//
// Every accepted keystroke bumps a token and schedules a timer message
// carrying it. When the timer fires, Fire only accepts the newest token, so
// any earlier timers are effectively cancelled without touching them.
package debounce

import (
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Action tells the caller what to do with an input event.
type Action int

const (
	// ActionHide means the query is too short: hide suggestions now.
	ActionHide Action = iota
	// ActionSchedule means a timer should be started for Token.
	ActionSchedule
)

// Decision is the outcome of one input event.
type Decision struct {
	Action Action
	Token  uint64
	Query  string // trimmed
}

// Fired is delivered by the timer command when the pause has elapsed.
type Fired struct {
	Token uint64
	Query string
}

// Scheduler owns the pending signal. Not goroutine-safe; it lives on the
// Bubble Tea update loop.
type Scheduler struct {
	delay   time.Duration
	minLen  int
	token   uint64
	pending bool
}

// New creates a Scheduler that waits delay after the last keystroke and
// ignores queries shorter than minLen runes.
func New(delay time.Duration, minLen int) *Scheduler {
	if minLen < 1 {
		minLen = 1
	}
	return &Scheduler{delay: delay, minLen: minLen}
}

// Input records a new value of the search field.
func (s *Scheduler) Input(text string) Decision {
	query := strings.TrimSpace(text)
	if utf8.RuneCountInString(query) < s.minLen {
		s.Cancel()
		return Decision{Action: ActionHide, Query: query}
	}
	s.token++
	s.pending = true
	return Decision{Action: ActionSchedule, Token: s.token, Query: query}
}

// Fire reports whether the timer for token should trigger a fetch. It is
// true at most once, and only for the latest scheduled token.
func (s *Scheduler) Fire(token uint64) bool {
	if !s.pending || token != s.token {
		return false
	}
	s.pending = false
	return true
}

// Cancel drops the pending signal, if any.
func (s *Scheduler) Cancel() {
	if s.pending {
		s.token++
		s.pending = false
	}
}

// Pending reports whether a signal is waiting to fire.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Latest returns the newest token handed out.
func (s *Scheduler) Latest() uint64 {
	return s.token
}

// Delay returns the configured pause.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// MinLen returns the shortest query that schedules a fetch.
func (s *Scheduler) MinLen() int {
	return s.minLen
}

// Cmd returns the timer command for d, or nil when d is not a schedule.
func (s *Scheduler) Cmd(d Decision) tea.Cmd {
	if d.Action != ActionSchedule {
		return nil
	}
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return Fired{Token: d.Token, Query: d.Query}
	})
}
