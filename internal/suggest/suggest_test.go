package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/abelbrown/flick/internal/api"
	"github.com/abelbrown/flick/internal/otel"
)

type fakeSearcher struct {
	calls   atomic.Int32
	matches []string
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (*api.SearchResponse, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &api.SearchResponse{Query: query, Matches: f.matches}, nil
}

func TestFetchSuccess(t *testing.T) {
	fs := &fakeSearcher{matches: []string{"Inception", "Interstellar"}}
	c := NewClient(fs, Options{})

	msg := c.Fetch(context.Background(), "in")().(Loaded)
	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if msg.Token != 1 || msg.Query != "in" {
		t.Errorf("loaded = %+v", msg)
	}
	if len(msg.Matches) != 2 || msg.Matches[0] != "Inception" {
		t.Errorf("matches = %v, want service order", msg.Matches)
	}
	if !c.Accept(msg) {
		t.Error("latest response should be accepted")
	}
}

func TestFetchTruncates(t *testing.T) {
	fs := &fakeSearcher{matches: []string{"a1", "a2", "a3", "a4"}}
	c := NewClient(fs, Options{MaxResults: 2})

	msg := c.Fetch(context.Background(), "a1")().(Loaded)
	if len(msg.Matches) != 2 || msg.Matches[1] != "a2" {
		t.Errorf("matches = %v", msg.Matches)
	}
}

func TestLastIssuedWins(t *testing.T) {
	fs := &fakeSearcher{matches: []string{"x"}}
	ring := otel.NewRingBuffer(16)
	events := otel.NewNullLogger()
	events.SetRingBuffer(ring)

	c := NewClient(fs, Options{Events: events})

	first := c.Fetch(context.Background(), "al")
	second := c.Fetch(context.Background(), "ali")

	// Resolve in reverse order: the older response arrives last.
	newer := second().(Loaded)
	older := first().(Loaded)

	if !c.Accept(newer) {
		t.Error("newer response should be accepted")
	}
	if c.Accept(older) {
		t.Error("older response must be dropped even if it resolves last")
	}

	events.Close()
	if got := ring.Stats()[otel.KindSuggestStale]; got != 1 {
		t.Errorf("stale events = %d, want 1", got)
	}
}

func TestInvalidate(t *testing.T) {
	c := NewClient(&fakeSearcher{}, Options{})
	msg := c.Fetch(context.Background(), "abc")().(Loaded)
	c.Invalidate()
	if c.Accept(msg) {
		t.Error("invalidated response should be stale")
	}
}

func TestFetchErrorIsReported(t *testing.T) {
	fs := &fakeSearcher{err: errors.New("connection refused")}
	c := NewClient(fs, Options{})

	msg := c.Fetch(context.Background(), "ab")().(Loaded)
	if msg.Err == nil || !strings.Contains(msg.Err.Error(), "connection refused") {
		t.Errorf("err = %v", msg.Err)
	}
	if msg.Matches != nil {
		t.Errorf("matches should be nil on error, got %v", msg.Matches)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	fs := &fakeSearcher{err: errors.New("boom")}
	c := NewClient(fs, Options{BreakerFailures: 2, BreakerCooldown: time.Hour})

	for i := 0; i < 2; i++ {
		c.Fetch(context.Background(), "ab")()
	}
	if c.BreakerState() != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open", c.BreakerState())
	}

	msg := c.Fetch(context.Background(), "ab")().(Loaded)
	if !errors.Is(msg.Err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", msg.Err)
	}
	if fs.calls.Load() != 2 {
		t.Errorf("searcher called %d times, want 2 (open breaker short-circuits)", fs.calls.Load())
	}
}

func TestRateLimitSkipsRequest(t *testing.T) {
	fs := &fakeSearcher{matches: []string{"x"}}
	c := NewClient(fs, Options{RatePerSec: 0.001})

	first := c.Fetch(context.Background(), "ab")().(Loaded)
	second := c.Fetch(context.Background(), "abc")().(Loaded)

	if first.Err != nil {
		t.Errorf("first request should pass: %v", first.Err)
	}
	if !errors.Is(second.Err, ErrRateLimited) {
		t.Errorf("second err = %v, want ErrRateLimited", second.Err)
	}
	if fs.calls.Load() != 1 {
		t.Errorf("searcher called %d times, want 1", fs.calls.Load())
	}
}

func TestSupersedes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http status", fmt.Errorf("suggest: %w", &api.StatusError{StatusCode: 500, Message: "index unavailable"}), true},
		{"rate limited", ErrRateLimited, true},
		{"breaker open", fmt.Errorf("suggest: %w", gobreaker.ErrOpenState), true},
		{"half-open busy", fmt.Errorf("suggest: %w", gobreaker.ErrTooManyRequests), true},
		{"transport", errors.New("dial tcp: connection refused"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supersedes(tt.err); got != tt.want {
				t.Errorf("Supersedes(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestModelNavigation(t *testing.T) {
	var m Model
	if _, ok := m.Selected(); ok {
		t.Error("empty model has no selection")
	}

	m.SetItems([]string{"Alien", "Aliens", "Alien 3"})
	m.MoveDown()
	m.MoveDown()
	m.MoveDown()
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.Cursor())
	}
	if sel, _ := m.Selected(); sel != "Alien 3" {
		t.Errorf("selected = %q", sel)
	}

	if !m.MoveUp() || !m.MoveUp() {
		t.Error("MoveUp should succeed while above row 0")
	}
	if m.MoveUp() {
		t.Error("MoveUp at the top should report false")
	}

	m.SetCursor(9)
	if m.Cursor() != 0 {
		t.Error("SetCursor out of range should be ignored")
	}

	m.Clear()
	if m.Len() != 0 {
		t.Error("Clear should empty the list")
	}
}

func TestModelSetItemsCopies(t *testing.T) {
	src := []string{"Heat"}
	var m Model
	m.SetItems(src)
	src[0] = "Ronin"
	if got, _ := m.At(0); got != "Heat" {
		t.Errorf("model aliased caller slice: %q", got)
	}
}

func TestModelView(t *testing.T) {
	var m Model
	m.SetItems([]string{"Memento", "Insomnia"})

	out := m.View(80, true)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per item, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "▸ Memento") {
		t.Errorf("focused cursor row should carry the marker: %q", lines[0])
	}
	if strings.Contains(m.View(80, false), "▸") {
		t.Error("unfocused dropdown should not show the marker")
	}
}
