// Package suggest fetches title suggestions as the user types and holds the
// dropdown that displays them.
//
// Suggestions are a convenience: every failure is logged and otherwise
// ignored. Each fetch carries a token and only the most recently issued one
// is accepted, so a slow response can never overwrite a newer list.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/abelbrown/flick/internal/api"
	"github.com/abelbrown/flick/internal/logging"
	"github.com/abelbrown/flick/internal/otel"
)

const comp = "suggest"

// ErrRateLimited is reported when a fetch is skipped by the local limiter.
var ErrRateLimited = errors.New("suggest: rate limited")

// Searcher is the part of api.Client the suggestion path needs.
type Searcher interface {
	Search(ctx context.Context, query string) (*api.SearchResponse, error)
}

// Loaded is delivered when a suggestion fetch finishes.
type Loaded struct {
	Token   uint64
	QueryID string
	Query   string
	Matches []string
	Err     error
}

// Options tunes a Client. Zero values pick defaults.
type Options struct {
	// RatePerSec caps outgoing requests. 0 means unlimited.
	RatePerSec float64
	// MaxResults truncates the list shown. 0 keeps everything.
	MaxResults int
	// BreakerFailures consecutive failures open the breaker (default 5).
	BreakerFailures uint32
	// BreakerCooldown is how long the breaker stays open (default 30s).
	BreakerCooldown time.Duration
	Events          *otel.Logger
}

// Client issues suggestion fetches.
type Client struct {
	searcher Searcher
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[[]string]
	events   *otel.Logger
	max      int
	latest   uint64
}

// NewClient wraps s with rate limiting and a circuit breaker.
func NewClient(s Searcher, opts Options) *Client {
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	burst := int(opts.RatePerSec)
	if burst < 1 {
		burst = 1
	}

	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := opts.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        "search-api",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		searcher: s,
		limiter:  rate.NewLimiter(limit, burst),
		breaker:  cb,
		events:   opts.Events,
		max:      opts.MaxResults,
	}
}

// Fetch issues a new token and returns the command that performs the
// request for query. The caller guarantees query is already trimmed and
// long enough.
func (c *Client) Fetch(ctx context.Context, query string) tea.Cmd {
	c.latest++
	token := c.latest
	qid := otel.NewQueryID()

	c.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSuggestStart, Comp: comp, QueryID: qid, Token: token, Query: query})

	return func() tea.Msg {
		if !c.limiter.Allow() {
			c.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindSuggestSkipped, Comp: comp, QueryID: qid, Token: token, Query: query})
			return Loaded{Token: token, QueryID: qid, Query: query, Err: ErrRateLimited}
		}

		start := time.Now()
		matches, err := c.breaker.Execute(func() ([]string, error) {
			resp, err := c.searcher.Search(ctx, query)
			if err != nil {
				return nil, err
			}
			return resp.Matches, nil
		})
		if err != nil {
			err = fmt.Errorf("suggest: %w", err)
			logging.Debug("suggestion fetch failed", "query", query, "err", err)
			c.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindSuggestError, Comp: comp, QueryID: qid, Token: token, Query: query, Err: err.Error(), Dur: time.Since(start)})
			return Loaded{Token: token, QueryID: qid, Query: query, Err: err}
		}

		if c.max > 0 && len(matches) > c.max {
			matches = matches[:c.max]
		}
		c.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSuggestComplete, Comp: comp, QueryID: qid, Token: token, Query: query, Count: len(matches), Dur: time.Since(start)})
		return Loaded{Token: token, QueryID: qid, Query: query, Matches: matches}
	}
}

// Accept reports whether msg belongs to the most recent fetch. Stale
// results are logged and must be dropped by the caller.
func (c *Client) Accept(msg Loaded) bool {
	if msg.Token == c.latest {
		return true
	}
	c.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSuggestStale, Comp: comp, QueryID: msg.QueryID, Token: msg.Token, Query: msg.Query})
	return false
}

// Invalidate makes every in-flight fetch stale.
func (c *Client) Invalidate() {
	c.latest++
}

// Latest returns the newest token handed out.
func (c *Client) Latest() uint64 {
	return c.latest
}

// Supersedes reports whether a failed fetch leaves the query without usable
// matches: the service replied with an error status, or the request was never
// sent. The list on screen then belongs to an older query and should be
// hidden. Transport and decode failures leave it alone.
func Supersedes(err error) bool {
	if _, ok := api.IsStatus(err); ok {
		return true
	}
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}

// BreakerState exposes the circuit breaker state for the debug overlay.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}
