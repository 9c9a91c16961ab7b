// Package recommend runs a recommendation search for one title and turns
// the answer into result cards.
//
// Only the most recently issued search may touch the view: every request
// carries a token and responses for older tokens are dropped.
package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/flick/internal/api"
	"github.com/abelbrown/flick/internal/logging"
	"github.com/abelbrown/flick/internal/otel"
)

const comp = "recommend"

// User-facing messages.
const (
	MsgEmptyQuery = "Please enter a movie name"
	MsgNotFound   = "Movie not found. Please try another movie."
	MsgGeneric    = "An error occurred. Please try again."
)

// ErrEmptyQuery is returned by Search for a blank query. No request is sent.
var ErrEmptyQuery = errors.New("recommend: empty query")

// Recommender is the part of api.Client the recommendation path needs.
type Recommender interface {
	Recommend(ctx context.Context, movie string) (*api.RecommendResponse, error)
}

// Loaded is delivered when a recommendation request finishes.
type Loaded struct {
	Token           uint64
	QueryID         string
	Query           string
	InputMovie      string
	Recommendations []api.Recommendation
	Err             error
}

// Client issues recommendation requests.
type Client struct {
	rec    Recommender
	events *otel.Logger
	latest uint64
}

// NewClient creates a Client. events may be nil.
func NewClient(rec Recommender, events *otel.Logger) *Client {
	return &Client{rec: rec, events: events}
}

// Search validates query and returns the request command. A blank query
// yields ErrEmptyQuery and no command.
func (c *Client) Search(ctx context.Context, query string) (tea.Cmd, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	c.latest++
	token := c.latest
	qid := otel.NewQueryID()
	c.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindRecommendStart, Comp: comp, QueryID: qid, Token: token, Query: query})

	return func() tea.Msg {
		start := time.Now()
		resp, err := c.rec.Recommend(ctx, query)
		if err != nil {
			ev := otel.Event{Level: otel.LevelWarn, Kind: otel.KindRecommendError, Comp: comp, QueryID: qid, Token: token, Query: query, Err: err.Error(), Dur: time.Since(start)}
			if se, ok := api.IsStatus(err); ok {
				ev.Status = se.StatusCode
			} else {
				logging.Error("recommendation request failed", "query", query, "err", err)
			}
			c.events.Emit(ev)
			return Loaded{Token: token, QueryID: qid, Query: query, Err: err}
		}

		c.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindRecommendComplete, Comp: comp, QueryID: qid, Token: token, Query: query, Count: len(resp.Recommendations), Dur: time.Since(start)})
		return Loaded{
			Token:           token,
			QueryID:         qid,
			Query:           query,
			InputMovie:      resp.InputMovie,
			Recommendations: resp.Recommendations,
		}
	}, nil
}

// Accept reports whether msg answers the most recent search.
func (c *Client) Accept(msg Loaded) bool {
	if msg.Token == c.latest {
		return true
	}
	c.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindRecommendStale, Comp: comp, QueryID: msg.QueryID, Token: msg.Token, Query: msg.Query})
	return false
}

// Latest returns the newest token handed out.
func (c *Client) Latest() uint64 {
	return c.latest
}

// ErrorText maps a search error to the line shown to the user: the
// service's own message when it sent one, a not-found hint for other HTTP
// failures, and a generic message for everything else.
func ErrorText(err error) string {
	if errors.Is(err, ErrEmptyQuery) {
		return MsgEmptyQuery
	}
	if se, ok := api.IsStatus(err); ok {
		if se.Message != "" {
			return se.Message
		}
		return MsgNotFound
	}
	return MsgGeneric
}
