package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/abelbrown/flick/internal/api"
	"github.com/abelbrown/flick/internal/recommend"
)

func TestRecommendAll(t *testing.T) {
	var inflight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		var req api.RecommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch req.Movie {
		case "Nope":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Movie 'Nope' not found","suggestion":"Try searching for the movie first"}`))
		case "Blank":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			json.NewEncoder(w).Encode(api.RecommendResponse{
				InputMovie:      req.Movie,
				Recommendations: []api.Recommendation{{Title: req.Movie + " II", SimilarityScore: 0.5}},
			})
		}
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, 5*time.Second)
	titles := []string{"Heat", " Nope ", "Blank", "", "Alien", "Ronin", "Thief"}

	results, err := recommendAll(context.Background(), client, titles)
	if err != nil {
		t.Fatalf("recommendAll() error = %v", err)
	}
	if len(results) != len(titles) {
		t.Fatalf("got %d results, want %d", len(results), len(titles))
	}

	if results[0].Response == nil || results[0].Response.InputMovie != "Heat" {
		t.Errorf("results[0] = %+v, want Heat response", results[0])
	}
	if results[1].Query != "Nope" || results[1].Error != "Movie 'Nope' not found" {
		t.Errorf("results[1] = %+v, want server error text", results[1])
	}
	if results[1].Hint != "Try searching for the movie first" {
		t.Errorf("results[1].Hint = %q, want the server suggestion", results[1].Hint)
	}
	if results[2].Hint != "" {
		t.Errorf("results[2].Hint = %q, want empty without a suggestion", results[2].Hint)
	}
	if results[2].Error != recommend.MsgNotFound {
		t.Errorf("results[2].Error = %q, want %q", results[2].Error, recommend.MsgNotFound)
	}
	if results[3].Error != recommend.MsgEmptyQuery {
		t.Errorf("results[3].Error = %q, want %q", results[3].Error, recommend.MsgEmptyQuery)
	}
	for i, r := range results {
		if r.Error == "" && r.Response.InputMovie != strings.TrimSpace(titles[i]) {
			t.Errorf("results[%d] out of order: %q", i, r.Response.InputMovie)
		}
	}
	if p := peak.Load(); p > maxParallel {
		t.Errorf("peak concurrency %d exceeds limit %d", p, maxParallel)
	}
}

func TestRecommendAllCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := recommendAll(ctx, api.NewClient(srv.URL, 0), []string{"Heat", "Ronin"})
	if err == nil {
		t.Fatal("cancelled batch should return an error")
	}
}

func TestMatchBar(t *testing.T) {
	tests := []struct {
		pct, width int
		filled     int
	}{
		{0, 10, 0},
		{50, 10, 5},
		{87, 20, 17},
		{100, 10, 10},
		{150, 10, 10},
		{-5, 10, 0},
	}
	for _, tt := range tests {
		bar := matchBar(tt.pct, tt.width)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("matchBar(%d, %d) filled = %d, want %d", tt.pct, tt.width, got, tt.filled)
		}
		if got := len([]rune(bar)); got != tt.width {
			t.Errorf("matchBar(%d, %d) width = %d", tt.pct, tt.width, got)
		}
	}
}

func TestRecommendationTable(t *testing.T) {
	out := recommendationTable([]api.Recommendation{{Title: "Memento", SimilarityScore: 0.87}})
	if !strings.Contains(out, "Memento") || !strings.Contains(out, "87%") {
		t.Errorf("table missing title or percentage:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("The Lord of the Rings", 10); got != "The Lor..." {
		t.Errorf("truncate() = %q", got)
	}
}
