package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "star wars & co" {
			t.Errorf("query not escaped round-trip: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{
			Query:        "star wars & co",
			TotalMatches: 2,
			Matches:      []string{"Star Wars", "Star Wars: Episode II"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", time.Second)
	resp, err := c.Search(context.Background(), "star wars & co")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Matches) != 2 || resp.Matches[0] != "Star Wars" {
		t.Errorf("matches = %v", resp.Matches)
	}
}

func TestRecommend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/recommend" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var req RecommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if req.Movie != "Inception" {
			t.Errorf("movie = %q", req.Movie)
		}
		w.Write([]byte(`{"input_movie":"Inception","recommendations":[{"title":"Memento","similarity_score":0.87}]}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).Recommend(context.Background(), "Inception")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.InputMovie != "Inception" {
		t.Errorf("input_movie = %q", resp.InputMovie)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].Title != "Memento" || resp.Recommendations[0].SimilarityScore != 0.87 {
		t.Errorf("recommendations = %+v", resp.Recommendations)
	}
}

func TestRecommendStatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"server message", http.StatusNotFound, `{"error":"no such movie","suggestion":"use search"}`, "no such movie"},
		{"empty body", http.StatusNotFound, ``, ""},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
		{"json without error", http.StatusBadRequest, `{"example":{"movie":"Avatar"}}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).Recommend(context.Background(), "x")
			se, ok := IsStatus(err)
			if !ok {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if se.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", se.StatusCode, tt.status)
			}
			if se.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", se.Message, tt.wantMessage)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).Recommend(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	if _, ok := IsStatus(err); ok {
		t.Error("transport failure must not be a StatusError")
	}
}

func TestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches": [`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Search(context.Background(), "ab")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if _, ok := IsStatus(err); ok {
		t.Error("decode failure must not be a StatusError")
	}
}

func TestCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(server.URL, time.Second).Health(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestHealthAndMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.Write([]byte(`{"status":"healthy","message":"ok","total_movies":4806}`))
		case "/api/movies":
			if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("per_page") != "3" {
				t.Errorf("unexpected paging: %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"total_movies":4806,"page":2,"per_page":3,"movies":["A","B","C"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.Status != "healthy" || h.TotalMovies != 4806 {
		t.Errorf("health = %+v", h)
	}

	m, err := c.Movies(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("Movies() error = %v", err)
	}
	if len(m.Movies) != 3 || m.Page != 2 {
		t.Errorf("movies = %+v", m)
	}
}

func TestStatusErrorText(t *testing.T) {
	if got := (&StatusError{StatusCode: 404, Message: "gone"}).Error(); got != "api: status 404: gone" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&StatusError{StatusCode: 500}).Error(); got != "api: status 500" {
		t.Errorf("Error() = %q", got)
	}
}
