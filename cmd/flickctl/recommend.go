package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/flick/internal/api"
	"github.com/abelbrown/flick/internal/recommend"
)

// maxParallel bounds concurrent recommendation requests.
const maxParallel = 4

// recResult is the outcome for one requested title.
type recResult struct {
	Query    string                 `json:"query"`
	Response *api.RecommendResponse `json:"response,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Hint     string                 `json:"hint,omitempty"`
}

func runRecommend() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	baseURL := fs.String("url", "", "Service base URL (overrides config)")
	rawJSON := fs.Bool("json", false, "Print raw responses")
	fs.Parse(os.Args[1:])

	titles := fs.Args()
	if len(titles) == 0 {
		fmt.Fprintln(os.Stderr, "usage: flickctl recommend [--url URL] [--json] <movie> [movie...]")
		os.Exit(1)
	}

	cfg := loadConfig()
	client := newClient(cfg, *baseURL)

	results, err := recommendAll(context.Background(), client, titles)
	if err != nil {
		fail("recommend", err)
	}
	if *rawJSON {
		printJSON(results)
		return
	}

	failed := 0
	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		if r.Error != "" {
			failed++
			fmt.Printf("%s: %s\n", r.Query, r.Error)
			if r.Hint != "" {
				fmt.Printf("  hint: %s\n", r.Hint)
			}
			continue
		}
		fmt.Printf("Because you liked: %s\n", r.Response.InputMovie)
		fmt.Println(recommendationTable(r.Response.Recommendations))
	}
	if failed == len(results) {
		os.Exit(1)
	}
}

// recommendAll asks for recommendations for every title concurrently.
// Per-title failures are reported in the result, mapped to the same text
// the TUI shows; only a cancelled ctx aborts the whole batch.
func recommendAll(ctx context.Context, rec recommend.Recommender, titles []string) ([]recResult, error) {
	results := make([]recResult, len(titles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, title := range titles {
		results[i].Query = strings.TrimSpace(title)
		g.Go(func() error {
			if results[i].Query == "" {
				results[i].Error = recommend.MsgEmptyQuery
				return nil
			}
			resp, err := rec.Recommend(ctx, results[i].Query)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				results[i].Error = recommend.ErrorText(err)
				if se, ok := api.IsStatus(err); ok {
					results[i].Hint = se.Suggestion
				}
				return nil
			}
			results[i].Response = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// recommendationTable renders one row per recommendation with its match
// percentage.
func recommendationTable(recs []api.Recommendation) string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		pct := recommend.Percent(r.SimilarityScore)
		rows[i] = []string{truncate(r.Title, 48), matchBar(pct, 20), fmt.Sprintf("%3d%%", pct)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("Title", "Match", "").
		Rows(rows...).
		String()
}

// matchBar draws pct as a fixed-width bar.
func matchBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
