package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	baseURL := fs.String("url", "", "Service base URL (overrides config)")
	limit := fs.Int("n", 0, "Show at most n matches (0 = all)")
	rawJSON := fs.Bool("json", false, "Print the raw response")
	fs.Parse(os.Args[1:])

	query := joinArgs(fs.Args())
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: flickctl search [--url URL] [--n N] [--json] <query>")
		os.Exit(1)
	}

	cfg := loadConfig()
	client := newClient(cfg, *baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.RequestTimeout)
	defer cancel()

	resp, err := client.Search(ctx, query)
	if err != nil {
		fail("search", err)
	}
	if *rawJSON {
		printJSON(resp)
		return
	}

	matches := resp.Matches
	if *limit > 0 && len(matches) > *limit {
		matches = matches[:*limit]
	}
	fmt.Printf("%d matches for %q\n", resp.TotalMatches, query)
	for i, m := range matches {
		fmt.Printf("  %2d. %s\n", i+1, m)
	}
}
