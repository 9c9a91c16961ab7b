package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
)

func runHealth() {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	baseURL := fs.String("url", "", "Service base URL (overrides config)")
	rawJSON := fs.Bool("json", false, "Print the raw response")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	client := newClient(cfg, *baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.RequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Health(ctx)
	if err != nil {
		fail("health", err)
	}
	if *rawJSON {
		printJSON(resp)
		return
	}

	fmt.Printf("%s  %s\n", client.BaseURL(), resp.Status)
	if resp.Message != "" {
		fmt.Printf("  %s\n", resp.Message)
	}
	fmt.Printf("  %d movies, answered in %dms\n", resp.TotalMovies, time.Since(start).Milliseconds())
}
