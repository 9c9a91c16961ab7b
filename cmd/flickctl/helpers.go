package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/abelbrown/flick/internal/api"
	"github.com/abelbrown/flick/internal/config"
)

// loadConfig reads the layered config or fatals.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	return cfg
}

// newClient builds an API client from config, with baseURL overriding the
// configured service when set.
func newClient(cfg *config.Config, baseURL string) *api.Client {
	if baseURL == "" {
		baseURL = cfg.API.BaseURL
	}
	return api.NewClient(baseURL, cfg.API.RequestTimeout)
}

// eventLogPath returns the JSONL event file flick writes to.
func eventLogPath(cfg *config.Config) string {
	return cfg.Log.EventFile
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal("failed to encode output", "err", err)
	}
	fmt.Println(string(out))
}

// fail prints a service error the way the TUI would show it, then exits.
func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	if se, ok := api.IsStatus(err); ok && se.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", se.Suggestion)
	}
	os.Exit(1)
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// joinArgs turns the remaining arguments into one query.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
