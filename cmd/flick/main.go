// Command flick is a terminal front end for the movie recommendation
// service: type a title, pick a suggestion, browse similar movies.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/abelbrown/flick/internal/api"
	"github.com/abelbrown/flick/internal/config"
	"github.com/abelbrown/flick/internal/coord"
	"github.com/abelbrown/flick/internal/debounce"
	"github.com/abelbrown/flick/internal/logging"
	"github.com/abelbrown/flick/internal/otel"
	"github.com/abelbrown/flick/internal/recommend"
	"github.com/abelbrown/flick/internal/suggest"
	"github.com/abelbrown/flick/internal/ui"
)

func main() {
	configPath := flag.String("config", config.Path(), "YAML config file")
	baseURL := flag.String("url", "", "Recommendation service base URL (overrides config)")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", "err", err)
	}

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := logging.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		log.Fatal("failed to init logging", "err", err)
	}
	defer logging.Close()

	// Event log + ring buffer for the debug overlay
	events, closeEvents := openEventLog(cfg.Log.EventFile)
	defer closeEvents()
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	events.Info(otel.KindStartup, "main", cfg.API.BaseURL)

	client := api.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout)

	app := ui.NewAppWithConfig(ui.AppConfig{
		Ctx:      ctx,
		BaseURL:  client.BaseURL(),
		Debounce: debounce.New(cfg.Debounce(), cfg.Search.MinQueryLen),
		Suggest: suggest.NewClient(client, suggest.Options{
			RatePerSec:      cfg.API.SearchRatePerSec,
			MaxResults:      cfg.Search.MaxSuggestions,
			BreakerFailures: cfg.API.BreakerFailures,
			BreakerCooldown: cfg.API.BreakerCooldown,
			Events:          events,
		}),
		Recommend: recommend.NewClient(client, events),
		Stagger:   cfg.Stagger(),
		Obs:       ui.ObsConfig{Ring: ring, Events: events},
	})

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(app, opts...)

	// Background health polling reports into the header
	coordinator := coord.NewCoordinator(client, cfg.API.HealthInterval)
	coordinator.Start(ctx, program)

	logging.Info("starting ui", "url", cfg.API.BaseURL, "debounce", cfg.Debounce())
	start := time.Now()
	if _, err := program.Run(); err != nil {
		logging.Error("ui exited with error", "err", err)
		events.Error(otel.KindError, "main", err)
	}

	// Graceful shutdown: in-flight requests see a cancelled context.
	cancel()
	coordinator.Wait()
	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindShutdown, Comp: "main", Dur: time.Since(start)})
}

// openEventLog opens the JSONL event file for appending. When that fails
// the App still gets a logger so the debug overlay keeps working.
func openEventLog(path string) (*otel.Logger, func()) {
	if path == "" {
		l := otel.NewNullLogger()
		return l, l.Close
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logging.Warn("event log disabled", "err", err)
		l := otel.NewNullLogger()
		return l, l.Close
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logging.Warn("event log disabled", "path", path, "err", err)
		l := otel.NewNullLogger()
		return l, l.Close
	}
	l := otel.NewLogger(f)
	return l, func() {
		l.Close()
		f.Close()
	}
}
