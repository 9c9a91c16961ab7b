package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func runMovies() {
	fs := flag.NewFlagSet("movies", flag.ExitOnError)
	baseURL := fs.String("url", "", "Service base URL (overrides config)")
	page := fs.Int("page", 1, "Page number (1-based)")
	perPage := fs.Int("per-page", 20, "Titles per page")
	rawJSON := fs.Bool("json", false, "Print the raw response")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	client := newClient(cfg, *baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.RequestTimeout)
	defer cancel()

	resp, err := client.Movies(ctx, *page, *perPage)
	if err != nil {
		fail("movies", err)
	}
	if *rawJSON {
		printJSON(resp)
		return
	}

	fmt.Println(moviesTable(resp.Movies, (resp.Page-1)*resp.PerPage))
	fmt.Printf("page %d, %d per page, %d movies total\n", resp.Page, resp.PerPage, resp.TotalMovies)
}

// moviesTable renders titles numbered from offset+1.
func moviesTable(movies []string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	rows := make([][]string, len(movies))
	for i, m := range movies {
		rows[i] = []string{strconv.Itoa(offset + i + 1), m}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("#", "Title").
		Rows(rows...).
		String()
}
