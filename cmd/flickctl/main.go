// Command flickctl talks to the recommendation service from the shell and
// reads flick's event log.
//
// Usage:
//
//	flickctl                        Show help
//	flickctl search <query>         Title suggestions
//	flickctl recommend <movie>...   Recommendations, several titles at once
//	flickctl health                 Service health
//	flickctl movies                 Page through the catalogue
//	flickctl events                 JSONL event log viewer
package main

import (
	"fmt"
	"os"
)

const usage = `flickctl: movie recommendation service CLI

Usage:
  flickctl <command> [flags]

Commands:
  search      Title suggestions for a partial name
  recommend   Similar movies for one or more titles
  health      Service health and catalogue size
  movies      Page through the catalogue
  events      JSONL event log viewer

Environment:
  FLICK_CONFIG    Config file (default: ~/.flick/config.yaml)
  FLICK_API_URL   Service base URL (default: http://localhost:5000)

Run 'flickctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "search":
		runSearch()
	case "recommend":
		runRecommend()
	case "health":
		runHealth()
	case "movies":
		runMovies()
	case "events":
		runEvents()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "flickctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
