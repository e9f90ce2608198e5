// Command gymtrack-cli is an interactive terminal workout logger working
// directly on the local history file.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/claude/gymtrack/internal/config"
	"github.com/claude/gymtrack/internal/history"
	"github.com/claude/gymtrack/internal/tracker"
	flag "github.com/spf13/pflag"
)

func main() {
	configPath := flag.StringP("config", "c", "", "optional config file; its history section is used")
	historyPath := flag.String("history", "", "history file or database path (overrides config)")
	backend := flag.String("backend", "", "history backend: file or sqlite (overrides config)")
	format := flag.String("format", "", "history file format: yaml or cbor (overrides config)")
	verbose := flag.BoolP("verbose", "v", false, "log tracker activity to stderr")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *historyPath != "" {
		cfg.History.Path = *historyPath
	}
	if *backend != "" {
		cfg.History.Backend = *backend
	}
	if *format != "" {
		cfg.History.Format = *format
	}

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(logOut, nil))

	b, err := history.OpenBackend(cfg.History.Backend, cfg.History.Path, cfg.History.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening history: %v\n", err)
		os.Exit(1)
	}
	store := history.NewStore(b, log)
	defer store.Close()

	tr := tracker.New(store, log)
	a := newApp(tr, os.Stdin, os.Stdout)
	if err := tr.Restore(context.Background()); err != nil {
		a.warn("Could not load saved history, starting empty: " + err.Error())
	}

	if err := a.run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "gymtrack: %v\n", err)
		os.Exit(1)
	}
}
