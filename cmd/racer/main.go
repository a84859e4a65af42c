// Command racer starts a race on the configured track, or prints the lap
// records with --records.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"racer/internal/game"
	"racer/internal/logging"
	"racer/internal/records"
	"racer/internal/settings"
	"racer/internal/track"
)

var (
	configDir   = flag.String("config-dir", ".", "Directory holding settings.json and race_records.json")
	resources   = flag.String("resources", "resources", "Root of the track, car and env assets")
	trackID     = flag.Int("track", 0, "Track to race (1-6), overrides the settings file")
	logLevel    = flag.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	logFile     = flag.String("log-file", "", "Also write the log to this file")
	showRecords = flag.Bool("records", false, "Print the lap records and exit")
	sortRecords = flag.Bool("sort", false, "With --records, list fastest first")
	workers     = flag.Int("workers", 0, "Raycaster worker count, 0 = one per CPU")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	var file io.Writer
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		file = f
	}
	log := logging.New(os.Stderr, file, logging.ParseLevel(*logLevel))

	store := records.NewStore(filepath.Join(*configDir, records.FileName))
	if *showRecords {
		tbl, err := store.Load()
		if err != nil {
			log.Warn().Err(err).Str("file", store.Path()).Msg("records unreadable, showing none")
		}
		printRecords(os.Stdout, tbl, *sortRecords)
		return 0
	}

	s := settings.Load(*configDir, log)
	if *trackID != 0 {
		if _, err := track.Lookup(*trackID); err != nil {
			log.Error().Err(err).Msg("bad --track")
			return 2
		}
		s.Track = *trackID
	}

	err := game.RunDesktop(game.Options{
		Resources: *resources,
		Settings:  s,
		Records:   store,
		Workers:   *workers,
		Log:       log,
	})
	if err != nil {
		log.Error().Err(err).Int("track", s.Track).Msg("race aborted")
		return 1
	}
	return 0
}

func printRecords(w io.Writer, tbl records.Table, sorted bool) {
	for _, key := range track.Keys() {
		fmt.Fprintf(w, "Track %s\n", key)
		entries := tbl.Entries(key, sorted)
		if len(entries) == 0 {
			fmt.Fprintln(w, "  no records")
			continue
		}
		for _, e := range entries {
			fmt.Fprintf(w, "  %3d  %.2f\n", e.Index, e.Seconds)
		}
		if best, ok := tbl.Best(key); ok {
			fmt.Fprintf(w, "  best %.2f\n", best)
		}
	}
}
