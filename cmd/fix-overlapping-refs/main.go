// Command fix-overlapping-refs advances calendar readings that start on the
// verse where the previous day's reading of the same track ended.
//
// Usage:
//
//	fix-overlapping-refs
//
// The command takes no arguments. Settings come from environment variables
// and an optional JSON config file; see internal/config.
//
// Exit status is 0 when every overlap was handled, 1 when any day/track was
// skipped and 2 for usage or configuration errors.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/FocuswithJustin/biblein1year/core/correct"
	"github.com/FocuswithJustin/biblein1year/core/resolve"
	"github.com/FocuswithJustin/biblein1year/internal/abbrev"
	"github.com/FocuswithJustin/biblein1year/internal/batch"
	"github.com/FocuswithJustin/biblein1year/internal/cache"
	"github.com/FocuswithJustin/biblein1year/internal/config"
	"github.com/FocuswithJustin/biblein1year/internal/logging"
	"github.com/FocuswithJustin/biblein1year/internal/passage"
	"github.com/FocuswithJustin/biblein1year/internal/store"
)

const (
	exitOK      = 0
	exitSkipped = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logging.InitLoggerTo(stderr, logging.LevelInfo, logging.FormatText)

	cfg, err := config.Load(args)
	if errors.Is(err, config.ErrUsage) {
		printUsage(stderr)
		return exitUsage
	}
	if err != nil {
		logging.ErrorContext(ctx, "invalid configuration", "error", err.Error())
		return exitUsage
	}

	logging.InitLoggerTo(stderr, cfg.Level(), cfg.OutputFormat())

	db, err := store.Open(cfg.ReadingsDB)
	if err != nil {
		logging.ErrorContext(ctx, "opening calendar", "readings_db", cfg.ReadingsDB, "error", err.Error())
		return exitUsage
	}
	defer db.Close()

	client := passage.NewClient(cfg.PassageURL,
		passage.WithFormat(cfg.Format()),
		passage.WithTimeout(cfg.PassageTimeout),
		passage.WithCache(cache.New[string, []passage.Verse](cfg.PassageCacheTTL)),
	)

	var opts []batch.Option
	if cfg.AbbreviationCheck {
		opts = append(opts, batch.WithAbbreviationChecker(abbrev.NewChecker(db, 0)))
	}
	runner := batch.New(db,
		resolve.New(client),
		correct.New(db, correct.DryRun(cfg.DryRun)),
		opts...,
	)

	runID := logging.NewRunID()
	ctx = logging.WithRunID(ctx, runID)
	info := store.GetInfo()
	logging.InfoContext(ctx, "starting run",
		"readings_db", cfg.ReadingsDB,
		"passage_url", cfg.PassageURL,
		"sqlite_driver", info.DriverType,
		"dry_run", cfg.DryRun,
	)

	summary, err := runner.Run(ctx)
	if err != nil {
		logging.ErrorContext(ctx, "run aborted", "error", err.Error())
		return exitSkipped
	}

	if cfg.DryRun {
		fmt.Fprintln(stdout, "Dry run: no changes written")
	}
	fmt.Fprintln(stdout, summary.String())
	if summary.Failed() {
		return exitSkipped
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `fix-overlapping-refs - advance readings that repeat the previous day's last verse

Usage:
  fix-overlapping-refs

The command takes no arguments.

Environment:
  READINGS_DB          Calendar SQLite database (default: readings.db)
  PASSAGE_URL          Passage lookup service (default: %s)
  PASSAGE_FORMAT       json or xml (default: json)
  PASSAGE_TIMEOUT      Timeout per lookup (default: 30s)
  PASSAGE_CACHE_TTL    Reuse lookups for this long, 0 for the whole run (default: 1h)
  LOG_LEVEL            debug, info, warn or error (default: info)
  LOG_FORMAT           json or text (default: text)
  ABBREVIATION_CHECK   Warn about books without a registered abbreviation
  DRY_RUN              Report corrections without writing them

Config files (JSON, snake_case keys, e.g. {"readings_db": "..."}):
  /etc/biblein1year/config.json
  ~/.config/biblein1year/config.json

Exit status:
  0  every overlap was corrected
  1  one or more days were skipped
  2  usage or configuration error
`, passage.DefaultBaseURL)
}
