package main

import (
	"context"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/stemsi/roster/internal/config"
	"github.com/stemsi/roster/internal/database"
	"github.com/stemsi/roster/internal/logger"
	"github.com/stemsi/roster/internal/query"
	"github.com/stemsi/roster/internal/repository"
	"github.com/stemsi/roster/internal/service"
	"github.com/stemsi/roster/internal/view"
	"golang.org/x/term"
)

// options are the process startup flags. Unset flags keep the value
// loaded from the environment.
type options struct {
	DB  string `long:"db" description:"Roster database: a SQLite file path or a postgres:// URL (overrides DATABASE_URL)"`
	Log struct {
		Level  string `long:"level" description:"Log level (trace, debug, info, warn, error)"`
		Format string `long:"format" choice:"pretty" choice:"json" description:"Log output format"`
	} `group:"Logging" namespace:"log"`
}

func (o *options) apply(cfg *config.Config) {
	if o.DB != "" {
		cfg.DatabaseURL = o.DB
	}
	if o.Log.Level != "" {
		cfg.LogLevel = o.Log.Level
	}
	if o.Log.Format != "" {
		cfg.LogFormat = o.Log.Format
	}
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.LongDescription = `roster manages a table of student records (id, name, grade).

	Commands are read from standard input, one per line. Type 'help' for the list.`
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	opts.apply(cfg)

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Open Store ────────────────────────────────────────────────────
	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open the student database")
	}
	defer db.Close()

	created, err := database.EnsureSchema(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create the student table")
	}
	if created {
		log.Info().Str("table", database.Table).Msg("Student table created")
	}

	// ─── Wire Service ──────────────────────────────────────────────────
	svc := service.NewStudentService(
		repository.NewStudentRepository(db),
		query.NewBuilder(db.Dialect),
		view.NewTracker(),
		log,
	)

	sh := newShell(svc, os.Stdout, log)
	sh.prompt = term.IsTerminal(int(os.Stdin.Fd()))

	if err := sh.run(ctx, os.Stdin); err != nil {
		log.Error().Err(err).Msg("Reading commands failed")
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
