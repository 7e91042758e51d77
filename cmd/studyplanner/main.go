package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alexanderramin/studyplanner/internal/cli"
	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/intelligence"
	"github.com/alexanderramin/studyplanner/internal/llm"
	"github.com/alexanderramin/studyplanner/internal/planner"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	logger := newLogger()

	database, err := db.OpenDB(db.DefaultPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	history := service.NewHistoryService(
		repository.NewSQLitePlanRunRepo(database),
		repository.NewSQLitePlanSessionRepo(database),
		repository.NewSQLitePlanIssueRepo(database),
		repository.NewSQLitePlanPriorityRepo(database),
		uow,
		observer,
	)

	// The explainer is deterministic unless the local model is enabled.
	var client llm.Client
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(os.Stderr)
		}
		client = llm.NewOllamaClient(llmCfg, llmObserver)
	}

	app := &cli.App{
		Plans:   service.NewPlanService(planner.LoadConfig(), uow, logger, observer),
		History: history,
		Explain: service.NewExplainService(history, intelligence.NewRunExplainer(client), observer),
	}

	// Detect interactive terminal for --interactive and --browse.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger writes text logs to stderr when STUDYPLANNER_LOG=1 and
// discards them otherwise.
func newLogger() *slog.Logger {
	if os.Getenv("STUDYPLANNER_LOG") == "1" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
