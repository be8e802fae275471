package main

//
//  @title           marketpulse API
//  @version         1.0
//  @description     Daily trade aggregation and weighted market index.
//  @termsOfService  https://github.com/guttosm/marketpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/marketpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        reports
//  @tag.description Per-day ticker statistics and index
//
//  @tag.name        index
//  @tag.description Persisted index state
//
//  @tag.name        health
//  @tag.description Liveness and readiness checks

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/marketpulse/config"
	_ "github.com/guttosm/marketpulse/docs" // swagger docs
	"github.com/guttosm/marketpulse/internal/app"
	"github.com/guttosm/marketpulse/internal/index"
	"github.com/guttosm/marketpulse/internal/ingestion"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/report"
	"github.com/guttosm/marketpulse/internal/service"
	"github.com/guttosm/marketpulse/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT/SIGTERM, drains the server and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// splitFiles turns a comma separated --file value into paths.
func splitFiles(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDay parses an optional YYYY-MM-DD flag value.
func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &d, nil
}

// parseRange parses the optional --start/--end days and rejects an end
// before the start, like GET /api/v1/reports does.
func parseRange(startFlag, endFlag string) (*time.Time, *time.Time, error) {
	start, err := parseDay(startFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("--start: %w", err)
	}
	end, err := parseDay(endFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("--end: %w", err)
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, errors.New("--end must not be before --start")
	}
	return start, end, nil
}

type reportParams struct {
	paths    []string
	parallel int
	opts     service.RunOptions
}

// runFileReport reads the market data files and prints one report per day to out.
func runFileReport(ctx context.Context, out io.Writer, calc *index.Calculator, p reportParams) error {
	results, err := ingestion.ReadFiles(ctx, p.paths, p.parallel)
	if err != nil {
		return err
	}
	_, err = service.Run(ctx, ingestion.Records(results), calc, report.NewTextSink(out), p.opts)
	return err
}

// runStoredReport replays trades already ingested into the database.
func runStoredReport(ctx context.Context, out io.Writer, repo storage.TradesRepository, calc *index.Calculator, start, end *time.Time, opts service.RunOptions) error {
	trades, err := repo.ListTrades(ctx, start, end)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	_, err = service.Run(ctx, trades, calc, report.NewTextSink(out), opts)
	return err
}

// main is the entry point of marketpulse.
//
// Modes (selected via --mode flag):
//   - report: Prints daily ticker statistics and the index (default).
//   - ingest: Loads market data files into PostgreSQL.
//   - api:    Starts the REST API over the stored trades.
//
// Flags:
//   - --file:       Comma separated market data files. Defaults to INPUT_FILE.
//   - --source:     report input, "file" or "db". Default: "file".
//   - --start/--end: Day range for --source=db.
//   - --parallel:   Files read concurrently (0=auto, max 8).
//   - --force:      Re-ingest files already present in the ingestion log.
//   - --resume:     Seed the index with the value stored by the last run.
//   - --save-index: Store the final index for the next --resume.
//   - --port:       Port for API mode. Defaults to SERVER_PORT.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.LoadConfig()

	mode := flag.String("mode", "report", "Mode: report, ingest or api")
	files := flag.String("file", config.AppConfig.Input.File, "Comma separated market data files")
	source := flag.String("source", "file", "Report input: file or db")
	startFlag := flag.String("start", "", "First day for --source=db (YYYY-MM-DD)")
	endFlag := flag.String("end", "", "Last day for --source=db (YYYY-MM-DD)")
	parallel := flag.Int("parallel", 0, "How many files to read concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Re-ingest files even if already ingested (deletes their previous trades)")
	resume := flag.Bool("resume", false, "Seed the running index with the stored last known index")
	saveIndex := flag.Bool("save-index", false, "Store the final last known index")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	// stdout carries the report itself
	if *mode == "report" {
		logger.InitWithWriter(os.Stderr)
	} else {
		logger.Init()
	}

	switch *mode {
	case "report":
		calc, err := app.NewCalculator(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("index setup error")
		}

		opts := service.RunOptions{Resume: *resume, SaveIndex: *saveIndex}
		var repo storage.TradesRepository
		if opts.Resume || opts.SaveIndex || *source == "db" {
			r, cleanup, err := app.OpenStore(config.AppConfig)
			if err != nil {
				logger.L().Fatal().Err(err).Msg("db connect error")
			}
			defer cleanup()
			repo, opts.Store = r, r
		}

		switch *source {
		case "file":
			err = runFileReport(ctx, os.Stdout, calc, reportParams{paths: splitFiles(*files), parallel: *parallel, opts: opts})
		case "db":
			start, end, perr := parseRange(*startFlag, *endFlag)
			if perr != nil {
				logger.L().Fatal().Err(perr).Msg("bad date range")
			}
			err = runStoredReport(ctx, os.Stdout, repo, calc, start, end, opts)
		default:
			logger.L().Fatal().Str("source", *source).Msg("unknown source")
		}
		if err != nil {
			logger.L().Fatal().Err(err).Msg("report failed")
		}

	case "ingest":
		logger.L().Info().Msg("running ingestion")

		repo, cleanup, err := app.OpenStore(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer cleanup()

		if err := ingestion.ProcessFiles(ctx, splitFiles(*files), repo, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
