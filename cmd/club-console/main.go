package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/app"
	"github.com/asdclub/club-console/internal/config"
	"github.com/asdclub/club-console/internal/dashboard"
	"github.com/asdclub/club-console/internal/export"
	"github.com/asdclub/club-console/internal/jobs"
	"github.com/asdclub/club-console/internal/logging"
	"github.com/asdclub/club-console/internal/observability"
	"github.com/asdclub/club-console/internal/session"
	"github.com/asdclub/club-console/internal/stats"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	exportStats := flag.Bool("export-stats", false, "fetch trainings stats and write an Excel report, then exit")
	year := flag.Int("year", time.Now().Year(), "stats year for -export-stats")
	month := flag.Int("month", 0, "stats month for -export-stats (0 = whole year)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.BackendURL, api.WithSessionToken(cfg.SessionToken))

	if *exportStats {
		if err := runExport(ctx, client, cfg.ExportDir, *year, *month, lg); err != nil {
			lg.Sugar.Fatalw("stats export failed", "err", err)
		}
		return
	}

	store, err := session.Open(cfg.SessionDB)
	if err != nil {
		lg.Sugar.Fatalw("session store", "err", err)
	}
	defer func() { _ = store.Close() }()

	board := dashboard.NewBoard(client, store, lg.Named("dashboard"))

	app.StartHTTP(ctx, cfg.HTTPAddr, client)
	runner := jobs.New(ctx)
	app.StartAgendaRefresh(ctx, runner, board, cfg.RefreshEvery, lg.Named("agenda"))

	lg.Sugar.Infow("club-console started",
		"backend", cfg.BackendURL, "http", cfg.HTTPAddr, "refresh", cfg.RefreshEvery)

	<-ctx.Done()
	lg.Sugar.Info("shutting down")
}

func runExport(ctx context.Context, client *api.Client, dir string, year, month int, lg *logging.Log) error {
	panel := stats.NewPanel(client, api.StatsFilter{Year: year, Month: month})
	if err := panel.Reload(ctx); err != nil {
		observability.CaptureAPIErr(ctx, err)
		return err
	}
	wb, err := export.NewStatsWorkbook(panel.Report())
	if err != nil {
		observability.CaptureErr(err)
		return err
	}
	path, err := wb.SaveTo(dir)
	if err != nil {
		observability.CaptureErr(err)
		return err
	}
	lg.Sugar.Infow("stats report written", "path", path, "csv", panel.CSVURL())
	return nil
}
