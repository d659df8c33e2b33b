package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"agristat/config"
	"agristat/database"
	"agristat/pkg/ingest"
	"agristat/router"

	// Dataset store
	"agristat/pkg/record"
	recordCtrlImp "agristat/pkg/record/controllerImp"
	recordRepoImp "agristat/pkg/record/repositoryImp"

	// Sync
	"agristat/pkg/datasync"
	syncCtrlImp "agristat/pkg/datasync/controllerImp"
	syncRepoImp "agristat/pkg/datasync/repositoryImp"
	syncSvcImp "agristat/pkg/datasync/serviceImp"

	// Analysis + export
	analysisCtrlImp "agristat/pkg/analysis/controllerImp"
	analysisSvcImp "agristat/pkg/analysis/serviceImp"
	exportCtrlImp "agristat/pkg/report/controllerImp"

	healthCtrlImp "agristat/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Repos + services
	records := recordRepoImp.New(db)
	if cfg.SeedOnBoot {
		if _, err := record.Seed(records); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	var src ingest.Source = ingest.SampleSource{}
	if cfg.DataFile != "" {
		src = ingest.FileSource{Path: cfg.DataFile}
	}
	syncSvc := syncSvcImp.New(src, records, syncRepoImp.New(db))
	analysisSvc := analysisSvcImp.New(records, analysisSvcImp.Config{
		MaxHorizon:    cfg.MaxHorizon,
		ReferenceYear: cfg.ReferenceYear,
	})

	// 4) Scheduler
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	datasync.NewScheduler(syncSvc, cfg.SyncInterval()).Start(ctx)

	// 5) Echo + router
	e := router.New(
		echo.New(),
		healthCtrlImp.NewHealthCtrl(db, records),
		recordCtrlImp.New(records),
		syncCtrlImp.New(syncSvc),
		analysisCtrlImp.New(analysisSvc),
		exportCtrlImp.New(records, analysisSvc, cfg.MaxHorizon),
		cfg.SyncToken,
	)

	// 6) Start
	go func() {
		log.Printf("[http] listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown: %v", err)
	}
}
