package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/lottotrack/lottery-tracker-backend/api/routes"
	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/handlers"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
	"github.com/lottotrack/lottery-tracker-backend/internal/repositories"
	filerepo "github.com/lottotrack/lottery-tracker-backend/internal/repositories/file"
	"github.com/lottotrack/lottery-tracker-backend/internal/services"
	"github.com/lottotrack/lottery-tracker-backend/internal/sources"
	"github.com/lottotrack/lottery-tracker-backend/pkg/fetch"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	games, err := config.LoadGames(cfg.Scheduler.GamesFile)
	if err != nil {
		slog.Error("failed to load game table", "error", err)
		os.Exit(1)
	}

	names := make(map[models.Game]string, len(games))
	for game, gc := range games {
		names[game] = gc.Name
	}
	var ledgerRepo repositories.LedgerRepository
	ledgerRepo, err = filerepo.NewLedgerRepository(cfg.Store.DataDir, names)
	if err != nil {
		slog.Error("failed to open ledger store", "error", err)
		os.Exit(1)
	}

	client := fetch.NewClient(cfg.Scheduler.FetchTimeout)
	registry, err := sources.NewRegistry(games, client)
	if err != nil {
		slog.Error("failed to build source registry", "error", err)
		os.Exit(1)
	}

	refreshService := services.NewRefreshService(
		games, registry, sources.NewJackpotFetcher(client), ledgerRepo, cfg.Scheduler.FetchTimeout)
	scheduler := services.NewScheduler(refreshService, cfg.Scheduler.Interval)

	authHandler := handlers.NewAuthHandler(services.NewAuthService(cfg))
	drawHandler := handlers.NewDrawHandler(ledgerRepo)
	refreshHandler := handlers.NewRefreshHandler(scheduler)

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AuthHandler:    authHandler,
		DrawHandler:    drawHandler,
		RefreshHandler: refreshHandler,
	})

	schedCtx, stopScheduler := context.WithCancel(context.Background())
	go scheduler.Start(schedCtx)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("server starting", "port", cfg.Server.Port, "dataDir", cfg.Store.DataDir)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}
