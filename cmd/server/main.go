package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/config"
	flatflowHttp "github.com/SravanKumarPolu/FlatFlow-sub000/internal/http"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/http/household"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/http/insights"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/service"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/storage/sqlite"
	"github.com/SravanKumarPolu/FlatFlow-sub000/pkg/logging"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DB.Path)

	ledger := service.NewLedgerService(store)

	router := flatflowHttp.New(
		household.NewHandler(ledger),
		insights.NewHandler(ledger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("server starting", "app", cfg.App.Name, "address", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
