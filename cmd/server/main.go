package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/nimbbl-tech/checkout-sandbox/internal/checkout"
	"github.com/nimbbl-tech/checkout-sandbox/internal/config"
	"github.com/nimbbl-tech/checkout-sandbox/internal/handler"
	"github.com/nimbbl-tech/checkout-sandbox/internal/sdk"
	"github.com/nimbbl-tech/checkout-sandbox/internal/settings"
	"github.com/nimbbl-tech/checkout-sandbox/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	store := settings.NewStore(cfg.SettingsPath)
	active := store.Load()
	slog.Info("settings_loaded",
		"environment", active.Environment,
		"base_url", active.BaseURL(),
		"experience", active.Experience,
	)

	var gateway *sdk.MockGateway
	switch cfg.GatewayProfile {
	case config.ProfileFlaky:
		gateway = sdk.NewFlakyGateway()
	default:
		gateway = sdk.NewSandboxGateway()
	}
	if cfg.GatewayMaxLatency > 0 {
		gateway.WithLatency(cfg.GatewayMinLatency, cfg.GatewayMaxLatency)
	}

	recorder := stats.NewRecorder()
	svc := checkout.NewService(gateway, recorder)

	mux := http.NewServeMux()
	handler.New(svc, store, recorder).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	slog.Info("server_starting",
		"port", cfg.Server.Port,
		"gateway", gateway.Name(),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server_failed", "error", err)
		os.Exit(1)
	}
}
