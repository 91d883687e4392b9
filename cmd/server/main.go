package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"codesync-server/internal/api"
	"codesync-server/internal/app"
	"codesync-server/internal/exec"
	"codesync-server/internal/protocol"
	"codesync-server/internal/registry"
	"codesync-server/internal/room"
	"codesync-server/internal/ws"
)

func main() {
	// Local .env is dev-only; real deployments set the environment.
	_ = godotenv.Load()

	cfg := app.LoadConfig()
	logger := app.NewLogger(cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := registry.New()
	rooms := room.NewDirectory()
	hub := ws.NewHub(logger)
	handler := protocol.NewHandler(logger, reg, rooms, hub)
	execClient := exec.NewClient(cfg.PistonURL, cfg.ExecTimeout, logger)
	apiHandler := api.New(hub, rooms, execClient, logger)

	r := mux.NewRouter()
	r.Handle("/ws", ws.ServeWs(hub, handler, logger, cfg.ClientURL))
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", apiHandler.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", apiHandler.StatsHandler).Methods(http.MethodGet)
	r.HandleFunc("/compile", apiHandler.CompileHandler).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ClientURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Recover(logger, c.Handler(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server.listening", "addr", cfg.HTTPAddr, "clientURL", cfg.ClientURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("server.shutdown.start")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
}
