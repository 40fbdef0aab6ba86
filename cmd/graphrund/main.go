// Command graphrund serves the graphrun engine over HTTP.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmalkin/graphrun/internal/api"
	"github.com/jmalkin/graphrun/internal/telemetry"
	"github.com/jmalkin/graphrun/pkg/graphrun"
	"github.com/jmalkin/graphrun/pkg/graphrun/config"
	"github.com/jmalkin/graphrun/pkg/graphrun/journal"
	"github.com/jmalkin/graphrun/pkg/graphrun/nodes"
)

func main() {
	configPath := flag.String("config", "", "path to config file (yaml or json)")
	flag.Parse()

	logger := telemetry.SetupLogger()
	logger.Info("starting graphrund")

	settings := config.Default()
	if *configPath != "" {
		var err error
		settings, err = config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err, "path", *configPath)
			os.Exit(1)
		}
	}

	opts := []graphrun.Option{
		graphrun.WithLogger(logger),
		graphrun.WithMaxSteps(settings.MaxSteps),
	}

	if settings.JournalPath != "" {
		store, err := journal.NewSQLiteStore(settings.JournalPath)
		if err != nil {
			logger.Error("failed to open journal", "error", err, "path", settings.JournalPath)
			os.Exit(1)
		}
		defer store.Close()
		logger.Info("journal enabled", "path", settings.JournalPath)
		opts = append(opts, graphrun.WithJournal(store))
	}

	engine := graphrun.New(opts...)
	resolver := nodes.DefaultResolver()

	if settings.SampleGraph {
		graphID, err := engine.CreateGraph(nodes.ReviewGraph())
		if err != nil {
			logger.Error("failed to register sample graph", "error", err)
			os.Exit(1)
		}
		logger.Info("sample graph registered", "graph_id", graphID)
	}

	handler := api.NewHandler(api.Config{
		Engine:   engine,
		Resolver: resolver,
		Logger:   logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler.RegisterRoutes(mux)

	server := &http.Server{
		Addr:    settings.Addr,
		Handler: mux,
	}

	go func() {
		logger.Info("listening", "addr", settings.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	// In-flight runs are abandoned at process exit; only the HTTP
	// side drains gracefully.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
