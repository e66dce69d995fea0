/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the schedule analysis server: loads config,
  picks the dataset provider, opens the run archive, wires the HTTP
  router, and handles graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env / environment, flag overrides)
  2. Select dataset provider (local CSV file or remote URL)
  3. Open the SQLite run archive (optional)
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -data    Local CSV schedule file (overrides DATA_FILE)
  -url     Remote CSV schedule URL (overrides DATA_URL)
  -db      Run-archive SQLite path (overrides DB_PATH); "" disables

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the archive
  4. Exit

EXAMPLES:
  ./server -data=./folgas.csv -db=./data/cronograma.db
  DATA_URL=https://intranet.example/folgas.csv ./server

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pedreb/cronogramadefolgas/api"
	"github.com/Pedreb/cronogramadefolgas/config"
	"github.com/Pedreb/cronogramadefolgas/gazetteer"
	"github.com/Pedreb/cronogramadefolgas/source"
	"github.com/Pedreb/cronogramadefolgas/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dataFile := flag.String("data", cfg.DataFile, "local CSV schedule file")
	dataURL := flag.String("url", cfg.DataURL, "remote CSV schedule URL")
	dbPath := flag.String("db", cfg.DBPath, "run-archive SQLite path (empty disables)")
	flag.Parse()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Dataset provider
	var provider source.Provider
	switch {
	case *dataURL != "":
		provider = source.NewHTTPProvider(*dataURL, cfg.DataToken)
		logrus.WithField("url", *dataURL).Info("using remote schedule source")
	case *dataFile != "":
		provider = source.NewCSVProvider(*dataFile)
		logrus.WithField("file", *dataFile).Info("using local schedule source")
	default:
		logrus.Fatal("no data source configured: set DATA_FILE or DATA_URL")
	}

	// Run archive (optional)
	var archive *sqlite.Store
	if *dbPath != "" {
		var err error
		archive, err = sqlite.New(*dbPath)
		if err != nil {
			logrus.WithError(err).Fatal("failed to open run archive")
		}
		defer archive.Close()
	}

	handler := api.NewHandler(provider, gazetteer.Para(), archive, cfg.Policy)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server stopped")
}
