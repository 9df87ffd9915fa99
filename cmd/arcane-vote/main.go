package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/metadb"
	"go.vocdoni.io/dvote/log"

	"github.com/Lauren6175/arcane-vote/engine"
	"github.com/Lauren6175/arcane-vote/service"
	"github.com/Lauren6175/arcane-vote/storage"
)

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := flag.String("dataDir", filepath.Join(home, ".arcane-vote"), "data directory for the database")
	host := flag.String("host", "0.0.0.0", "API server host")
	port := flag.Int("port", 8080, "API server port")
	logLevel := flag.String("logLevel", "info", "log level (debug, info, warn, error)")
	monitorInterval := flag.Duration("monitorInterval", 30*time.Second, "expired poll sweep interval")
	flag.Parse()
	log.Init(*logLevel, "stdout", nil)

	database, err := metadb.New(db.TypePebble, filepath.Join(*dataDir, "db"))
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	store := storage.New(database)
	eng := engine.New(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiService := service.NewAPI(eng, *host, *port)
	if err := apiService.Start(ctx); err != nil {
		log.Fatalf("could not start API service: %v", err)
	}
	monitor := service.NewPollMonitor(eng, *monitorInterval)
	if err := monitor.Start(ctx); err != nil {
		log.Fatalf("could not start poll monitor: %v", err)
	}
	log.Infow("ballot service started", "dataDir", *dataDir, "host", *host, "port", *port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
	monitor.Stop()
	apiService.Stop()
}
