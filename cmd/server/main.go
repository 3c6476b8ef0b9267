package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"github.com/napolitain/factory-planner/internal/config"
	"github.com/napolitain/factory-planner/internal/loader"
	"github.com/napolitain/factory-planner/internal/logging"
	"github.com/napolitain/factory-planner/internal/server"
	"github.com/napolitain/factory-planner/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to planner.yaml")
	dataDir    = flag.String("data", "", "Path to data directory (overrides config)")
	port       = flag.Int("port", 0, "The server port (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	logging.SetDefault("server", cfg.Logging.Level, cfg.Logging.Format)

	srv, db, err := newServer(cfg)
	if err != nil {
		slog.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close(db) }()

	if err := server.Run(srv); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// newServer loads game data and opens the plan database
func newServer(cfg *config.Config) (*server.Server, *gorm.DB, error) {
	data, err := loader.LoadGameData(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	defaults, err := cfg.Defaults.Factory()
	if err != nil {
		return nil, nil, err
	}
	slog.Info("loaded game data",
		"items", len(data.Items),
		"recipes", len(data.Recipes),
		"buildings", len(data.Buildings),
	)

	db, err := store.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	srv := server.New(cfg.Server, data,
		server.WithDefaults(defaults),
		server.WithPlanStore(store.NewGormPlanRepository(db)),
	)
	return srv, db, nil
}
