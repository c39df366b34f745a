package main

import (
	"flag"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youthadmin/internal/config"
	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/handler"
	"github.com/youthadmin/internal/logger"
	"github.com/youthadmin/internal/router"
	"github.com/youthadmin/internal/store"
)

type seedingStore interface {
	store.Store
	store.Seeder
}

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log)

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	if cfg.SeedData {
		if err := seed(st); err != nil {
			log.Fatalf("failed to seed store: %v", err)
		}
	}

	gin.SetMode(cfg.GinMode)
	api := handler.NewAPI(st, cfg.UploadDir, cfg.UploadURLPath, time.Now)
	r := router.SetupRouter(api, router.Options{
		UploadDir:      cfg.UploadDir,
		UploadURLPath:  cfg.UploadURLPath,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	logger.Info("server starting", "addr", cfg.ListenAddr, "store", cfg.StoreDriver)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func openStore(cfg config.AppConfig) (seedingStore, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		return store.NewMemoryStore(time.Now), nil
	}

	gdb, err := db.Open(cfg.DatabasePath, cfg.GinMode == gin.DebugMode)
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(gdb, time.Now), nil
}

func seed(st seedingStore) error {
	members, err := st.ListMembers()
	if err != nil {
		return err
	}
	// file-backed databases keep rows from the previous run
	if len(members) > 0 {
		logger.Info("store already populated, skipping seed", "members", len(members))
		return nil
	}

	if err := st.SeedMembers(db.SeedMembers()); err != nil {
		return err
	}
	if err := st.SeedVisitations(db.SeedVisitations()); err != nil {
		return err
	}
	logger.Info("seed data loaded")
	return nil
}
