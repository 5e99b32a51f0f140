package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"sales-insight/internal/api"
	"sales-insight/internal/config"
	"sales-insight/internal/engine"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("SALES_CONFIG"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Environment overrides, as in the rest of our deployments
	merged := config.Merge(*cfg, config.Config{
		Data: config.DataConfig{Path: os.Getenv("SALES_DATA")},
		API:  config.APIConfig{Port: os.Getenv("API_PORT")},
	})
	cfg = &merged
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	load := func() (*engine.Engine, error) {
		return engine.Open(cfg.Data.Path, cfg.Data.LoadOptions(),
			engine.WithCurrencySymbol(cfg.Format.CurrencySymbol))
	}

	eng, err := load()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	store := engine.NewStore(eng)

	cache := engine.NewAnswerCache(cfg.API.CacheTTL)
	defer cache.Close()
	if cache != nil {
		log.Printf("Answer cache enabled (ttl=%s)", cfg.API.CacheTTL)
	}

	deps := api.Deps{Store: store, Cache: cache}
	if cfg.API.ReloadSchedule != "" {
		reloader, err := engine.NewReloader(store, cfg.API.ReloadSchedule, load)
		if err != nil {
			log.Fatalf("Failed to schedule reloads: %v", err)
		}
		reloader.Start()
		defer reloader.Stop()
		deps.Reload = reloader.Reload
		log.Printf("Dataset reload scheduled: %s", cfg.API.ReloadSchedule)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%s", cfg.API.Port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
