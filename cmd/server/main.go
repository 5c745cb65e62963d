package main

import (
	"flag"

	"github.com/hollowdrift/claudegate/internal/backend"
	"github.com/hollowdrift/claudegate/internal/config"
	"github.com/hollowdrift/claudegate/internal/gateway"
	"github.com/hollowdrift/claudegate/internal/logger"
	"github.com/hollowdrift/claudegate/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to the configuration file")
	flag.Parse()

	logger.InitLogger(logger.INFO, "claudegate")
	log := logger.GetLogger()

	// Load configuration from file and environment
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Load config: %v", err)
	}

	// Dial the key-value store once; the handle is shared by all requests.
	kv, err := store.Dial(cfg.RedisURL)
	if err != nil {
		log.Fatal("Dial store: %v", err)
	}
	defer kv.Close()

	// Select the backend driver variant at startup
	var driver backend.Driver
	switch cfg.Backend.Variant {
	case config.VariantEmbedded:
		driver = backend.NewEmbedded(backend.EmbeddedConfig{
			APIBase:   cfg.Backend.Origin,
			AuthToken: cfg.Backend.AuthToken,
		})
	default:
		driver = backend.NewDriverCall(backend.DriverCallConfig{
			Origin:    cfg.Backend.Origin,
			AuthToken: cfg.Backend.AuthToken,
		})
	}

	gw := gateway.New(cfg, kv, driver)

	log.Info("Gateway listening on %s, backend %s (%s)", cfg.ListenAddr, cfg.Backend.Origin, cfg.Backend.Variant)
	if err := gw.Router().Run(cfg.ListenAddr); err != nil {
		log.Fatal("Server stopped: %v", err)
	}
}
