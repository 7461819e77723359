package main

import (
	"context"
	"flag"

	"reviewers/pkg/allocation"
	"reviewers/pkg/api"
	"reviewers/pkg/config"
	"reviewers/pkg/sheets"

	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configPath := flag.String("config", "", "Settings file (default $ALLOCATOR_CONFIG or allocator.toml)")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	result, err := api.RunAllocation(
		context.Background(),
		cfg,
		sheets.GoogleAuthorizer{},
		allocation.New(cfg.Settings.Seed),
	)
	if err != nil {
		log.Fatalf("Failed to allocate reviewers: %v", err)
	}
	if result.Exception != "" {
		log.Warnf("Recorded exception in sheet: %s", result.Exception)
	}
}
