// Command seed-drills populates the remote data platform with
// generated drill fixtures for demo and staging environments.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/volleykit/drillboard/internal/seeder"
	"github.com/volleykit/drillboard/pkg/logger"
)

const (
	defaultNumDrills = 50
	runTimeout       = 5 * time.Minute
)

func main() {
	_ = godotenv.Load()

	var (
		platformURL = flag.String("url", os.Getenv("DRILLBOARD_PLATFORM_URL"), "Base URL of the data platform")
		apiKey      = flag.String("key", os.Getenv("DRILLBOARD_PLATFORM_KEY"), "Platform anonymous API key")
		email       = flag.String("email", os.Getenv("DRILLBOARD_SEED_EMAIL"), "Account email used for seeding")
		password    = flag.String("password", os.Getenv("DRILLBOARD_SEED_PASSWORD"), "Account password")
		numDrills   = flag.Int("drills", defaultNumDrills, "Number of drills to generate and insert")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if *platformURL == "" || *apiKey == "" {
		log.Error(ctx, "platform URL and API key are required")
		os.Exit(1)
	}

	stats, err := seeder.Run(ctx, seeder.Config{
		PlatformURL: *platformURL,
		APIKey:      *apiKey,
		Email:       *email,
		Password:    *password,
		NumDrills:   *numDrills,
	})
	if err != nil {
		log.Error(ctx, "seeding failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "done", logger.Int("created", stats.Created), logger.Int("failed", stats.Failed))
}
