// Package seeder generates realistic drill fixtures and loads them
// into the remote data platform. Used to populate demo and staging
// environments; writes go through the same client and session gate as
// the application proper.
package seeder

import (
	"context"
	"fmt"

	"github.com/volleykit/drillboard/internal/adapters/platform"
	"github.com/volleykit/drillboard/pkg/logger"
)

// Config drives one seeding run.
type Config struct {
	PlatformURL string
	APIKey      string
	Email       string
	Password    string
	NumDrills   int
}

// Stats summarizes a run.
type Stats struct {
	Created int
	Failed  int
}

// Run signs in, generates NumDrills fixtures, and inserts them one by
// one. Individual insert failures are logged and counted, not fatal.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	log := logger.Named("seeder")
	client := platform.New(cfg.PlatformURL, cfg.APIKey, platform.WithLogger(log))

	sess, err := client.SignIn(ctx, cfg.Email, cfg.Password)
	if err != nil {
		return Stats{}, fmt.Errorf("sign-in failed: %w", err)
	}
	log.Info(ctx, "signed in", logger.String("email", sess.User.Email))

	var stats Stats
	for _, d := range GenerateDrills(cfg.NumDrills) {
		if _, err := client.CreateDrill(ctx, sess.AccessToken, d); err != nil {
			stats.Failed++
			log.Warn(ctx, "insert failed", logger.String("url", d.URL), logger.Error(err))
			continue
		}
		stats.Created++
	}
	log.Info(ctx, "seeding finished",
		logger.Int("created", stats.Created),
		logger.Int("failed", stats.Failed),
	)
	return stats, nil
}
