// Package jobs runs the scheduled catalog sync: fetch the external app
// list, then per-app details, upserting each into the game store.
package jobs

import (
	"context"
	"errors"

	"github.com/playvault/playvault/internal/logger"
	"github.com/playvault/playvault/internal/services"
	"github.com/playvault/playvault/internal/steam"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Syncer performs one catalog sync pass. Strictly sequential: one
// details fetch and one upsert at a time, skipping and logging
// failures without retry.
type Syncer struct {
	DB    *gorm.DB
	Steam *steam.Client
	Log   *logger.Logger
	Limit int
}

// Run executes a single sync pass over at most Limit apps.
func (s *Syncer) Run(ctx context.Context) error {
	apps, err := s.Steam.FetchAppList(ctx)
	if err != nil {
		s.Log.Error("fetching app list", zap.Error(err))
		return err
	}

	if s.Limit > 0 && len(apps) > s.Limit {
		apps = apps[:s.Limit]
	}

	s.Log.Info("catalog sync started", zap.Int("apps", len(apps)))

	var synced, skipped int
	for _, app := range apps {
		if err := ctx.Err(); err != nil {
			return err
		}

		details, err := s.Steam.FetchAppDetails(ctx, app.AppID)
		if err != nil {
			if errors.Is(err, steam.ErrAppNotFound) {
				s.Log.Warn("no details for app", zap.Uint("appid", app.AppID))
			} else {
				s.Log.Error("fetching app details", zap.Uint("appid", app.AppID), zap.Error(err))
			}
			skipped++
			continue
		}

		if err := services.UpsertGame(s.DB, details.ToGame()); err != nil {
			s.Log.Error("upserting game", zap.Uint("appid", app.AppID), zap.Error(err))
			skipped++
			continue
		}
		synced++
	}

	s.Log.Info("catalog sync finished", zap.Int("synced", synced), zap.Int("skipped", skipped))
	return nil
}

// Schedule starts a cron scheduler running the sync on the given spec
// (monthly by default). The returned cron is already started; callers
// stop it on shutdown.
func (s *Syncer) Schedule(spec string) (*cron.Cron, error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		if err := s.Run(context.Background()); err != nil {
			s.Log.Error("scheduled catalog sync failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	scheduler.Start()
	return scheduler, nil
}
