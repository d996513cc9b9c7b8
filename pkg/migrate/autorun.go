package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/fuelstation-backend/pkg/config"
	"github.com/angelmondragon/fuelstation-backend/pkg/db"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
)

// MaybeRunDev prepares the schema at boot. The embedded sqlite store is always
// auto-migrated from the models. Postgres runs the goose migrations only in dev
// with the auto-migrate flag enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if client.IsSQLite() {
		ctx = logg.WithField(ctx, "db_driver", client.Driver())
		if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("sqlite automigrate: %w", err)
		}
		logg.Info(ctx, "sqlite schema ready")
		return nil
	}

	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
