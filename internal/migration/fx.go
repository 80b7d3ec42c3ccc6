package migration

import (
	"context"

	"github.com/smallbiznis/supportly/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		return Apply(context.Background(), conn, cfg, log)
	}),
)

// Apply brings the schema up to date for the configured database type.
func Apply(ctx context.Context, conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
	switch cfg.DBType {
	case "sqlite":
		if err := ApplySQLiteSchema(ctx, conn); err != nil {
			return err
		}
	default:
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
	}
	if log != nil {
		log.Info("schema up to date", zap.String("type", cfg.DBType))
	}
	return nil
}
