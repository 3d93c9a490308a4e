package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nannyhub/babysitter-api/internal/clock"
	"github.com/nannyhub/babysitter-api/internal/config"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&models.User{},
		&models.SitterProfile{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Review{},
		&models.AuditLog{},
	}
}

// GormConfig is shared by postgres and the sqlite test databases so both
// stamp timestamps in UTC.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		NowFunc:        clock.Now,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gcfg := GormConfig()
	gcfg.PrepareStmt = true

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	log.Info("database connected",
		zap.Int("max_open_conns", cfg.DBMaxOpenConns),
		zap.Int("max_idle_conns", cfg.DBMaxIdleConns),
	)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
