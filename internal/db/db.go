package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/page-scheduler/internal/config"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
)

// overlapping non-cancelled ranges of the same page are rejected by
// Postgres itself (SQLSTATE 23P01)
const exclusionConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
	) THEN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (
				page_slug WITH =,
				tstzrange(start_at, end_at, '[)') WITH &&
			)
			WHERE (status <> 'cancelled');
	END IF;
END
$$;
`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxConns / 2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, cfg.Timezone); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.Int("max_conns", cfg.DBMaxConns))
	return db, nil
}

// Migrate creates the schema and fills pages without a timezone with
// defaultTZ.
func Migrate(db *gorm.DB, defaultTZ string) error {
	if err := db.AutoMigrate(
		&models.Page{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}
	if err := db.Exec(exclusionConstraint).Error; err != nil {
		return fmt.Errorf("appointments exclusion constraint: %w", err)
	}

	return backfillTimezone(db, defaultTZ)
}

func backfillTimezone(db *gorm.DB, tz string) error {
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}
	err := db.Exec(`
		UPDATE pages
		SET timezone = ?
		WHERE timezone IS NULL OR timezone = ''
	`, tz).Error
	if err != nil {
		return fmt.Errorf("backfill page timezone: %w", err)
	}
	return nil
}
