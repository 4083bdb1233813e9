package database

import (
	"errors"
	"time"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationSeedLocales = "2024-03-10_seed_locales"

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationSeedLocales, apply: seedLocales},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// seedLocales inserts the fixed locale set referenced by users.locale.
func seedLocales(db *gorm.DB) error {
	for _, locale := range locales.All() {
		if err := db.Create(&locales.Record{Language: locale.String()}).Error; err != nil {
			return err
		}
	}
	return nil
}
