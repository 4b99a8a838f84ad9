package memostore

import (
	"strings"

	"github.com/oliverisaac/memocal/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres when a database URL is configured and to the
// SQLite file at DBPath otherwise, then migrates the memo table.
func Open(cfg types.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg)),
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(cfg.DatabaseURL, "postgres://"), strings.HasPrefix(cfg.DatabaseURL, "postgresql://"):
		dialector = postgres.Open(cfg.DatabaseURL)
	case cfg.DatabaseURL != "":
		return nil, errors.Errorf("unsupported database url scheme in %q", redact(cfg.DatabaseURL))
	default:
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	gormTables := []any{
		&types.Memo{},
	}
	for _, t := range gormTables {
		if err := db.AutoMigrate(t); err != nil {
			return errors.Wrap(err, "Failed to migrate")
		}
	}
	return nil
}

func gormLogLevel(cfg types.Config) logger.LogLevel {
	if cfg.LogLevel >= logrus.DebugLevel {
		return logger.Info
	}
	return logger.Warn
}

func redact(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i+3] + "..."
	}
	return "..."
}
