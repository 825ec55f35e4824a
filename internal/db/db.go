package db

import (
	"fmt"
	"strings"
	"time"

	"fonds-social-go/internal/config"
	"fonds-social-go/internal/domain/auth"
	"fonds-social-go/internal/domain/caisse"
	"fonds-social-go/internal/domain/cotisations"
	"fonds-social-go/internal/domain/membres"
	"fonds-social-go/internal/domain/missions"
	"fonds-social-go/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
)

// New opens the database described by cfg. A DSN starting with sqlite:
// (or ending in .db) selects the sqlite driver, anything else postgres.
func New(cfg config.DBConfig, log logger.Logger) (*gorm.DB, error) {
	dsn := cfg.GetDSN()
	dialector := selectDialector(dsn)

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = defaultMaxIdleConns
	}
	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = defaultConnMaxLifetime
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	log.Info("db: connected")
	return gormDB, nil
}

func selectDialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasSuffix(dsn, ".db"):
		return sqlite.Open(dsn)
	default:
		return postgres.Open(dsn)
	}
}

// Migrate creates or updates the schema for every model.
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&auth.User{},
		&membres.Membre{},
		&cotisations.Cotisation{},
		&missions.Mission{},
		&missions.PaiementMission{},
		&caisse.CaisseSociale{},
		&caisse.SoldeEntree{},
		&caisse.SoldeSortie{},
	)
}
