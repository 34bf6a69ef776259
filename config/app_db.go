package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported DB_DRIVER values. sqlite suits a single-host install of the form.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver          string
	URL             string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	// SSLMode applies when the DSN is assembled from POSTGRES_* variables.
	SSLMode string
}

func NewDBConfigFromEnv() *DBConfig {
	return &DBConfig{
		Driver:          strings.ToLower(utils.GetEnvTrimmedOrDefault("DB_DRIVER", DriverPostgres)),
		URL:             sanitizeEnv(GetValueFromEnvironmentVariable("APP_DATABASE_URL", "")),
		SQLitePath:      utils.GetEnvTrimmedOrDefault("SQLITE_PATH", "sunday-signup.db"),
		MaxIdleConns:    int(utils.GetEnvInt64OrDefault("DB_MAX_IDLE_CONNS", 5)),
		MaxOpenConns:    int(utils.GetEnvInt64OrDefault("DB_MAX_OPEN_CONNS", 20)),
		ConnMaxLifetime: utils.GetEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		SSLMode:         "require",
	}
}

func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	if cfg == nil {
		cfg = NewDBConfigFromEnv()
	}

	dialector, err := dialectorFor(logger, cfg)
	if err != nil {
		logger.Error("Invalid database configuration", "error", err)
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "driver", cfg.Driver, "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// sqlite allows one writer; a single connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		logger.Error("Database ping failed", "error", err)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Driver)
	return gdb, nil
}

func dialectorFor(logger *log.Logger, cfg *DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite:
		logger.Info("Using sqlite database", "path", cfg.SQLitePath)
		return sqlite.Open(cfg.SQLitePath), nil
	case DriverPostgres, "":
		cfg.Driver = DriverPostgres
		dsn, err := postgresDSN(logger, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use %s or %s)", cfg.Driver, DriverPostgres, DriverSQLite)
	}
}

// postgresDSN prefers APP_DATABASE_URL and otherwise assembles a DSN from the
// POSTGRES_* variables.
func postgresDSN(logger *log.Logger, cfg *DBConfig) (string, error) {
	if cfg.URL != "" {
		logger.Info("Using APP_DATABASE_URL for database connection")
		return cfg.URL, nil
	}

	params := make(map[string]string, 4)
	var missing []string
	for _, key := range []string{"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_DB_NAME"} {
		params[key] = sanitizeEnv(GetValueFromEnvironmentVariable(key, ""))
		if params[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(params["POSTGRES_PORT"])
	if err != nil || port <= 0 {
		return "", fmt.Errorf("invalid POSTGRES_PORT %q", params["POSTGRES_PORT"])
	}

	ssl := sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_SSLMODE", ""))
	if ssl == "" {
		ssl = cfg.SSLMode
	}

	logger.Info("Connecting to database",
		"host", params["POSTGRES_HOST"],
		"port", port,
		"dbname", params["POSTGRES_DB_NAME"],
		"sslmode", ssl,
	)

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		params["POSTGRES_HOST"], port, params["POSTGRES_USER"],
		sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PASSWORD", "")),
		params["POSTGRES_DB_NAME"], ssl,
	), nil
}

func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)
	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}
	return s
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...any) error {
	if db == nil {
		return errors.New("cannot migrate: db is nil")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database auto-migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database auto-migration completed", "models", len(models))
	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
		return
	}
	logger.Info("Database closed")
}
