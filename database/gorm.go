package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/online-lms/config"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Storage defines the persistence gateway used by services and handlers
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GORM DB access
	GetDB() *gorm.DB

	// NewUnitOfWork starts a change set with a single commit point
	NewUnitOfWork() *UnitOfWork
}

type GORMStore struct {
	db    *gorm.DB
	retry RetryPolicy
	log   *logger.Logger
}

// NewGORMStore wraps an already opened connection
func NewGORMStore(db *gorm.DB, retry RetryPolicy, log *logger.Logger) *GORMStore {
	if log == nil {
		log = logger.Nop()
	}
	return &GORMStore{db: db, retry: retry, log: log}
}

// StartGORM opens the configured database, retrying transient connection failures
func StartGORM(cfg *config.Config, log *logger.Logger) (*GORMStore, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Configure GORM logger
	gormLogger := gormlogger.Default.LogMode(gormlogger.Info)
	if cfg.IsProduction() {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Error)
	}

	policy := RetryPolicy{
		MaxRetries: cfg.Database.MaxRetries,
		MaxDelay:   cfg.Database.MaxRetryDelay,
	}

	var db *gorm.DB
	attempt := 0
	err = policy.do(context.Background(), retryAll, func(ctx context.Context) error {
		attempt++
		var openErr error
		db, openErr = gorm.Open(dialector, &gorm.Config{
			Logger:                 gormLogger,
			SkipDefaultTransaction: false,
			TranslateError:         true, // unique violations surface as gorm.ErrDuplicatedKey
			PrepareStmt:            true, // Prepare statements for better performance
		})
		if openErr != nil {
			log.Warn("database connection failed", "driver", cfg.Database.Driver, "attempt", attempt, "error", openErr)
		}
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Database.Driver, err)
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	if cfg.Database.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Info("connected to database", "driver", cfg.Database.Driver)

	return NewGORMStore(db, policy, log), nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
				cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
			)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
			)
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = cfg.Name + ".db"
		}
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	s.log.Info("running AutoMigrate")

	if err := s.db.AutoMigrate(model.All()...); err != nil {
		s.log.Error("AutoMigrate failed", "error", err)
		return err
	}

	s.log.Info("AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	s.log.Info("closing database connection")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in services and queries
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// NewUnitOfWork starts an empty change set bound to this store
func (s *GORMStore) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{db: s.db, retry: s.retry}
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// PoolStats reports connection pool usage for monitoring
func (s *GORMStore) PoolStats() (open, inUse, idle int, err error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return 0, 0, 0, err
	}
	st := sqlDB.Stats()
	return st.OpenConnections, st.InUse, st.Idle, nil
}
