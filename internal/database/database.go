package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sjperalta/frontdesk-api/internal/models"
	pkgLogger "github.com/sjperalta/frontdesk-api/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlitePrefix selects the embedded sqlite driver, e.g. "sqlite:./data/frontdesk.db"
// or "sqlite::memory:". Anything else is handed to postgres.
const sqlitePrefix = "sqlite:"

// Connect establishes a connection to the ledger database
func Connect(databaseURL, environment string) (*gorm.DB, error) {
	// Configure GORM logger
	logLevel := logger.Silent
	if environment == "development" {
		logLevel = logger.Info
	} else if environment == "production" {
		logLevel = logger.Warn
	}

	gormLogger := pkgLogger.NewGormLogger(
		logLevel,
		200*time.Millisecond,
	)

	dialector, isSQLite := dialectorFor(databaseURL)

	// Open database connection
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true, // ledger writes use explicit transactions
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	if isSQLite {
		// sqlite has a single writer; one connection serializes ledger transactions
		// and keeps an in-memory database alive for the life of the pool.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, bool) {
	if strings.HasPrefix(databaseURL, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(databaseURL, sqlitePrefix)), true
	}
	return postgres.Open(databaseURL), false
}

// Migrate creates or updates the ledger tables and the collaborator tables it reads
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Bill{},
		&models.PaymentNote{},
		&models.Charge{},
		&models.Advance{},
		&models.Stay{},
		&models.Room{},
		&models.PaymentMode{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
