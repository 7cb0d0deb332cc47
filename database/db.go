package database

import (
	"fmt"
	"time"

	"parcel-delivery/config"
	"parcel-delivery/logger"
	"parcel-delivery/models/log"
	"parcel-delivery/models/user"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table owned by this app.
func Models() []interface{} {
	return []interface{}{
		&log.Log{},
		&log.TrackingFailure{},
		&user.Identity{},
	}
}

// DSN builds the PostgreSQL connection string.
func DSN(cfg config.Database) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Open connects without migrating.
func Open(cfg config.Database) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// InitDB initializes the database connection with auto migration and indexing
func InitDB(cfg config.Database) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(db); err != nil {
		logger.Error("Failed to migrate database", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	return db, nil
}

// Migrate runs AutoMigrate for every model then creates the secondary indexes.
func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return createIndexes(db)
}

var indexes = []struct {
	name string
	sql  string
}{
	{"idx_logs_method", "CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)"},
	{"idx_logs_status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
	{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	{"idx_tracking_failures_occurred_at", "CREATE INDEX IF NOT EXISTS idx_tracking_failures_occurred_at ON tracking_failures(occurred_at)"},
	{"idx_identities_email", "CREATE INDEX IF NOT EXISTS idx_identities_email ON identities(email)"},
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", idx.name, err)
		}
	}
	return nil
}

// PruneLogs deletes request logs older than the cutoff and returns the count.
func PruneLogs(db *gorm.DB, before time.Time) (int64, error) {
	res := db.Where("created_at < ?", before).Delete(&log.Log{})
	return res.RowsAffected, res.Error
}
