package db

import (
	"context"
	"time"

	"p2p-lending-backend/internal/domain/loanoffer"
	"p2p-lending-backend/internal/domain/loanrequest"
	"p2p-lending-backend/internal/domain/user"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string, log *zap.Logger) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), log)
}

// OpenGormWithDialector opens, tunes the pool and pings. Split out so tests
// can hand in a dialector over a mocked *sql.DB.
func OpenGormWithDialector(dial gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Warn),
		TranslateError:       true,
		DisableAutomaticPing: true, // pinged below, after pool tuning
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Info("gorm: connected")
	return db, nil
}

// Ping checks the pool behind db; the readiness probe calls it.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates the ledger tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &loanrequest.LoanRequest{}, &loanoffer.LoanOffer{})
}
