// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_persistence

import (
	"context"
	"fmt"

	"github.com/rapidaai/meetingbot/pkg/commons"
	"github.com/rapidaai/meetingbot/pkg/configs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store persists completed meeting reports. There is no
// pending/claimed/completed status machine here: a report is written once,
// after the Report Builder run that produced it finishes.
type Store interface {
	// Insert writes a new MeetingReport row, assigning an ID if unset.
	Insert(ctx context.Context, report *MeetingReport) error
	// Get retrieves a report by ID.
	Get(ctx context.Context, id string) (*MeetingReport, error)
}

type gormStore struct {
	db     *gorm.DB
	logger commons.Logger
}

// NewStore wraps an already-opened *gorm.DB. Callers obtain db from Open
// (production) or their own sqlite/sqlmock connection (tests).
func NewStore(db *gorm.DB, logger commons.Logger) Store {
	return &gormStore{db: db, logger: logger}
}

// Open dials Postgres using a DSN-style connection string
// (host/port/dbname/user/password/sslmode), with connection pool limits
// taken from PostgresConfig.
func Open(cfg configs.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.DBName, cfg.User, cfg.Password, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("persistence: failed to open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("persistence: failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConnections)

	if err := db.AutoMigrate(&MeetingReport{}); err != nil {
		return nil, fmt.Errorf("persistence: auto-migrate failed: %w", err)
	}
	return db, nil
}

func (s *gormStore) Insert(ctx context.Context, report *MeetingReport) error {
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("persistence: failed to insert meeting report: %w", err)
	}
	s.logger.Infof("persistence: inserted meeting report id=%s platform=%s", report.ID, report.Platform)
	return nil
}

func (s *gormStore) Get(ctx context.Context, id string) (*MeetingReport, error) {
	var report MeetingReport
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, fmt.Errorf("persistence: meeting report %s not found: %w", id, err)
	}
	return &report, nil
}
