// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_persistence

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rapidaai/meetingbot/pkg/commons"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testLogger struct{}

func newTestLogger() commons.Logger { return testLogger{} }

func (testLogger) Debug(args ...interface{})                 {}
func (testLogger) Debugf(format string, args ...interface{}) {}
func (testLogger) Info(args ...interface{})                  {}
func (testLogger) Infof(format string, args ...interface{})  {}
func (testLogger) Warn(args ...interface{})                  {}
func (testLogger) Warnf(format string, args ...interface{})  {}
func (testLogger) Error(args ...interface{})                 {}
func (testLogger) Errorf(format string, args ...interface{}) {}
func (testLogger) Fatalf(format string, args ...interface{}) {}

// TestStoreInsertIssuesExpectedSQL uses sqlmock to verify Insert issues an
// INSERT against meeting_reports inside a transaction, without needing a
// real Postgres instance.
func TestStoreInsertIssuesExpectedSQL(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "meeting_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("report-1"))
	mock.ExpectCommit()

	store := NewStore(gdb, newTestLogger())
	report := &MeetingReport{
		ID:            "report-1",
		Platform:      "zoom",
		Title:         "Weekly Sync",
		ReportURL:     "https://bucket/report.html",
		TranscriptURL: "https://bucket/transcript.txt",
	}
	require.NoError(t, store.Insert(context.Background(), report))
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestStoreGetReturnsInsertedReport uses an in-memory sqlite database for a
// round-trip Insert+Get that exercises the real AutoMigrate schema rather
// than a mocked query.
func TestStoreGetReturnsInsertedReport(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&MeetingReport{}))

	store := NewStore(gdb, newTestLogger())
	report := &MeetingReport{
		Platform:      "teams",
		Title:         "Planning",
		ReportURL:     "https://bucket/report.html",
		TranscriptURL: "https://bucket/transcript.txt",
	}
	require.NoError(t, store.Insert(context.Background(), report))
	require.NotEmpty(t, report.ID)

	got, err := store.Get(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, "Planning", got.Title)
	require.Equal(t, "teams", got.Platform)
}
