package testutil

import (
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/tubesort-backend/internal/data/db"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

// Repo tests run against a shared in-memory SQLite database; cascade and
// unique constraints behave like the Postgres schema as long as the
// foreign-key pragma is on. Each test gets its own transaction and rolls it
// back on cleanup, so tests never see each other's rows.
const testDSN = "file:tubesort_repo_test?mode=memory&cache=shared&_foreign_keys=1"

var (
	dbOnce sync.Once
	sqdb   *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		var err error
		sqdb, err = gorm.Open(sqlite.Open(testDSN), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}
		if err := db.AutoMigrateAll(sqdb); err != nil {
			dbErr = err
			return
		}
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return sqdb
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()

	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("failed to begin test tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback()
	})
	return tx
}
