package testutil

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	dbpkg "github.com/yungbote/lessonquiz-backend/internal/data/db"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"gorm.io/gorm"
)

var (
	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error

	sqliteSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Nop()
}

// DB returns a migrated database. With TEST_POSTGRES_DSN set, one shared
// Postgres connection is used (pair it with Tx). Otherwise each call gets its
// own in-memory SQLite database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	if dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN")); dsn != "" {
		pgOnce.Do(func() {
			svc, err := dbpkg.Open(dbpkg.Config{Driver: dbpkg.DriverPostgres, DSN: dsn}, logger.Nop())
			if err != nil {
				pgErr = err
				return
			}
			if err := svc.AutoMigrateAll(); err != nil {
				pgErr = err
				return
			}
			pgDB = svc.DB()
		})
		if pgErr != nil {
			tb.Fatalf("failed to init test db: %v", pgErr)
		}
		return pgDB
	}

	name := fmt.Sprintf("testdb_%d", sqliteSeq.Add(1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	svc, err := dbpkg.Open(dbpkg.Config{Driver: dbpkg.DriverSQLite, DSN: dsn, MaxIdleConns: 2}, logger.Nop())
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		tb.Fatalf("failed to migrate sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	return svc.DB()
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
