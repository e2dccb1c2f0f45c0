package db

import (
	"context"
	"testing"

	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	svc, err := Open(Config{Driver: DriverSQLite, DSN: "file:dbtest?mode=memory&cache=shared"}, logger.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })

	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	if err := svc.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	for _, table := range []string{"users", "courses", "lessons", "quizzes"} {
		if !svc.DB().Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
	if !svc.DB().Migrator().HasColumn(&types.Quiz{}, "questions") {
		t.Fatalf("quizzes.questions missing")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}, logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
