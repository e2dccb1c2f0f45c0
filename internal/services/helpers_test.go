package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/lessonquiz-backend/internal/data/repos/learning"
	"github.com/yungbote/lessonquiz-backend/internal/data/repos/testutil"
	userrepo "github.com/yungbote/lessonquiz-backend/internal/data/repos/user"
	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
	"github.com/yungbote/lessonquiz-backend/internal/platform/dbctx"
)

const testSecret = "test-secret"

type stubGenerator struct {
	out   string
	err   error
	calls int
	last  string
}

func (g *stubGenerator) Generate(ctx context.Context, lessonText string) (string, error) {
	g.calls++
	g.last = lessonText
	return g.out, g.err
}

type fixture struct {
	db  *gorm.DB
	tx  *gorm.DB
	dbc dbctx.Context
	gen *stubGenerator

	auth    AuthService
	users   UserService
	courses CourseService
	lessons LessonService
	quizzes QuizService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userRepo := userrepo.NewUserRepo(db, log)
	courseRepo := learning.NewCourseRepo(db, log)
	lessonRepo := learning.NewLessonRepo(db, log)
	quizRepo := learning.NewQuizRepo(db, log)
	gen := &stubGenerator{out: testutil.ValidQuizJSON}

	return &fixture{
		db:      db,
		tx:      tx,
		dbc:     dbctx.Context{Ctx: context.Background(), Tx: tx},
		gen:     gen,
		auth:    NewAuthService(db, log, userRepo, testSecret, 0, WithBcryptCost(bcrypt.MinCost)),
		users:   NewUserService(db, log, userRepo),
		courses: NewCourseService(db, log, courseRepo, lessonRepo, quizRepo),
		lessons: NewLessonService(db, log, courseRepo, lessonRepo, quizRepo, gen, DefaultQuestionCount),
		quizzes: NewQuizService(db, log, lessonRepo, quizRepo, gen, DefaultQuestionCount),
	}
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := f.tx.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %d %s, got nil", status, code)
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	if apiErr.Status != status || apiErr.Code != code {
		t.Fatalf("expected %d %s, got %d %s (%v)", status, code, apiErr.Status, apiErr.Code, err)
	}
}

