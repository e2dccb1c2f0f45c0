package testutil

import (
	"context"
	"testing"

	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the plain password of every seeded user.
const SeedPassword = "pw-secret"

// ValidQuizJSON is a well-formed three question payload.
const ValidQuizJSON = `[
  {"question": "Q1?", "options": ["A) one", "B) two", "C) three", "D) four"], "answer": "A) one"},
  {"question": "Q2?", "options": ["A) one", "B) two", "C) three", "D) four"], "answer": "B) two"},
  {"question": "Q3?", "options": ["A) one", "B) two", "C) three", "D) four"], "answer": "C) three"}
]`

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &types.User{
		Username:       username,
		HashedPassword: string(hash),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		Title:       title,
		Description: "about " + title,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uint, title string) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		CourseID: courseID,
		Title:    title,
		Content:  "content of " + title,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedQuiz(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonID uint) *types.Quiz {
	tb.Helper()
	q := &types.Quiz{
		LessonID:  lessonID,
		Questions: []byte(ValidQuizJSON),
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return q
}
