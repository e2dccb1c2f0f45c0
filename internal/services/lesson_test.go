package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/yungbote/lessonquiz-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lessonquiz-backend/internal/domain"
)

func TestLessonCreateUnderMissingCourse(t *testing.T) {
	f := newFixture(t)

	_, err := f.lessons.Create(f.dbc, 999, "t", "c")
	requireAPIError(t, err, http.StatusNotFound, "course_not_found")
	if n := f.count(t, &types.Lesson{}); n != 0 {
		t.Fatalf("expected no lessons, got %d", n)
	}
}

func TestLessonCRUD(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "C")

	l, err := f.lessons.Create(f.dbc, c.ID, "Intro", "body")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	resp := NewLessonResponse(l)
	if resp.CourseID != c.ID || resp.QuizID != nil {
		t.Fatalf("unexpected lesson response: %+v", resp)
	}

	list, err := f.lessons.ListByCourse(f.dbc, c.ID)
	if err != nil || len(list) != 1 || list[0].ID != l.ID {
		t.Fatalf("ListByCourse: %v %+v", err, list)
	}
	empty, err := f.lessons.ListByCourse(f.dbc, c.ID+1)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list for other course, got %v %+v", err, empty)
	}

	updated, err := f.lessons.Update(f.dbc, l.ID, "Intro 2", "body 2")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Intro 2" || updated.Content != "body 2" {
		t.Fatalf("unexpected lesson after update: %+v", updated)
	}

	_, err = f.lessons.Update(f.dbc, l.ID, "", "x")
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")

	testutil.SeedQuiz(t, f.dbc.Ctx, f.tx, l.ID)
	if err := f.lessons.Delete(f.dbc, l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = f.lessons.Get(f.dbc, l.ID)
	requireAPIError(t, err, http.StatusNotFound, "lesson_not_found")
	if n := f.count(t, &types.Quiz{}); n != 0 {
		t.Fatalf("expected quizzes removed with lesson, got %d", n)
	}
}

func TestLessonResponseUsesLatestQuiz(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "C")
	l := testutil.SeedLesson(t, f.dbc.Ctx, f.tx, c.ID, "L")
	testutil.SeedQuiz(t, f.dbc.Ctx, f.tx, l.ID)
	latest := testutil.SeedQuiz(t, f.dbc.Ctx, f.tx, l.ID)

	got, err := f.lessons.Get(f.dbc, l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp := NewLessonResponse(got)
	if resp.QuizID == nil || *resp.QuizID != latest.ID {
		t.Fatalf("expected quiz_id %d, got %v", latest.ID, resp.QuizID)
	}
}

func TestCreateWithQuiz(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "C")

	lesson, quiz, err := f.lessons.CreateWithQuiz(f.dbc, c.ID, "Py", "X")
	if err != nil {
		t.Fatalf("CreateWithQuiz: %v", err)
	}
	if f.gen.last != "X" {
		t.Fatalf("generator got %q, want lesson content", f.gen.last)
	}
	if lesson.ID == 0 || quiz.ID == 0 || quiz.LessonID != lesson.ID {
		t.Fatalf("lesson and quiz not linked: lesson=%+v quiz=%+v", lesson, quiz)
	}
	stored, err := f.quizzes.Get(f.dbc, quiz.ID)
	if err != nil {
		t.Fatalf("Get quiz: %v", err)
	}
	qr, err := NewQuizResponse(stored)
	if err != nil {
		t.Fatalf("NewQuizResponse: %v", err)
	}
	if len(qr.Questions) != DefaultQuestionCount || qr.Questions[1].Answer != "B) two" {
		t.Fatalf("unexpected stored questions: %+v", qr.Questions)
	}
	lr := NewLessonResponse(lesson)
	if lr.QuizID == nil || *lr.QuizID != quiz.ID {
		t.Fatalf("expected lesson response quiz_id %d, got %v", quiz.ID, lr.QuizID)
	}
}

func TestCreateWithQuizFailurePersistsNothing(t *testing.T) {
	cases := map[string]*stubGenerator{
		"generator error": {err: errors.New("upstream down")},
		"not json":        {out: "Sure! Here is your quiz."},
		"wrong count":     {out: `[{"question":"q","options":["a","b","c","d"],"answer":"a"}]`},
	}
	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			*f.gen = *gen
			c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "C")

			_, _, err := f.lessons.CreateWithQuiz(f.dbc, c.ID, "t", "content")
			requireAPIError(t, err, http.StatusInternalServerError, "quiz_generation_failed")
			if n := f.count(t, &types.Lesson{}); n != 0 {
				t.Fatalf("expected no lesson rows, got %d", n)
			}
			if n := f.count(t, &types.Quiz{}); n != 0 {
				t.Fatalf("expected no quiz rows, got %d", n)
			}
		})
	}
}

func TestCreateWithQuizMissingCourse(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.lessons.CreateWithQuiz(f.dbc, 42, "t", "c")
	requireAPIError(t, err, http.StatusNotFound, "course_not_found")
	if f.gen.calls != 0 {
		t.Fatalf("generator should not run for a missing course")
	}
}
