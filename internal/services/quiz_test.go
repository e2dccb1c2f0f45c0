package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/yungbote/lessonquiz-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

func TestGenerateForLesson(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "C")
	l := testutil.SeedLesson(t, f.dbc.Ctx, f.tx, c.ID, "L")

	quiz, err := f.quizzes.GenerateForLesson(f.dbc, l.ID)
	if err != nil {
		t.Fatalf("GenerateForLesson: %v", err)
	}
	if quiz.LessonID != l.ID || f.gen.last != l.Content {
		t.Fatalf("unexpected quiz %+v (generator saw %q)", quiz, f.gen.last)
	}

	active, err := f.quizzes.GetForLesson(f.dbc, l.ID)
	if err != nil || active.ID != quiz.ID {
		t.Fatalf("GetForLesson: %v %+v", err, active)
	}

	_, err = f.quizzes.GenerateForLesson(f.dbc, l.ID+50)
	requireAPIError(t, err, http.StatusNotFound, "lesson_not_found")
}

func TestGenerateForLessonRejectsMalformed(t *testing.T) {
	f := newFixture(t)
	f.gen.out = `[{"question":"q","options":["a","b"],"answer":"a"}]`
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "C")
	l := testutil.SeedLesson(t, f.dbc.Ctx, f.tx, c.ID, "L")

	_, err := f.quizzes.GenerateForLesson(f.dbc, l.ID)
	requireAPIError(t, err, http.StatusInternalServerError, "quiz_generation_failed")
	if n := f.count(t, &types.Quiz{}); n != 0 {
		t.Fatalf("expected no quiz rows, got %d", n)
	}
}

func TestQuizGetDelete(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "C")
	l := testutil.SeedLesson(t, f.dbc.Ctx, f.tx, c.ID, "L")
	q := testutil.SeedQuiz(t, f.dbc.Ctx, f.tx, l.ID)

	_, err := f.quizzes.Get(f.dbc, q.ID+1)
	requireAPIError(t, err, http.StatusNotFound, "quiz_not_found")

	got, err := f.quizzes.Get(f.dbc, q.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp, err := NewQuizResponse(got)
	if err != nil || len(resp.Questions) != 3 {
		t.Fatalf("NewQuizResponse: %v %+v", err, resp)
	}

	if err := f.quizzes.Delete(f.dbc, q.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = f.quizzes.GetForLesson(f.dbc, l.ID)
	requireAPIError(t, err, http.StatusNotFound, "quiz_not_found")
	err = f.quizzes.Delete(f.dbc, q.ID)
	requireAPIError(t, err, http.StatusNotFound, "quiz_not_found")
}

type recordingModel struct {
	prompt string
	out    string
	err    error
}

func (m *recordingModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.out, m.err
}

func TestPromptQuizGenerator(t *testing.T) {
	m := &recordingModel{out: "[]"}
	gen := NewQuizGenerator(logger.Nop(), m, 0)

	out, err := gen.Generate(context.Background(), "Python is readable.")
	if err != nil || out != "[]" {
		t.Fatalf("Generate: %q %v", out, err)
	}
	for _, want := range []string{"3 multiple-choice questions", "Python is readable.", `"A) <option>"`, "JSON array"} {
		if !strings.Contains(m.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, m.prompt)
		}
	}

	m.err = errors.New("boom")
	if _, err := gen.Generate(context.Background(), "x"); err == nil {
		t.Fatalf("expected model error to propagate")
	}
}
