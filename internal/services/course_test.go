package services

import (
	"net/http"
	"testing"

	"github.com/yungbote/lessonquiz-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lessonquiz-backend/internal/domain"
)

func TestCourseCreateGet(t *testing.T) {
	f := newFixture(t)

	c, err := f.courses.Create(f.dbc, "Go 101", "intro")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := f.courses.Get(f.dbc, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Go 101" || got.Description != "intro" {
		t.Fatalf("unexpected course: %+v", got)
	}
	if ids := got.LessonIDs(); len(ids) != 0 {
		t.Fatalf("expected no lessons, got %v", ids)
	}

	_, err = f.courses.Create(f.dbc, "Go 101", "again")
	requireAPIError(t, err, http.StatusConflict, "course_exists")
}

func TestCourseCreateRequiresTitle(t *testing.T) {
	f := newFixture(t)
	_, err := f.courses.Create(f.dbc, "  ", "x")
	requireAPIError(t, err, http.StatusBadRequest, "invalid_request")
}

func TestCourseListIncludesLessonIDs(t *testing.T) {
	f := newFixture(t)
	a := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "A")
	testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "B")
	l1 := testutil.SeedLesson(t, f.dbc.Ctx, f.tx, a.ID, "l1")
	l2 := testutil.SeedLesson(t, f.dbc.Ctx, f.tx, a.ID, "l2")

	courses, err := f.courses.List(f.dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	resp := NewCourseResponses(courses)
	if resp[0].ID != a.ID || len(resp[0].Lessons) != 2 || resp[0].Lessons[0] != l1.ID || resp[0].Lessons[1] != l2.ID {
		t.Fatalf("unexpected first course: %+v", resp[0])
	}
	if resp[1].Lessons == nil || len(resp[1].Lessons) != 0 {
		t.Fatalf("expected empty lesson list, got %v", resp[1].Lessons)
	}
}

func TestCourseUpdate(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "Old")
	testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "Taken")

	got, err := f.courses.Update(f.dbc, c.ID, "New", "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "New" || got.Description != "" {
		t.Fatalf("unexpected course after update: %+v", got)
	}

	_, err = f.courses.Update(f.dbc, c.ID+100, "x", "y")
	requireAPIError(t, err, http.StatusNotFound, "course_not_found")
}

func TestCourseUpdateDuplicateTitle(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "One")
	testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "Two")

	_, err := f.courses.Update(f.dbc, c.ID, "Two", "")
	requireAPIError(t, err, http.StatusConflict, "course_exists")
}

func TestCourseDeleteCascades(t *testing.T) {
	f := newFixture(t)
	c := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "Doomed")
	keep := testutil.SeedCourse(t, f.dbc.Ctx, f.tx, "Kept")
	l := testutil.SeedLesson(t, f.dbc.Ctx, f.tx, c.ID, "l")
	testutil.SeedQuiz(t, f.dbc.Ctx, f.tx, l.ID)
	kl := testutil.SeedLesson(t, f.dbc.Ctx, f.tx, keep.ID, "kl")
	testutil.SeedQuiz(t, f.dbc.Ctx, f.tx, kl.ID)

	if err := f.courses.Delete(f.dbc, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := f.courses.Get(f.dbc, c.ID)
	requireAPIError(t, err, http.StatusNotFound, "course_not_found")

	if n := f.count(t, &types.Lesson{}); n != 1 {
		t.Fatalf("expected 1 lesson left, got %d", n)
	}
	if n := f.count(t, &types.Quiz{}); n != 1 {
		t.Fatalf("expected 1 quiz left, got %d", n)
	}

	err = f.courses.Delete(f.dbc, c.ID)
	requireAPIError(t, err, http.StatusNotFound, "course_not_found")
}
