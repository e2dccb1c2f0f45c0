package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/lessonquiz-backend/internal/data/repos/learning"
	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
	"github.com/yungbote/lessonquiz-backend/internal/platform/dbctx"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

type CourseService interface {
	List(dbc dbctx.Context) ([]*types.Course, error)
	Create(dbc dbctx.Context, title, description string) (*types.Course, error)
	Get(dbc dbctx.Context, courseID uint) (*types.Course, error)
	Update(dbc dbctx.Context, courseID uint, title, description string) (*types.Course, error)
	// Delete removes the course with its lessons and their quizzes.
	Delete(dbc dbctx.Context, courseID uint) error
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo learning.CourseRepo
	lessonRepo learning.LessonRepo
	quizRepo   learning.QuizRepo
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo learning.CourseRepo,
	lessonRepo learning.LessonRepo,
	quizRepo learning.QuizRepo,
) CourseService {
	serviceLog := baseLog.With("service", "CourseService")
	return &courseService{
		db:         db,
		log:        serviceLog,
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		quizRepo:   quizRepo,
	}
}

func errCourseNotFound() error {
	return apierr.NotFound("course_not_found", "Course not found")
}

func errCourseExists() error {
	return apierr.Conflict("course_exists", "Course with this title already exists")
}

func (cs *courseService) List(dbc dbctx.Context) ([]*types.Course, error) {
	courses, err := cs.courseRepo.List(dbc.Ctx, dbc.Tx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (cs *courseService) Create(dbc dbctx.Context, title, description string) (*types.Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apierr.BadRequest("invalid_request", "title is required")
	}
	course := &types.Course{Title: title, Description: description}
	if _, err := cs.courseRepo.Create(dbc.Ctx, dbc.Tx, []*types.Course{course}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errCourseExists()
		}
		return nil, fmt.Errorf("create course: %w", err)
	}
	course.Lessons = []*types.Lesson{}
	cs.log.Info("Course created", "course_id", course.ID)
	return course, nil
}

func (cs *courseService) Get(dbc dbctx.Context, courseID uint) (*types.Course, error) {
	courses, err := cs.courseRepo.GetByIDs(dbc.Ctx, dbc.Tx, []uint{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, errCourseNotFound()
	}
	return courses[0], nil
}

func (cs *courseService) Update(dbc dbctx.Context, courseID uint, title, description string) (*types.Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apierr.BadRequest("invalid_request", "title is required")
	}
	if _, err := cs.Get(dbc, courseID); err != nil {
		return nil, err
	}
	if err := cs.courseRepo.UpdateFields(dbc.Ctx, dbc.Tx, courseID, title, description); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errCourseExists()
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return cs.Get(dbc, courseID)
}

func (cs *courseService) Delete(dbc dbctx.Context, courseID uint) error {
	if _, err := cs.Get(dbc, courseID); err != nil {
		return err
	}
	err := dbc.Transaction(cs.db, func(inner dbctx.Context) error {
		ids := []uint{courseID}
		if err := cs.quizRepo.FullDeleteByCourseIDs(inner.Ctx, inner.Tx, ids); err != nil {
			return fmt.Errorf("delete course quizzes: %w", err)
		}
		if err := cs.lessonRepo.FullDeleteByCourseIDs(inner.Ctx, inner.Tx, ids); err != nil {
			return fmt.Errorf("delete course lessons: %w", err)
		}
		if err := cs.courseRepo.FullDeleteByIDs(inner.Ctx, inner.Tx, ids); err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		cs.log.Error("Course delete failed", "course_id", courseID, "error", err)
		return err
	}
	cs.log.Info("Course deleted", "course_id", courseID)
	return nil
}
