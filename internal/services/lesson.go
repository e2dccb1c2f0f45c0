package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/lessonquiz-backend/internal/data/repos/learning"
	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
	"github.com/yungbote/lessonquiz-backend/internal/platform/dbctx"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

type LessonService interface {
	ListByCourse(dbc dbctx.Context, courseID uint) ([]*types.Lesson, error)
	Create(dbc dbctx.Context, courseID uint, title, content string) (*types.Lesson, error)
	// CreateWithQuiz generates the quiz first and stores nothing unless both the
	// lesson and its quiz can be written.
	CreateWithQuiz(dbc dbctx.Context, courseID uint, title, content string) (*types.Lesson, *types.Quiz, error)
	Get(dbc dbctx.Context, lessonID uint) (*types.Lesson, error)
	Update(dbc dbctx.Context, lessonID uint, title, content string) (*types.Lesson, error)
	Delete(dbc dbctx.Context, lessonID uint) error
}

type lessonService struct {
	db            *gorm.DB
	log           *logger.Logger
	courseRepo    learning.CourseRepo
	lessonRepo    learning.LessonRepo
	quizRepo      learning.QuizRepo
	generator     QuizGenerator
	questionCount int
}

func NewLessonService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo learning.CourseRepo,
	lessonRepo learning.LessonRepo,
	quizRepo learning.QuizRepo,
	generator QuizGenerator,
	questionCount int,
) LessonService {
	serviceLog := baseLog.With("service", "LessonService")
	return &lessonService{
		db:            db,
		log:           serviceLog,
		courseRepo:    courseRepo,
		lessonRepo:    lessonRepo,
		quizRepo:      quizRepo,
		generator:     generator,
		questionCount: questionCount,
	}
}

func errLessonNotFound() error {
	return apierr.NotFound("lesson_not_found", "Lesson not found")
}

func validateLessonFields(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return apierr.BadRequest("invalid_request", "title and content are required")
	}
	return nil
}

func (ls *lessonService) requireCourse(dbc dbctx.Context, courseID uint) error {
	courses, err := ls.courseRepo.GetByIDs(dbc.Ctx, dbc.Tx, []uint{courseID})
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return errCourseNotFound()
	}
	return nil
}

func (ls *lessonService) ListByCourse(dbc dbctx.Context, courseID uint) ([]*types.Lesson, error) {
	lessons, err := ls.lessonRepo.GetByCourseIDs(dbc.Ctx, dbc.Tx, []uint{courseID})
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

func (ls *lessonService) Create(dbc dbctx.Context, courseID uint, title, content string) (*types.Lesson, error) {
	if err := validateLessonFields(title, content); err != nil {
		return nil, err
	}
	if err := ls.requireCourse(dbc, courseID); err != nil {
		return nil, err
	}
	lesson := &types.Lesson{CourseID: courseID, Title: strings.TrimSpace(title), Content: content}
	if _, err := ls.lessonRepo.Create(dbc.Ctx, dbc.Tx, []*types.Lesson{lesson}); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	ls.log.Info("Lesson created", "lesson_id", lesson.ID, "course_id", courseID)
	return lesson, nil
}

func (ls *lessonService) CreateWithQuiz(dbc dbctx.Context, courseID uint, title, content string) (*types.Lesson, *types.Quiz, error) {
	if err := validateLessonFields(title, content); err != nil {
		return nil, nil, err
	}
	if err := ls.requireCourse(dbc, courseID); err != nil {
		return nil, nil, err
	}

	questions, err := generateQuestions(dbc.Ctx, ls.log, ls.generator, ls.questionCount, content)
	if err != nil {
		return nil, nil, err
	}
	payload, err := types.EncodeQuestions(questions)
	if err != nil {
		return nil, nil, apierr.Internal("quiz_generation_failed", err)
	}

	lesson := &types.Lesson{CourseID: courseID, Title: strings.TrimSpace(title), Content: content}
	quiz := &types.Quiz{Questions: payload}
	err = dbc.Transaction(ls.db, func(inner dbctx.Context) error {
		if _, err := ls.lessonRepo.Create(inner.Ctx, inner.Tx, []*types.Lesson{lesson}); err != nil {
			return fmt.Errorf("create lesson: %w", err)
		}
		quiz.LessonID = lesson.ID
		if _, err := ls.quizRepo.Create(inner.Ctx, inner.Tx, []*types.Quiz{quiz}); err != nil {
			return fmt.Errorf("create quiz: %w", err)
		}
		return nil
	})
	if err != nil {
		ls.log.Error("Lesson with quiz create failed", "course_id", courseID, "error", err)
		return nil, nil, err
	}
	lesson.Quizzes = []*types.Quiz{quiz}
	ls.log.Info("Lesson created with quiz", "lesson_id", lesson.ID, "quiz_id", quiz.ID, "course_id", courseID)
	return lesson, quiz, nil
}

func (ls *lessonService) Get(dbc dbctx.Context, lessonID uint) (*types.Lesson, error) {
	lessons, err := ls.lessonRepo.GetByIDs(dbc.Ctx, dbc.Tx, []uint{lessonID})
	if err != nil {
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	if len(lessons) == 0 {
		return nil, errLessonNotFound()
	}
	return lessons[0], nil
}

func (ls *lessonService) Update(dbc dbctx.Context, lessonID uint, title, content string) (*types.Lesson, error) {
	if err := validateLessonFields(title, content); err != nil {
		return nil, err
	}
	if _, err := ls.Get(dbc, lessonID); err != nil {
		return nil, err
	}
	if err := ls.lessonRepo.UpdateFields(dbc.Ctx, dbc.Tx, lessonID, strings.TrimSpace(title), content); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	return ls.Get(dbc, lessonID)
}

func (ls *lessonService) Delete(dbc dbctx.Context, lessonID uint) error {
	if _, err := ls.Get(dbc, lessonID); err != nil {
		return err
	}
	err := dbc.Transaction(ls.db, func(inner dbctx.Context) error {
		ids := []uint{lessonID}
		if err := ls.quizRepo.FullDeleteByLessonIDs(inner.Ctx, inner.Tx, ids); err != nil {
			return fmt.Errorf("delete lesson quizzes: %w", err)
		}
		if err := ls.lessonRepo.FullDeleteByIDs(inner.Ctx, inner.Tx, ids); err != nil {
			return fmt.Errorf("delete lesson: %w", err)
		}
		return nil
	})
	if err != nil {
		ls.log.Error("Lesson delete failed", "lesson_id", lessonID, "error", err)
		return err
	}
	ls.log.Info("Lesson deleted", "lesson_id", lessonID)
	return nil
}
