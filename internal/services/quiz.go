package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/lessonquiz-backend/internal/data/repos/learning"
	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
	"github.com/yungbote/lessonquiz-backend/internal/platform/dbctx"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

type QuizService interface {
	GenerateForLesson(dbc dbctx.Context, lessonID uint) (*types.Quiz, error)
	Get(dbc dbctx.Context, quizID uint) (*types.Quiz, error)
	// GetForLesson returns the lesson's active quiz.
	GetForLesson(dbc dbctx.Context, lessonID uint) (*types.Quiz, error)
	Delete(dbc dbctx.Context, quizID uint) error
}

type quizService struct {
	db            *gorm.DB
	log           *logger.Logger
	lessonRepo    learning.LessonRepo
	quizRepo      learning.QuizRepo
	generator     QuizGenerator
	questionCount int
}

func NewQuizService(
	db *gorm.DB,
	baseLog *logger.Logger,
	lessonRepo learning.LessonRepo,
	quizRepo learning.QuizRepo,
	generator QuizGenerator,
	questionCount int,
) QuizService {
	serviceLog := baseLog.With("service", "QuizService")
	return &quizService{
		db:            db,
		log:           serviceLog,
		lessonRepo:    lessonRepo,
		quizRepo:      quizRepo,
		generator:     generator,
		questionCount: questionCount,
	}
}

func errQuizNotFound() error {
	return apierr.NotFound("quiz_not_found", "Quiz not found")
}

func (qs *quizService) GenerateForLesson(dbc dbctx.Context, lessonID uint) (*types.Quiz, error) {
	lessons, err := qs.lessonRepo.GetByIDs(dbc.Ctx, dbc.Tx, []uint{lessonID})
	if err != nil {
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	if len(lessons) == 0 {
		return nil, errLessonNotFound()
	}

	questions, err := generateQuestions(dbc.Ctx, qs.log, qs.generator, qs.questionCount, lessons[0].Content)
	if err != nil {
		return nil, err
	}
	payload, err := types.EncodeQuestions(questions)
	if err != nil {
		return nil, apierr.Internal("quiz_generation_failed", err)
	}
	quiz := &types.Quiz{LessonID: lessonID, Questions: payload}
	if _, err := qs.quizRepo.Create(dbc.Ctx, dbc.Tx, []*types.Quiz{quiz}); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	qs.log.Info("Quiz generated", "quiz_id", quiz.ID, "lesson_id", lessonID)
	return quiz, nil
}

func (qs *quizService) Get(dbc dbctx.Context, quizID uint) (*types.Quiz, error) {
	quizzes, err := qs.quizRepo.GetByIDs(dbc.Ctx, dbc.Tx, []uint{quizID})
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if len(quizzes) == 0 {
		return nil, errQuizNotFound()
	}
	return quizzes[0], nil
}

func (qs *quizService) GetForLesson(dbc dbctx.Context, lessonID uint) (*types.Quiz, error) {
	quiz, err := qs.quizRepo.GetLatestByLessonID(dbc.Ctx, dbc.Tx, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errQuizNotFound()
		}
		return nil, fmt.Errorf("load lesson quiz: %w", err)
	}
	return quiz, nil
}

func (qs *quizService) Delete(dbc dbctx.Context, quizID uint) error {
	if _, err := qs.Get(dbc, quizID); err != nil {
		return err
	}
	if err := qs.quizRepo.FullDeleteByIDs(dbc.Ctx, dbc.Tx, []uint{quizID}); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	qs.log.Info("Quiz deleted", "quiz_id", quizID)
	return nil
}
