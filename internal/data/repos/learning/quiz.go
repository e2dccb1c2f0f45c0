package learning

import (
	"context"

	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, quizIDs []uint) ([]*types.Quiz, error)
	// GetLatestByLessonID returns gorm.ErrRecordNotFound when the lesson has no quiz.
	GetLatestByLessonID(ctx context.Context, tx *gorm.DB, lessonID uint) (*types.Quiz, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, quizIDs []uint) error
	FullDeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) error
	FullDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	repoLog := baseLog.With("repo", "QuizRepo")
	return &quizRepo{db: db, log: repoLog}
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(quizzes) == 0 {
		return []*types.Quiz{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) GetByIDs(ctx context.Context, tx *gorm.DB, quizIDs []uint) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Quiz
	if len(quizIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", quizIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizRepo) GetLatestByLessonID(ctx context.Context, tx *gorm.DB, lessonID uint) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var quiz types.Quiz
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("id DESC").
		First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, quizIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(quizIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", quizIDs).
		Delete(&types.Quiz{}).Error
}

func (r *quizRepo) FullDeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(lessonIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("lesson_id IN ?", lessonIDs).
		Delete(&types.Quiz{}).Error
}

func (r *quizRepo) FullDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(courseIDs) == 0 {
		return nil
	}
	sub := transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Select("id").
		Where("course_id IN ?", courseIDs)
	return transaction.WithContext(ctx).
		Where("lesson_id IN (?)", sub).
		Delete(&types.Quiz{}).Error
}
