package learning

import (
	"context"

	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) ([]*types.Lesson, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) ([]*types.Lesson, error)
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) ([]*types.Lesson, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, lessonID uint, title, content string) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) error
	FullDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) error
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	repoLog := baseLog.With("repo", "LessonRepo")
	return &lessonRepo{db: db, log: repoLog}
}

func quizIDsOnly(db *gorm.DB) *gorm.DB {
	return db.Select("id", "lesson_id").Order("id")
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(lessons) == 0 {
		return []*types.Lesson{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepo) GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Lesson
	if len(lessonIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Quizzes", quizIDsOnly).
		Where("id IN ?", lessonIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*types.Lesson{}
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Quizzes", quizIDsOnly).
		Where("course_id IN ?", courseIDs).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonRepo) UpdateFields(ctx context.Context, tx *gorm.DB, lessonID uint, title, content string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("id = ?", lessonID).
		Updates(map[string]any{
			"title":   title,
			"content": content,
		}).Error
}

func (r *lessonRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(lessonIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", lessonIDs).
		Delete(&types.Lesson{}).Error
}

func (r *lessonRepo) FullDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(courseIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Delete(&types.Lesson{}).Error
}
