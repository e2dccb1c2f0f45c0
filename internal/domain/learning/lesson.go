package learning

import (
	"time"
)

type Lesson struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CourseID uint `gorm:"index;not null;column:course_id" json:"course_id"`

	Title   string `gorm:"not null;column:title" json:"title"`
	Content string `gorm:"type:text;not null;column:content" json:"content"`

	Quizzes []*Quiz `gorm:"foreignKey:LessonID;references:ID;constraint:OnDelete:CASCADE" json:"quizzes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }

// ActiveQuiz is the most recently created quiz, or nil.
func (l *Lesson) ActiveQuiz() *Quiz {
	if l == nil {
		return nil
	}
	var active *Quiz
	for _, q := range l.Quizzes {
		if q == nil {
			continue
		}
		if active == nil || q.ID > active.ID {
			active = q
		}
	}
	return active
}
