package domain

import (
	"gorm.io/datatypes"

	"github.com/yungbote/lessonquiz-backend/internal/domain/learning"
	"github.com/yungbote/lessonquiz-backend/internal/domain/user"
)

type (
	User = user.User

	Course   = learning.Course
	Lesson   = learning.Lesson
	Quiz     = learning.Quiz
	Question = learning.Question
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&Course{},
		&Lesson{},
		&Quiz{},
	}
}

func ParseQuestions(raw string, n int) ([]Question, error) {
	return learning.ParseQuestions(raw, n)
}

func EncodeQuestions(questions []Question) (datatypes.JSON, error) {
	return learning.EncodeQuestions(questions)
}
