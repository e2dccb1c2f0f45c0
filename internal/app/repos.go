package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lessonquiz-backend/internal/data/repos/learning"
	"github.com/yungbote/lessonquiz-backend/internal/data/repos/user"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

type Repos struct {
	User   user.UserRepo
	Course learning.CourseRepo
	Lesson learning.LessonRepo
	Quiz   learning.QuizRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:   user.NewUserRepo(db, log),
		Course: learning.NewCourseRepo(db, log),
		Lesson: learning.NewLessonRepo(db, log),
		Quiz:   learning.NewQuizRepo(db, log),
	}
}
