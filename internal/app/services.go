package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"github.com/yungbote/lessonquiz-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	User          services.UserService
	Course        services.CourseService
	Lesson        services.LessonService
	Quiz          services.QuizService
	QuizGenerator services.QuizGenerator
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	var generator services.QuizGenerator
	if clients.QuizModel != nil {
		generator = services.NewQuizGenerator(log, clients.QuizModel, cfg.Quiz.QuestionCount)
	}

	return Services{
		Auth:          services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL()),
		User:          services.NewUserService(db, log, repos.User),
		Course:        services.NewCourseService(db, log, repos.Course, repos.Lesson, repos.Quiz),
		Lesson:        services.NewLessonService(db, log, repos.Course, repos.Lesson, repos.Quiz, generator, cfg.Quiz.QuestionCount),
		Quiz:          services.NewQuizService(db, log, repos.Lesson, repos.Quiz, generator, cfg.Quiz.QuestionCount),
		QuizGenerator: generator,
	}
}
