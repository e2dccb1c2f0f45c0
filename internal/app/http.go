package app

import (
	"github.com/yungbote/lessonquiz-backend/internal/data/db"
	"github.com/yungbote/lessonquiz-backend/internal/http"
	httpH "github.com/yungbote/lessonquiz-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lessonquiz-backend/internal/http/middleware"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	User   *httpH.UserHandler
	Course *httpH.CourseHandler
	Lesson *httpH.LessonHandler
	Quiz   *httpH.QuizHandler
}

func wireHandlers(log *logger.Logger, services Services, database *db.Service) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(database),
		Auth:   httpH.NewAuthHandler(log, services.Auth),
		User:   httpH.NewUserHandler(services.User),
		Course: httpH.NewCourseHandler(log, services.Course),
		Lesson: httpH.NewLessonHandler(log, services.Lesson),
		Quiz:   httpH.NewQuizHandler(log, services.Quiz),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Telemetry.Enabled {
		serviceName = cfg.Telemetry.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSAllowOrigins,
		HealthHandler:  handlers.Health,
		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
		CourseHandler:  handlers.Course,
		LessonHandler:  handlers.Lesson,
		QuizHandler:    handlers.Quiz,
	})
}
