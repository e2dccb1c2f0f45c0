package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/lessonquiz-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lessonquiz-backend/internal/http/middleware"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	CourseHandler  *httpH.CourseHandler
	LessonHandler  *httpH.LessonHandler
	QuizHandler    *httpH.QuizHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/register", cfg.AuthHandler.Register)
		r.POST("/token", cfg.AuthHandler.Token)
	}

	protected := r.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireActiveUser())
	}

	// User (Me)
	if cfg.UserHandler != nil {
		protected.GET("/users/me/", cfg.UserHandler.GetMe)
	}

	// Course
	if cfg.CourseHandler != nil {
		r.GET("/courses", cfg.CourseHandler.ListCourses)
		r.POST("/courses", cfg.CourseHandler.CreateCourse)
		protected.GET("/courses/:id", cfg.CourseHandler.GetCourse)
		r.PUT("/courses/:id", cfg.CourseHandler.UpdateCourse)
		r.DELETE("/courses/:id", cfg.CourseHandler.DeleteCourse)
	}

	// Lesson
	if cfg.LessonHandler != nil {
		r.GET("/courses/:id/lessons", cfg.LessonHandler.ListCourseLessons)
		r.POST("/courses/:id/lessons", cfg.LessonHandler.CreateLesson)
		r.POST("/courses/:id/lessonsquiz", cfg.LessonHandler.CreateLessonWithQuiz)
		r.GET("/lessons/:id", cfg.LessonHandler.GetLesson)
		r.PUT("/lessons/:id", cfg.LessonHandler.UpdateLesson)
		r.DELETE("/lessons/:id", cfg.LessonHandler.DeleteLesson)
	}

	// Quiz
	if cfg.QuizHandler != nil {
		r.GET("/lessons/:id/quiz", cfg.QuizHandler.GetLessonQuiz)
		r.POST("/quiz/generate", cfg.QuizHandler.GenerateQuiz)
		r.GET("/quiz/:id", cfg.QuizHandler.GetQuiz)
		r.DELETE("/quiz/:id", cfg.QuizHandler.DeleteQuiz)
	}

	return r
}
