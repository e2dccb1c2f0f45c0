package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/http/response"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"github.com/yungbote/lessonquiz-backend/internal/services"
)

type QuizHandler struct {
	log         *logger.Logger
	quizService services.QuizService
}

func NewQuizHandler(log *logger.Logger, quizService services.QuizService) *QuizHandler {
	return &QuizHandler{log: log.With("handler", "QuizHandler"), quizService: quizService}
}

func (h *QuizHandler) respondQuiz(c *gin.Context, status int, quiz *types.Quiz) {
	qr, err := services.NewQuizResponse(quiz)
	if err != nil {
		h.log.Error("Stored quiz does not decode", "quiz_id", quiz.ID, "error", err)
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(status, qr)
}

// POST /quiz/generate?lesson_id=
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	lessonID, ok := parseID(c, "lesson_id", true)
	if !ok {
		return
	}
	quiz, err := h.quizService.GenerateForLesson(requestDB(c), lessonID)
	if err != nil {
		if apiStatus(err) >= http.StatusInternalServerError {
			h.log.Error("Quiz generation failed", "lesson_id", lessonID, "error", err)
		}
		response.RespondAPIError(c, err)
		return
	}
	h.respondQuiz(c, http.StatusCreated, quiz)
}

// GET /quiz/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	quiz, err := h.quizService.Get(requestDB(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	h.respondQuiz(c, http.StatusOK, quiz)
}

// GET /lessons/:id/quiz
func (h *QuizHandler) GetLessonQuiz(c *gin.Context) {
	lessonID, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	quiz, err := h.quizService.GetForLesson(requestDB(c), lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	h.respondQuiz(c, http.StatusOK, quiz)
}

// DELETE /quiz/:id
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	if err := h.quizService.Delete(requestDB(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondMessage(c, "Quiz deleted successfully")
}
