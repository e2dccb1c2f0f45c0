package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lessonquiz-backend/internal/http/response"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"github.com/yungbote/lessonquiz-backend/internal/services"
)

type LessonHandler struct {
	log           *logger.Logger
	lessonService services.LessonService
}

func NewLessonHandler(log *logger.Logger, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{log: log.With("handler", "LessonHandler"), lessonService: lessonService}
}

type lessonRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// GET /courses/:id/lessons
func (h *LessonHandler) ListCourseLessons(c *gin.Context) {
	courseID, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	lessons, err := h.lessonService.ListByCourse(requestDB(c), courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, services.NewLessonResponses(lessons))
}

// POST /courses/:id/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	courseID, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lesson, err := h.lessonService.Create(requestDB(c), courseID, req.Title, req.Content)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, services.NewLessonResponse(lesson))
}

// POST /courses/:id/lessonsquiz
func (h *LessonHandler) CreateLessonWithQuiz(c *gin.Context) {
	courseID, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lesson, quiz, err := h.lessonService.CreateWithQuiz(requestDB(c), courseID, req.Title, req.Content)
	if err != nil {
		if apiStatus(err) >= http.StatusInternalServerError {
			h.log.Error("Lesson with quiz failed", "course_id", courseID, "error", err)
		}
		response.RespondAPIError(c, err)
		return
	}
	qr, err := services.NewQuizResponse(quiz)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, services.LessonWithQuizResponse{
		Lesson: services.NewLessonResponse(lesson),
		Quiz:   qr,
	})
}

// GET /lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	lesson, err := h.lessonService.Get(requestDB(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, services.NewLessonResponse(lesson))
}

// PUT /lessons/:id
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lesson, err := h.lessonService.Update(requestDB(c), id, req.Title, req.Content)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, services.NewLessonResponse(lesson))
}

// DELETE /lessons/:id
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	if err := h.lessonService.Delete(requestDB(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondMessage(c, "Lesson deleted successfully")
}
