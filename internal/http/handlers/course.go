package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lessonquiz-backend/internal/http/response"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"github.com/yungbote/lessonquiz-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{log: log.With("handler", "CourseHandler"), courseService: courseService}
}

type courseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

func (r courseRequest) description() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// GET /courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(requestDB(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, services.NewCourseResponses(courses))
}

// POST /courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	course, err := h.courseService.Create(requestDB(c), req.Title, req.description())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, services.NewCourseResponse(course))
}

// GET /courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	course, err := h.courseService.Get(requestDB(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, services.NewCourseResponse(course))
}

// PUT /courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	course, err := h.courseService.Update(requestDB(c), id, req.Title, req.description())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, services.NewCourseResponse(course))
}

// DELETE /courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c, "id", false)
	if !ok {
		return
	}
	if err := h.courseService.Delete(requestDB(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondMessage(c, "Course deleted successfully")
}
