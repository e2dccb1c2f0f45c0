package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
)

var errInternal = errors.New("internal server error")

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func Envelope(code string, err error) ErrorEnvelope {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ErrorEnvelope{Error: APIError{Message: msg, Code: code}}
}

func RespondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, Envelope(code, err))
}

// AbortWithError writes the envelope and stops the handler chain.
func AbortWithError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, Envelope(code, err))
}

// RespondAPIError writes err classified through apierr. Unclassified failures
// are reported as a bare 500 without their underlying message.
func RespondAPIError(c *gin.Context, err error) {
	e := apierr.From(err)
	_ = c.Error(err)
	if e.Code == "internal_error" {
		RespondError(c, http.StatusInternalServerError, e.Code, errInternal)
		return
	}
	RespondError(c, e.Status, e.Code, e)
}

func AbortWithAPIError(c *gin.Context, err error) {
	RespondAPIError(c, err)
	c.Abort()
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}
