package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lessonquiz-backend/internal/http/response"
	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
	"github.com/yungbote/lessonquiz-backend/internal/platform/ctxutil"
	"github.com/yungbote/lessonquiz-backend/internal/platform/dbctx"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"github.com/yungbote/lessonquiz-backend/internal/services"
)

const ContextUserKey = "user"

var errNotAuthenticated = errors.New("Not authenticated")

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireActiveUser resolves the bearer token to an enabled user and attaches
// it to the request context.
func (am *AuthMiddleware) RequireActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.Header("WWW-Authenticate", "Bearer")
			response.AbortWithError(c, http.StatusUnauthorized, "unauthorized", errNotAuthenticated)
			return
		}
		user, err := am.authService.ActiveUser(dbctx.New(c.Request.Context()), tokenString)
		if err != nil {
			if apierr.StatusOf(err) == http.StatusUnauthorized {
				c.Header("WWW-Authenticate", "Bearer")
			}
			am.log.Debug("Bearer token rejected", "error", err)
			response.AbortWithAPIError(c, err)
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			TokenString: tokenString,
			UserID:      user.ID,
			Username:    user.Username,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
