package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lessonquiz-backend/internal/http/response"
	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
	"github.com/yungbote/lessonquiz-backend/internal/platform/dbctx"
)

// parseID reads a positive integer id from the named path parameter, or the
// query string when fromQuery is set. On failure it writes a 400 and returns
// false.
func parseID(c *gin.Context, name string, fromQuery bool) (uint, bool) {
	raw := c.Param(name)
	if fromQuery {
		raw = c.Query(name)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

func apiStatus(err error) int {
	return apierr.StatusOf(err)
}

func requestDB(c *gin.Context) dbctx.Context {
	return dbctx.New(c.Request.Context())
}
