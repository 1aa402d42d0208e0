package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/brainsync-backend/internal/http/response"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/ctxutil"
)

// ownerID returns the authenticated user or responds 401 and reports false.
func ownerID(c *gin.Context) (uuid.UUID, bool) {
	id := ctxutil.OwnerID(c.Request.Context())
	if id == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", apperrors.ErrUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam parses a path parameter. A malformed ID is reported as not found.
func uuidParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		response.RespondAppError(c, apperrors.NotFound("http."+name, what))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON that also accepts an empty body, fixed-length or chunked.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}
