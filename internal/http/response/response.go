package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/brainsync-backend/internal/platform/apierr"
)

// ErrorBody is the shape of every failed response.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorBody{Success: false, Message: msg, Code: code})
}

// RespondAppError maps err through apierr so internal details never reach the client.
func RespondAppError(c *gin.Context, err error) {
	ae := apierr.From(err)
	if ae == nil {
		ae = apierr.New(http.StatusInternalServerError, "internal", nil)
	}
	if ae.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(ae.Status, ErrorBody{Success: false, Message: ae.Message, Code: ae.Code})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// Data wraps payload in the {success, message, data} envelope.
func Data(message string, data any) gin.H {
	return gin.H{"success": true, "message": message, "data": data}
}
