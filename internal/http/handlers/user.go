package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/brainsync-backend/internal/http/response"
	"github.com/yungbote/brainsync-backend/internal/services"
)

type UserHandler struct {
	authService services.AuthService
}

func NewUserHandler(authService services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// POST /api/v1/users/register
func (uh *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	user, err := uh.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, response.Data("User registered successfully!", user))
}

// POST /api/v1/users/login
func (uh *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	accessToken, err := uh.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.Data("User logged in successfully!", gin.H{
		"accessToken": accessToken,
		"expiresIn":   int(uh.authService.AccessTTL().Seconds()),
	}))
}
