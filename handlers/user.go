package handlers

import (
	"net/http"

	"asst/middleware"
	"asst/services/user"
	"asst/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves registration, sign in and the profile pages.
type UserHandler struct {
	UserSvc user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserSvc: us}
}

// Register handles POST /auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Warn("Invalid registration request", zap.Error(err))
		badBody(c, err)
		return
	}
	resp, err := h.UserSvc.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	resp, err := h.UserSvc.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	view, err := h.UserSvc.GetProfile(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateProfile handles PUT /profile as JSON or multipart with an "avatar" file.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req user.ProfileUpdate
	if err := c.ShouldBind(&req); err != nil {
		badBody(c, err)
		return
	}
	avatar, _, err := optionalFile(c, "avatar")
	if err != nil {
		badBody(c, err)
		return
	}
	if avatar != nil {
		defer avatar.Close()
		req.Avatar = avatar
	}

	updated, err := h.UserSvc.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Your profile was updated successfully!",
		"user":    updated,
	})
}
