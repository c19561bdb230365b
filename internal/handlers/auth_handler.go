package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"countcoins/internal/middleware"
	"countcoins/internal/services"
)

// AuthHandler handles authentication and account endpoints.
type AuthHandler struct {
	service services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler with the given service.
func NewAuthHandler(service services.AuthServicer) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupRequest is the request body for user registration.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"omitempty,max=100"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the request body for profile updates. Absent fields
// are left unchanged.
type UpdateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
}

// ForgotPasswordRequest is the request body for initiating a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the request body for completing a password reset.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// authResponse pairs a user with a fresh bearer token.
type authResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Signup godoc
// @Summary Register a new user
// @Description Creates an account and returns the user with a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	user, err := h.service.Signup(req.Email, req.Password, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, authResponse{User: user, Token: token}, "Account created successfully")
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns the user with a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, authResponse{User: user, Token: token}, "Logged in successfully")
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, _ := getUserID(c)

	user, err := h.service.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, user, "")
}

// UpdateProfile godoc
// @Summary Update the authenticated user's email or password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	userID, _ := getUserID(c)
	user, err := h.service.UpdateProfile(userID, services.ProfileUpdate{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, user, "Profile updated successfully")
}

// DeleteAccount godoc
// @Summary Delete the authenticated user's account and all owned data
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/me [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, _ := getUserID(c)

	if err := h.service.DeleteAccount(userID); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Account deleted successfully")
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Description Always responds 200 so account existence cannot be probed
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]interface{}
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	if err := h.service.RequestPasswordReset(req.Email); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, nil, "If an account exists for that email, a reset link has been sent")
}

// ResetPassword godoc
// @Summary Complete a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	if err := h.service.ResetPassword(req.Token, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Password reset successfully")
}
