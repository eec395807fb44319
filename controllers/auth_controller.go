// File: /controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"milestone-api/logger"
	"milestone-api/models"
	"milestone-api/services"
	"milestone-api/utils"
)

type AuthController struct {
	authService *services.AuthService
	log         *logger.Logger
}

func NewAuthController(authService *services.AuthService, log *logger.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		log:         log.WithComponent(logger.ComponentAuth),
	}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	UserType string `json:"userType" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SigninResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Email, username, user type, and password are required")
		return
	}

	_, err := ac.authService.Signup(c.Request.Context(), services.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		UserType: req.UserType,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (ac *AuthController) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Email and password are required")
		return
	}

	token, user, err := ac.authService.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if services.KindOf(err) == services.KindUnauthorized {
			utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, SigninResponse{
		Token: token,
		User:  user.Profile(),
	})
}

// Logout is stateless; the client discards its token.
func (ac *AuthController) Logout(c *gin.Context) {
	utils.SendSuccess(c, "Logged out successfully", nil)
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	profile, err := ac.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
