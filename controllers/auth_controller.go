package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/newsblog/newsblog/middleware"
	"github.com/newsblog/newsblog/services"
	"github.com/newsblog/newsblog/utils"
	"github.com/newsblog/newsblog/validation"
)

const sessionDuration = 72 * time.Hour

// AuthController handles registration, login and logout.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{auth: services.NewAuthService(db)}
}

// Register creates a local account. On success the caller is redirected to
// the login form, matching the sign-up flow of the site.
func (a *AuthController) Register(ctx *gin.Context) {
	var form validation.RegistrationForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	ip := ctx.ClientIP()
	if !utils.RegistrationCooldownTry(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42910, "too many attempts, slow down")
		return
	}
	if !utils.RegistrationDailyLimitCheck(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42921, "daily registration limit reached")
		return
	}

	user, err := a.auth.Register(form)
	if err != nil {
		respondServiceError(ctx, err, form)
		return
	}
	utils.RegistrationDailyIncrement(ip)

	utils.Success(ctx, gin.H{
		"user":     user,
		"redirect": "/login",
		"notice":   "Registration successful, please log in",
	})
}

// Login verifies credentials and issues a session token.
func (a *AuthController) Login(ctx *gin.Context) {
	var form validation.LoginForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	user, err := a.auth.Login(form)
	if err != nil {
		respondServiceError(ctx, err, form)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Name, user.IsAdmin, sessionDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token":    token,
		"user":     user,
		"redirect": "/",
		"notice":   "Welcome back, " + user.Name,
	})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(sessionDuration)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)

	utils.Success(ctx, gin.H{"redirect": "/", "notice": "You have been logged out"})
}

// Me returns the authenticated user's record.
func (a *AuthController) Me(ctx *gin.Context) {
	actor := middleware.Actor(ctx)
	user, err := a.auth.GetUser(actor.UserID)
	if err != nil {
		respondServiceError(ctx, err, nil)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}
