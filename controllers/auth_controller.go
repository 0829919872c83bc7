package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karmakarsharmila40/idea-publishing-platform/config"
	"github.com/karmakarsharmila40/idea-publishing-platform/middleware"
	"github.com/karmakarsharmila40/idea-publishing-platform/models"
	"github.com/karmakarsharmila40/idea-publishing-platform/repositories"
	"github.com/karmakarsharmila40/idea-publishing-platform/utils"
)

// AuthController handles registration, login and the caller's own profile.
type AuthController struct {
	users UserStore
}

// NewAuthController creates an AuthController backed by the given store.
func NewAuthController(users UserStore) *AuthController {
	return &AuthController{users: users}
}

func tokenTTL() time.Duration {
	return time.Duration(config.Get().TokenTTLHours) * time.Hour
}

// Register creates an account and returns a signed token.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "Please enter all fields")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		utils.Fail(ctx, http.StatusBadRequest, "Please enter all fields")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.ServerError(ctx)
		return
	}

	user, err := a.users.Create(ctx.Request.Context(), models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if err == repositories.ErrDuplicateUser {
			utils.Fail(ctx, http.StatusBadRequest, "User already exists")
			return
		}
		utils.ServerError(ctx)
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Username, tokenTTL())
	if err != nil {
		utils.ServerError(ctx)
		return
	}
	utils.OK(ctx, gin.H{"token": token})
}

// Login verifies a credential and returns a signed token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "Please enter all fields")
		return
	}

	user, err := a.users.GetByEmail(ctx.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if err == repositories.ErrUserNotFound {
			utils.Fail(ctx, http.StatusBadRequest, "Invalid credentials")
			return
		}
		utils.ServerError(ctx)
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Fail(ctx, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Username, tokenTTL())
	if err != nil {
		utils.ServerError(ctx)
		return
	}
	utils.OK(ctx, gin.H{"token": token})
}

// GetUser returns the authenticated caller's profile, without credentials.
func (a *AuthController) GetUser(ctx *gin.Context) {
	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	user, err := a.users.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			utils.Fail(ctx, http.StatusNotFound, "User not found")
			return
		}
		utils.ServerError(ctx)
		return
	}
	utils.OK(ctx, user)
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	token := strings.TrimSpace(ctx.GetHeader(middleware.AuthHeader))
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	expiresAt := time.Now().Add(tokenTTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)
	utils.OK(ctx, gin.H{"msg": "Logged out"})
}
