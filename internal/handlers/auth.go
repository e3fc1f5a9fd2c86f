package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"tasktrack/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
	tokens      services.TokenService
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService, tokens services.TokenService) *AuthHandler {
	return &AuthHandler{db: db, authService: authService, tokens: tokens}
}

// Login exchanges form credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}

	user, err := h.authService.Authenticate(h.db, username, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			slog.Error("login lookup failed", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}

	accessToken, err := h.tokens.Issue(user.Username)
	if err != nil {
		slog.Error("token issuance failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not issue token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}
