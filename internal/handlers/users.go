package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"tasktrack/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db              *gorm.DB
	registerService services.RegisterService
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func NewUserHandler(db *gorm.DB, registerService services.RegisterService) *UserHandler {
	return &UserHandler{db: db, registerService: registerService}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.registerService.RegisterUser(h.db, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"detail": "Username already registered"})
			return
		}
		slog.Error("registration failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create user"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
