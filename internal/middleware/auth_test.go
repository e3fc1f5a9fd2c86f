package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasktrack/internal/middleware"
	"tasktrack/internal/models"
	"tasktrack/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const expectedUnauthenticatedBody = `{"detail":"Not authenticated"}`

func setupAuthRouter(t *testing.T, tokens services.TokenService) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	router := gin.New()
	router.Use(middleware.AuthRequired(db, tokens))
	router.GET("/protected", func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})

	return router, db
}

func TestAuthRequired_NoHeader(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	router, _ := setupAuthRouter(t, tokens)

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	if w.Body.String() != expectedUnauthenticatedBody {
		t.Errorf("Expected body %s, got %s", expectedUnauthenticatedBody, w.Body.String())
	}
}

func TestAuthRequired_NotBearer(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	router, _ := setupAuthRouter(t, tokens)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	router, _ := setupAuthRouter(t, tokens)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid_token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	if w.Body.String() != expectedUnauthenticatedBody {
		t.Errorf("Expected body %s, got %s", expectedUnauthenticatedBody, w.Body.String())
	}
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	expired := services.NewTokenService("test-secret", -time.Minute)
	verifier := services.NewTokenService("test-secret", time.Hour)
	router, db := setupAuthRouter(t, verifier)

	db.Create(&models.User{Username: "alice", Password: "hash"})

	tokenString, err := expired.Issue("alice")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_UnknownSubject(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	router, _ := setupAuthRouter(t, tokens)

	tokenString, err := tokens.Issue("ghost")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	// Unknown subject must be indistinguishable from a bad signature.
	if w.Body.String() != expectedUnauthenticatedBody {
		t.Errorf("Expected body %s, got %s", expectedUnauthenticatedBody, w.Body.String())
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	router, db := setupAuthRouter(t, tokens)

	db.Create(&models.User{Username: "alice", Password: "hash"})

	tokenString, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}
