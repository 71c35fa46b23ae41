package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"citysafe/internal/auth"
	"citysafe/internal/domain"
	"citysafe/internal/service"
	"citysafe/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	catalog   service.CatalogService
	tokens    *auth.TokenService
	storage   storage.Service
	bucket    string
	keyPrefix string
}

func NewHandler(users service.UserService, catalog service.CatalogService, tokens *auth.TokenService, store storage.Service, bucket, keyPrefix string) *Handler {
	return &Handler{
		users:     users,
		catalog:   catalog,
		tokens:    tokens,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/login", h.login)
		authGroup.GET("/me", h.requireAuth(), h.me)
		authGroup.PUT("/profile", h.requireAuth(), h.updateProfile)
		authGroup.POST("/profile/picture", h.requireAuth(), h.uploadProfilePicture)
	}

	api := router.Group("/api")
	{
		api.GET("/cities", h.listCities)
		api.GET("/cities/:id", h.getCity)
		api.GET("/cities/:id/attractions", h.listAttractions)
		api.GET("/cities/:id/crime-statistics", h.listCrimeStatistics)
		api.GET("/emergency-contacts", h.listEmergencyContacts)

		api.POST("/cities", h.requireAuth(), h.createCity)
		api.POST("/cities/:id/attractions", h.requireAuth(), h.addAttraction)
		api.POST("/cities/:id/crime-statistics", h.requireAuth(), h.addCrimeStatistic)

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type signupRequest struct {
	Email      string `json:"email" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required"`
	ExternalID string `json:"external_id"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileUpdateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type profileResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.users.Signup(c.Request.Context(), req.Email, req.Name, req.Password, req.ExternalID)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, userToProfile(currentUser(c)))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, req.Name, req.Email, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
		case errors.Is(err, service.ErrPhoneTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone number already in use"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, userToProfile(updated))
}

func (h *Handler) uploadProfilePicture(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	file, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "picture file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	user := currentUser(c)
	key := fmt.Sprintf("%s/%d/%s%s", h.keyPrefix, user.ID, uuid.NewString(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	location, err := h.storage.UploadObject(c.Request.Context(), h.bucket, key, contentType, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.users.SetProfilePicture(c.Request.Context(), user.ID, location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"profile": userToProfile(updated)}
	if url, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, key, 15*time.Minute); err == nil {
		resp["picture_url"] = url
	}
	c.JSON(http.StatusOK, resp)
}

func userToProfile(user *domain.User) profileResponse {
	return profileResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Phone:      user.Phone,
		ProfilePic: user.ProfilePic,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	}
}
