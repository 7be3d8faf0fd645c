package handlers

import (
	"net/http"
	"time"

	"nexusconnect-backend/auth"
	"nexusconnect-backend/logger"
	"nexusconnect-backend/metrics"
	"nexusconnect-backend/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig carries everything the HTTP surface is built from
type RouterConfig struct {
	AppName    string
	AppVersion string

	Auth         *AuthHandler
	Entrepreneur *EntrepreneurHandler
	Contact      *ContactHandler
	Storage      *StorageHandler

	Tokens  *auth.TokenManager
	Metrics *metrics.HTTP
	Log     *zap.Logger

	// RateCounter is nil when no Redis is configured.
	RateCounter       middleware.Counter
	ContactRateLimit  int
	ContactRateWindow time.Duration

	// UploadsDir is served under /uploads when logos are stored locally.
	UploadsDir string
}

// NewRouter wires middleware and the route table onto a gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(logger.Middleware(cfg.Log), gin.Recovery())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": cfg.AppVersion,
		})
	}
	r.GET("/health", health)

	if cfg.UploadsDir != "" {
		r.Static("/uploads", cfg.UploadsDir)
	}

	requireAuth := middleware.RequireAuth(cfg.Tokens)

	api := r.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"name":    cfg.AppName,
				"version": cfg.AppVersion,
				"status":  "running",
			})
		})
		api.GET("/health", health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", cfg.Auth.Register)
			authGroup.POST("/login", cfg.Auth.Login)
			authGroup.GET("/me", requireAuth, cfg.Auth.Me)
			authGroup.POST("/logout", requireAuth, cfg.Auth.Logout)
			authGroup.POST("/refresh", middleware.RequireAuth(cfg.Tokens, auth.TokenAccess, auth.TokenRefresh), cfg.Auth.Refresh)
		}

		// Static segments are registered before the :id routes.
		ent := api.Group("/entrepreneurs")
		{
			ent.GET("", cfg.Entrepreneur.List)
			ent.POST("", requireAuth, cfg.Entrepreneur.CreateMe)

			ent.GET("/me", requireAuth, cfg.Entrepreneur.GetMe)
			ent.POST("/me", requireAuth, cfg.Entrepreneur.CreateMe)
			ent.PUT("/me", requireAuth, cfg.Entrepreneur.UpdateMe)
			ent.PATCH("/me", requireAuth, cfg.Entrepreneur.UpdateMe)
			ent.DELETE("/me", requireAuth, cfg.Entrepreneur.DeleteMe)
			ent.PATCH("/me/status", requireAuth, cfg.Entrepreneur.SetStatus)
			ent.PUT("/me/status", requireAuth, cfg.Entrepreneur.SetStatus)

			ent.GET("/draft", requireAuth, cfg.Entrepreneur.GetDraft)
			ent.PUT("/draft", requireAuth, cfg.Entrepreneur.SaveDraft)
			ent.POST("/draft", requireAuth, cfg.Entrepreneur.SaveDraft)
			ent.DELETE("/draft", requireAuth, cfg.Entrepreneur.DeleteDraft)

			ent.GET("/:id", cfg.Entrepreneur.GetByID)
			ent.GET("/:id/contact", cfg.Entrepreneur.GetContact)
			ent.PUT("/:id", requireAuth, cfg.Entrepreneur.UpdateByID)
			ent.PATCH("/:id", requireAuth, cfg.Entrepreneur.UpdateByID)
			ent.DELETE("/:id", requireAuth, cfg.Entrepreneur.DeleteByID)
		}

		contact := api.Group("/contact")
		{
			contact.POST("",
				middleware.RateLimit(cfg.RateCounter, "contact", cfg.ContactRateLimit, cfg.ContactRateWindow, cfg.Log),
				cfg.Contact.Submit,
			)
			contact.GET("/stats", cfg.Contact.ContactStats)
		}

		storageGroup := api.Group("/storage", requireAuth)
		{
			storageGroup.POST("/upload-logo", cfg.Storage.UploadLogo)
			storageGroup.DELETE("/delete-logo/*filename", cfg.Storage.DeleteLogo)
		}

		api.GET("/stats", cfg.Contact.PlatformStats)
	}

	return r
}
