package routes

import (
	"time"

	"metastar/handlers"
	"metastar/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the OTP login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/auth")
	{
		api.POST("/init", hb.InitLoginHandler)
		api.POST("/verify", hb.VerifyCodeHandler)
		api.POST("/validate", hb.ValidateSessionHandler)
	}
}

// RegisterAssetRoutes registers the protected core script endpoint.
func RegisterAssetRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/v2/core.js", middleware.SessionAuthMiddleware(), hb.ServeCoreHandler)
}

// RegisterStorageRoutes registers the per-user config document endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/storage")
	{
		api.Use(middleware.SessionAuthMiddleware())
		api.POST("/save", hb.SaveConfigHandler)
		api.GET("/load", hb.LoadConfigHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Reflect the caller's Origin; credentialed cross-site requests need an
	// exact origin echo, a wildcard would be rejected by browsers.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAssetRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
