// File: metastar/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metastar/config"
	"metastar/database"
	"metastar/handlers"
	"metastar/middleware"
	"metastar/routes"
	"metastar/services/asset"
	"metastar/services/auth"
	"metastar/services/license"
	"metastar/services/mailer"
	"metastar/services/storage"
	"metastar/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// External clients.
	whopClient := license.NewWhopClient(
		config.AppConfig.WhopAPIURL,
		config.AppConfig.WhopAPIKey,
		config.AppConfig.WhopCompanyID,
		config.AppConfig.WhopProductID,
	)
	resendMailer := mailer.NewResendMailer(
		config.AppConfig.ResendAPIURL,
		config.AppConfig.ResendAPIKey,
		config.AppConfig.EmailFrom,
	)

	// Stores.
	authCache := utils.GetAuthCacheClient()
	assetStore, err := asset.NewGridFSStore(
		database.MongoClient.Database(config.AppConfig.DatabaseName),
		config.AppConfig.AssetBucket,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open asset store: %v", err)
	}
	configStore := &storage.RedisConfigStore{Client: authCache}

	// Services.
	authService := &auth.DefaultAuthService{
		Cache:   authCache,
		License: whopClient,
		Mailer:  resendMailer,
	}

	// Handlers.
	authHandler := handlers.NewAuthHandler(authService)
	assetHandler := handlers.NewAssetHandler(assetStore)
	storageHandler := handlers.NewStorageHandler(configStore)
	healthHandler := handlers.NewHealthHandler(authCache)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		InitLoginHandler:       authHandler.InitLoginHandler,
		VerifyCodeHandler:      authHandler.VerifyCodeHandler,
		ValidateSessionHandler: authHandler.ValidateSessionHandler,
		ServeCoreHandler:       assetHandler.ServeCoreHandler,
		SaveConfigHandler:      storageHandler.SaveConfigHandler,
		LoadConfigHandler:      storageHandler.LoadConfigHandler,
		HealthHandler:          healthHandler.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(authCache, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
