package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all gateway handlers for route registration.
type HandlerBundle struct {
	// Auth endpoints.
	InitLoginHandler       gin.HandlerFunc
	VerifyCodeHandler      gin.HandlerFunc
	ValidateSessionHandler gin.HandlerFunc

	// Protected asset endpoint.
	ServeCoreHandler gin.HandlerFunc

	// User document endpoints.
	SaveConfigHandler gin.HandlerFunc
	LoadConfigHandler gin.HandlerFunc

	// Health endpoint.
	HealthHandler gin.HandlerFunc
}
