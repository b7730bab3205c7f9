package handlers

import (
	"errors"
	"net/http"

	"metastar/middleware"
	"metastar/services/auth"
	"metastar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the OTP login flow over HTTP.
type AuthHandler struct {
	Service auth.AuthService
}

func NewAuthHandler(service auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// InitLoginHandler handles POST /auth/init: validates the email, then runs
// the guarded initiation (lockout, daily cap, entitlement, send).
func (h *AuthHandler) InitLoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email required"})
		return
	}

	err := h.Service.InitiateLogin(c.Request.Context(), req.Email)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	var locked auth.LockedError
	var provider auth.ProviderError
	var delivery auth.DeliveryError
	switch {
	case errors.As(err, &locked):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message":    "Account locked due to failed attempts.",
			"retryAfter": locked.RetryAfter,
		})
	case errors.Is(err, auth.ErrDailyLimit):
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Daily login limit reached. Try tomorrow."})
	case errors.Is(err, auth.ErrNoSubscription):
		c.JSON(http.StatusForbidden, gin.H{
			"message": "No active subscription found for this email.",
			"code":    "NO_SUBSCRIPTION",
		})
	case errors.As(err, &provider):
		logger.Error("License provider failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"message": "License check failed (Provider Error)"})
	case errors.As(err, &delivery):
		logger.Error("Email delivery failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send email."})
	default:
		logger.Error("Login initiation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	}
}

// VerifyCodeHandler handles POST /auth/verify: checks the submitted code and
// returns the session token both in the body and as a secure cookie.
func (h *AuthHandler) VerifyCodeHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and code required"})
		return
	}

	token, err := h.Service.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err == nil {
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(utils.SessionCookieName, token, int(utils.SessionTTL.Seconds()), "/", "", true, true)
		c.JSON(http.StatusOK, gin.H{"valid": true, "token": token})
		return
	}

	var incorrect auth.IncorrectCodeError
	var tripped auth.LockoutTrippedError
	switch {
	case errors.Is(err, auth.ErrCodeExpired):
		c.JSON(http.StatusForbidden, gin.H{"message": "Code expired or invalid."})
	case errors.As(err, &tripped):
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many failed attempts. Account locked for 24h."})
	case errors.As(err, &incorrect):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":           "Incorrect code",
			"attemptsRemaining": incorrect.AttemptsRemaining,
		})
	default:
		logger.Error("Code verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Verify failed"})
	}
}

// ValidateSessionHandler handles POST /auth/validate. Always 200: the body
// reports validity so clients can branch without error handling.
func (h *AuthHandler) ValidateSessionHandler(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	subject, err := utils.SubjectFromToken(token)
	if err != nil || subject == "" {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "email": subject})
}
