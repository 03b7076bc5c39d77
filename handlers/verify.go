package handlers

import (
	"errors"
	"net/http"

	"vibezone/services/verification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerificationHandler exposes email-verification code issuance and checks.
type VerificationHandler struct {
	Service verification.VerificationService
	Logger  *zap.Logger
}

// NewVerificationHandler creates a VerificationHandler.
func NewVerificationHandler(svc verification.VerificationService, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{Service: svc, Logger: logger}
}

// RequestCode handles POST /api/verification/request.
func (h *VerificationHandler) RequestCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	result, err := h.Service.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, verification.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("Verification code request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to send verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "expiresIn": result.ExpiresIn})
}

// VerifyCode handles POST /api/verification/verify.
func (h *VerificationHandler) VerifyCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and code are required"})
		return
	}

	result, err := h.Service.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrCodeInvalid),
			errors.Is(err, verification.ErrCodeExpired),
			errors.Is(err, verification.ErrCodeUsed):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			h.Logger.Error("Verification check failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to verify code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "verified": result.Verified})
}
