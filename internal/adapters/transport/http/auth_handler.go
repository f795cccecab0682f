package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/task-service/internal/adapters/transport/http/dto"
	"github.com/taskhive/task-service/internal/app/auth"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "registration successful",
		"data": gin.H{
			"token":        pair.Token,
			"refreshToken": pair.RefreshToken,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"data": gin.H{
			"token":        pair.Token,
			"refreshToken": pair.RefreshToken,
		},
	})
}

func (h *AuthHandler) RequestVerification(c *gin.Context) {
	var body dto.RequestVerificationDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.RequestVerification(c.Request.Context(), body); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// VerifyEmail consumes the signed link. The request_at value is passed
// through verbatim; re-formatting it would break the signature.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var query dto.VerifyEmailDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.VerifyEmail(c.Request.Context(), query); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
