package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskhive/task-service/internal/adapters/transport/http/middleware"
	"github.com/taskhive/task-service/internal/app/auth"
	"github.com/taskhive/task-service/internal/app/task"
	"github.com/taskhive/task-service/internal/app/token"
	customErrors "github.com/taskhive/task-service/internal/domain/errors"
)

type RouterOptions struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

func NewRouter(
	log *zap.Logger,
	authSvc auth.Service,
	taskSvc task.Service,
	tokens *token.Service,
	opts RouterOptions,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RateLimitPerIP(50, 100, 10_000, time.Hour))

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
			},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: opts.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	authHandler := NewAuthHandler(authSvc)
	taskHandler := NewTaskHandler(taskSvc)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/request-verification", authHandler.RequestVerification)
		authGroup.GET("/verify", authHandler.VerifyEmail)
	}

	taskGroup := router.Group("/tasks", middleware.RequireAuth(tokens))
	{
		taskGroup.GET("", taskHandler.List)
		taskGroup.POST("", taskHandler.Create)
		taskGroup.PUT("/:id", taskHandler.Update)
		taskGroup.DELETE("/:id", taskHandler.Delete)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	return router
}

func handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
	case customErrors.IsInvalidSignature(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
	case customErrors.IsLinkExpired(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification link expired"})
	case customErrors.IsTokenExpired(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
	case customErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
