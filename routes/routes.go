package routes

import (
	"github.com/Govind-619/quickcart-payments/controllers"
	"github.com/Govind-619/quickcart-payments/middleware"
	"github.com/Govind-619/quickcart-payments/utils"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries what the router needs beyond the controller
type RouterConfig struct {
	AllowedOrigin string
	JWTSecret     string
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(pc *controllers.PaymentController, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware(cfg.AllowedOrigin))
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/health", pc.Health)

	payments := router.Group("/payments")
	payments.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		payments.POST("/create-session", pc.CreateSession)
		payments.POST("/verify-session", pc.VerifySession)
	}

	initAdminRoutes(router, pc, cfg)

	return router
}
