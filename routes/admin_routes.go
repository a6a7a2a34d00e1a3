package routes

import (
	"github.com/Govind-619/quickcart-payments/controllers"
	"github.com/Govind-619/quickcart-payments/middleware"
	"github.com/gin-gonic/gin"
)

func initAdminRoutes(router *gin.Engine, pc *controllers.PaymentController, cfg RouterConfig) {
	admin := router.Group("/admin/payments")
	admin.Use(middleware.AdminAuthMiddleware(cfg.JWTSecret))
	{
		admin.GET("/sessions", pc.ListSessions)
		admin.GET("/report/excel", pc.DownloadReportExcel)
		admin.GET("/report/pdf", pc.DownloadReportPDF)
	}
}
