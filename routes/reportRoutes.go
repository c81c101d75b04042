package routes

import (
	"github.com/Grey-kingreys/restaurant/controllers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/gin-gonic/gin"
)

func ReportRoutes(server *gin.Engine) {
	reports := server.Group("/reports")
	reports.Use(middlewares.RequireAuth(), middlewares.RequireCapability(middlewares.CapViewReports))
	{
		reports.GET("/csv", controllers.ExportReportCSV)
		reports.GET("/pdf", controllers.ExportReportPDF)
		reports.GET("/payments.xlsx", controllers.ExportPaymentsXLSX)
	}
}
