package routes

import (
	"github.com/Grey-kingreys/restaurant/controllers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/gin-gonic/gin"
)

func TableRoutes(server *gin.Engine) {
	tables := server.Group("/tables")
	tables.Use(middlewares.RequireAuth())
	{
		tables.GET("/board", middlewares.RequireCapability(middlewares.CapServeOrders), controllers.GetTableBoard)

		manage := middlewares.RequireCapability(middlewares.CapManageTables)
		tables.GET("", manage, controllers.GetTables)
		tables.POST("", manage, controllers.CreateTable)
		tables.GET("/:tableId", manage, controllers.GetTable)
		tables.PUT("/:tableId", manage, controllers.UpdateTable)
		tables.DELETE("/:tableId", manage, controllers.DeleteTable)
		tables.GET("/:tableId/qrcode", manage, controllers.GetTableQRCode)
	}
}
