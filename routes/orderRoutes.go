package routes

import (
	"github.com/Grey-kingreys/restaurant/controllers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders")
	orders.Use(middlewares.RequireAuth(), middlewares.TableSessionGuard())
	{
		place := middlewares.RequireCapability(middlewares.CapPlaceOrder)
		orders.POST("", place, controllers.ValidateCart)
		orders.GET("/mine", place, controllers.GetMyOrders)
		orders.GET("/mine/:orderId", place, controllers.GetMyOrder)

		serve := middlewares.RequireCapability(middlewares.CapServeOrders)
		orders.GET("", serve, controllers.GetOrders)
		orders.GET("/active-count", serve, controllers.GetActiveOrderCount)
		orders.GET("/:orderId", serve, controllers.GetOrderById)
		orders.PATCH("/:orderId/serve", serve, controllers.MarkOrderServed)
		orders.PATCH("/:orderId/pay", serve, controllers.MarkOrderPaid)
		orders.DELETE("/:orderId", middlewares.RequireCapability(middlewares.CapManageUsers), controllers.DeleteOrder)

		// both tables and staff may pull receipts; the handler scopes
		// tables to their own orders
		orders.GET("/:orderId/receipt", controllers.GetOrderReceipt)
	}
}
