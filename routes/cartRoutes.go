package routes

import (
	"github.com/Grey-kingreys/restaurant/controllers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart")
	cart.Use(
		middlewares.RequireAuth(),
		middlewares.TableSessionGuard(),
		middlewares.RequireCapability(middlewares.CapUseCart),
	)
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/items", controllers.AddCartItem)
		cart.DELETE("/items/:dishId", controllers.RemoveCartItem)
		cart.DELETE("", controllers.ClearCart)
	}
}
