package routes

import (
	"github.com/Grey-kingreys/restaurant/controllers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/gin-gonic/gin"
)

func MenuRoutes(server *gin.Engine) {
	menu := server.Group("/menu")
	menu.Use(middlewares.RequireAuth(), middlewares.TableSessionGuard())
	{
		menu.GET("", middlewares.RequireCapability(middlewares.CapBrowseMenu), controllers.GetDishes)
		menu.GET("/:dishId", middlewares.RequireCapability(middlewares.CapBrowseMenu), controllers.GetDish)

		manage := middlewares.RequireCapability(middlewares.CapManageMenu)
		menu.POST("", manage, controllers.CreateDish)
		menu.PUT("/:dishId", manage, controllers.UpdateDish)
		menu.PATCH("/:dishId/availability", manage, controllers.ToggleDishAvailability)
		menu.DELETE("/:dishId", manage, controllers.DeleteDish)
	}
}
