package routes

import (
	"github.com/Grey-kingreys/restaurant/controllers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	server.POST("/auth/login", controllers.Login)

	users := server.Group("/users")
	users.Use(middlewares.RequireAuth(), middlewares.RequireCapability(middlewares.CapManageUsers))
	{
		users.GET("", controllers.GetUsers)
		users.POST("", controllers.CreateUser)
		users.GET("/:userId", controllers.GetUser)
		users.PUT("/:userId", controllers.UpdateUser)
		users.PATCH("/:userId/status", controllers.ToggleUserStatus)
		users.PATCH("/:userId/password", controllers.ResetUserPassword)
		users.DELETE("/:userId", controllers.DeleteUser)
	}
}
