package routes

import (
	"github.com/Grey-kingreys/restaurant/controllers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/gin-gonic/gin"
)

func PaymentRoutes(server *gin.Engine) {
	view := middlewares.RequireCapability(middlewares.CapViewLedger)

	caisse := server.Group("/caisse", middlewares.RequireAuth())
	caisse.GET("", view, controllers.GetCaisseDashboard)

	payments := server.Group("/payments", middlewares.RequireAuth())
	payments.GET("", view, controllers.GetPayments)

	expenses := server.Group("/expenses", middlewares.RequireAuth())
	{
		expenses.GET("", view, controllers.GetExpenses)
		expenses.GET("/:expenseId", view, controllers.GetExpense)
		expenses.POST("", middlewares.RequireCapability(middlewares.CapRecordSpend), controllers.CreateExpense)
	}
}
