package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Restaurant API.

The following are the endpoints for this API:

AUTH
- POST "/auth/login" - Log in (any role; tables get a session token)

MENU
- GET "/menu" - List dishes (tables only see available ones)
- GET "/menu/:dishId" - Dish details
- POST "/menu" - Create a dish (kitchen)
- PUT "/menu/:dishId" - Update a dish (kitchen)
- PATCH "/menu/:dishId/availability" - Toggle availability (kitchen)
- DELETE "/menu/:dishId" - Delete an unreferenced dish (kitchen)

CART (table role)
- GET "/cart" - Current cart
- POST "/cart/items" - Add a dish (quantity 1-10)
- DELETE "/cart/items/:dishId" - Remove a dish
- DELETE "/cart" - Clear the cart

ORDER
- POST "/orders" - Validate the cart into an order (table)
- GET "/orders/mine" - Own order history (table)
- GET "/orders/mine/:orderId" - Own order details (table)
- GET "/orders" - All orders (staff)
- GET "/orders/:orderId" - Order by ID (staff)
- PATCH "/orders/:orderId/serve" - Mark served (server)
- PATCH "/orders/:orderId/pay" - Mark paid (server)
- DELETE "/orders/:orderId" - Delete order (admin)
- GET "/orders/:orderId/receipt" - Receipt PDF

LEDGER (accountant)
- GET "/caisse" - Balance and period dashboard
- GET "/payments" - Payment listing
- GET "/expenses" - Expense listing
- POST "/expenses" - Record an expense
- GET "/expenses/:expenseId" - Expense details

TABLES
- GET "/tables/board" - Live table statuses (server)
- GET "/tables" - List tables (admin)
- POST "/tables" - Create a table (admin)
- GET "/tables/:tableId" - Table details (admin)
- PUT "/tables/:tableId" - Update a table (admin)
- DELETE "/tables/:tableId" - Delete a table (admin)
- GET "/tables/:tableId/qrcode" - Login QR code (admin)

REPORTS (accountant/admin)
- GET "/reports/csv" - Daily aggregates as CSV
- GET "/reports/pdf" - Summary and payments as PDF
- GET "/reports/payments.xlsx" - Payments as a spreadsheet

USERS (admin)
- GET "/users" | POST "/users" | GET/PUT/DELETE "/users/:userId"
- PATCH "/users/:userId/status" | PATCH "/users/:userId/password"`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
