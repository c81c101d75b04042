package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/Grey-kingreys/restaurant/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ValidateCart turns the table's session cart into a pending order.
// Order and lines are one transaction with add-time prices; the cart is
// cleared only after the order is committed, so a failed validation
// leaves the cart untouched.
func ValidateCart(ctx *gin.Context) {
	tableID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}
	token, ok := cartSessionToken(ctx)
	if !ok {
		return
	}

	cart, err := utils.LoadCart(ctx.Request.Context(), token)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToLoadCart)
		return
	}

	order, err := models.CreateOrderFromCart(initializers.DB, tableID, cart)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Your cart is empty")
		} else {
			log.Println("Order creation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	if err := utils.ClearCart(ctx.Request.Context(), token); err != nil {
		log.Printf("Order %d created but cart not cleared: %v", order.ID, err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order validated successfully.",
		"order":   order,
	})
}

// GetMyOrders lists the connected table's own orders with status tallies.
func GetMyOrders(ctx *gin.Context) {
	tableID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orders []models.Order
	result := initializers.DB.Preload("Items").
		Where("table_id = ?", tableID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	tally := gin.H{"pending": 0, "served": 0, "paid": 0}
	pending, served, paid := 0, 0, 0
	for _, order := range orders {
		switch order.Status {
		case models.StatusPending:
			pending++
		case models.StatusServed:
			served++
		case models.StatusPaid:
			paid++
		}
	}
	tally["pending"], tally["served"], tally["paid"] = pending, served, paid

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"stats":  tally,
	})
}

// GetMyOrder returns one order of the connected table. The table scope
// in the query keeps tables away from each other's orders.
func GetMyOrder(ctx *gin.Context) {
	tableID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.Preload("Items").
		Where("id = ? AND table_id = ?", orderId, tableID).
		First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch order", result.Error)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// GetOrders is the staff-wide listing with status and table filters.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("Items").Preload("Table")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if table := ctx.Query("table"); table != "" {
		query = query.Joins("JOIN users ON users.id = orders.table_id").
			Where("users.login LIKE ?", "%"+table+"%")
	}

	query = query.Order("orders.created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func GetOrderById(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.Preload("Items").Preload("Table").First(&order, orderId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch order", result.Error)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// MarkOrderServed advances a pending order. A wrong current status is a
// user-facing condition, not an error: the caller is told the order is
// already served or paid.
func MarkOrderServed(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	serverID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	err = models.MarkServed(initializers.DB, uint(orderId), serverID)
	if err != nil {
		if errors.Is(err, models.ErrNotPending) {
			sendErrorResponse(ctx, http.StatusConflict, "Order is not pending, it may already be served or paid")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to mark order as served", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order marked as served."})
}

// MarkOrderPaid settles a served order: payment row, caisse credit and
// session stamp happen in one transaction inside models.MarkPaid.
func MarkOrderPaid(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	payment, err := models.MarkPaid(initializers.DB, uint(orderId))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyPaid):
			sendErrorResponse(ctx, http.StatusConflict, "Order is already paid")
		case errors.Is(err, models.ErrNotServed):
			sendErrorResponse(ctx, http.StatusConflict, "Order must be served before it can be paid")
		case errors.Is(err, gorm.ErrRecordNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		default:
			respondWithError(ctx, http.StatusInternalServerError, "Failed to mark order as paid", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order paid successfully.",
		"payment": payment,
	})
}

func DeleteOrder(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderId).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, orderId).Error
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete order.", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

// GetActiveOrderCount counts orders still waiting to be served or paid.
func GetActiveOrderCount(ctx *gin.Context) {
	var count int64
	result := initializers.DB.
		Model(&models.Order{}).
		Where("status IN ?", []string{models.StatusPending, models.StatusServed}).
		Count(&count)
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count active orders"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"activeOrderCount": count})
}

// GetOrderReceipt streams the order receipt as a PDF. Tables get their
// own receipts; staff can fetch any.
func GetOrderReceipt(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	query := initializers.DB.Preload("Items").Preload("Table")
	if role, _ := middlewares.UserRole(ctx); role == models.RoleTable {
		tableID, _ := currentUserID(ctx)
		query = query.Where("table_id = ?", tableID)
	}

	var order models.Order
	if err := query.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch order", err)
		}
		return
	}

	buf, err := utils.ReceiptPDF(&order)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to generate receipt", err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=receipt-"+strconv.Itoa(orderId)+".pdf")
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
