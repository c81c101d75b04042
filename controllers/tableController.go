package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type tableData struct {
	Number string `json:"number" binding:"required"`
	Seats  int    `json:"seats" binding:"required,min=1"`
	UserID uint   `json:"userId" binding:"required"`
}

func CreateTable(ctx *gin.Context) {
	var data tableData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, data.UserID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Linked user not found")
		return
	}
	if !user.IsTable() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Linked user must have the table role")
		return
	}

	table := models.RestaurantTable{
		Number: data.Number,
		Seats:  data.Seats,
		UserID: data.UserID,
	}
	if err := initializers.DB.Create(&table).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create table", err)
		return
	}

	ctx.JSON(http.StatusCreated, table)
}

func GetTables(ctx *gin.Context) {
	query := initializers.DB.Preload("User").Order("number asc")

	if search := ctx.Query("search"); search != "" {
		query = query.Where("number LIKE ?", "%"+search+"%")
	}

	var tables []models.RestaurantTable
	if result := query.Find(&tables); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch tables", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"tables": tables})
}

func GetTable(ctx *gin.Context) {
	tableId, err := strconv.Atoi(ctx.Param("tableId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse tableId")
		return
	}

	var table models.RestaurantTable
	if err := initializers.DB.Preload("User").First(&table, tableId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Table not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch table", err)
		}
		return
	}

	var stats struct {
		Total   int64 `json:"total"`
		Pending int64 `json:"pending"`
		Served  int64 `json:"served"`
		Paid    int64 `json:"paid"`
	}
	initializers.DB.Model(&models.Order{}).Where("table_id = ?", table.UserID).Count(&stats.Total)
	initializers.DB.Model(&models.Order{}).Where("table_id = ? AND status = ?", table.UserID, models.StatusPending).Count(&stats.Pending)
	initializers.DB.Model(&models.Order{}).Where("table_id = ? AND status = ?", table.UserID, models.StatusServed).Count(&stats.Served)
	initializers.DB.Model(&models.Order{}).Where("table_id = ? AND status = ?", table.UserID, models.StatusPaid).Count(&stats.Paid)

	var lastOrders []models.Order
	initializers.DB.Where("table_id = ?", table.UserID).Order("created_at desc").Limit(10).Find(&lastOrders)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"table":      table,
		"orderStats": stats,
		"lastOrders": lastOrders,
	})
}

func UpdateTable(ctx *gin.Context) {
	tableId, err := strconv.Atoi(ctx.Param("tableId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse tableId")
		return
	}

	var data tableData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var table models.RestaurantTable
	if err := initializers.DB.First(&table, tableId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Table not found")
		return
	}

	table.Number = data.Number
	table.Seats = data.Seats
	table.UserID = data.UserID

	if err := initializers.DB.Save(&table).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update table", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Table updated successfully.", "table": table})
}

func DeleteTable(ctx *gin.Context) {
	tableId, err := strconv.Atoi(ctx.Param("tableId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse tableId")
		return
	}

	if result := initializers.DB.Delete(&models.RestaurantTable{}, tableId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete table", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Table deleted successfully."})
}

// GetTableBoard is the server's live view: every table with its current
// status derived from its latest unsettled order.
func GetTableBoard(ctx *gin.Context) {
	var tables []models.RestaurantTable
	if result := initializers.DB.Preload("User").Order("number asc").Find(&tables); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch tables", result.Error)
		return
	}

	board := make([]gin.H, 0, len(tables))
	free, pending, served := 0, 0, 0
	for _, table := range tables {
		var lastOrder models.Order
		err := initializers.DB.
			Where("table_id = ? AND status IN ?", table.UserID, []string{models.StatusPending, models.StatusServed}).
			Order("created_at desc").
			First(&lastOrder).Error

		status := "LIBRE"
		entry := gin.H{"table": table}
		if err == nil {
			status = lastOrder.Status
			entry["currentOrder"] = lastOrder
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to resolve table status", err)
			return
		}
		entry["status"] = status

		switch status {
		case models.StatusPending:
			pending++
		case models.StatusServed:
			served++
		default:
			free++
		}

		board = append(board, entry)
	}

	if filter := ctx.Query("status"); filter != "" {
		filtered := make([]gin.H, 0, len(board))
		for _, entry := range board {
			if entry["status"] == filter {
				filtered = append(filtered, entry)
			}
		}
		board = filtered
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"tables": board,
		"stats": gin.H{
			"total":   len(tables),
			"free":    free,
			"pending": pending,
			"served":  served,
		},
	})
}

// GetTableQRCode streams a QR code PNG pointing at the table login page,
// meant to be printed and left on the physical table.
func GetTableQRCode(ctx *gin.Context) {
	tableId, err := strconv.Atoi(ctx.Param("tableId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse tableId")
		return
	}

	var table models.RestaurantTable
	if err := initializers.DB.Preload("User").First(&table, tableId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Table not found")
		return
	}

	loginURL := os.Getenv("FRONTEND_URL") + "/login?table=" + table.User.Login
	png, err := qrcode.Encode(loginURL, qrcode.Medium, 256)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to generate QR code", err)
		return
	}

	ctx.Header("Content-Disposition", "inline; filename=table-"+table.Number+".png")
	ctx.Data(http.StatusOK, "image/png", png)
}
