package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	return middlewares.UserID(ctx)
}

type dishData struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Category    string          `json:"category"`
	Tags        datatypes.JSON  `json:"tags"`
	Available   *bool           `json:"available"`
}

// Dish handlers
func CreateDish(ctx *gin.Context) {
	var data dishData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if data.UnitPrice.LessThanOrEqual(decimal.Zero) {
		sendErrorResponse(ctx, http.StatusBadRequest, "unit price must be strictly positive")
		return
	}

	dish := models.Dish{
		Name:        data.Name,
		Description: data.Description,
		UnitPrice:   data.UnitPrice,
		Category:    data.Category,
		Tags:        data.Tags,
		Available:   true,
	}
	if data.Available != nil {
		dish.Available = *data.Available
	}

	if err := initializers.DB.Create(&dish).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create dish", err)
		return
	}

	ctx.JSON(http.StatusCreated, dish)
}

// GetDishes lists the menu. Tables only see what is currently available;
// kitchen and admin see everything.
func GetDishes(ctx *gin.Context) {
	query := initializers.DB.Model(&models.Dish{})

	role, _ := middlewares.UserRole(ctx)
	if role == models.RoleTable {
		query = query.Where("available = ?", true)
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var dishes []models.Dish
	if result := query.Order("name asc").Find(&dishes); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch dishes", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"dishes": dishes})
}

func GetDish(ctx *gin.Context) {
	dishId, err := strconv.Atoi(ctx.Param("dishId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse dishId")
		return
	}

	var dish models.Dish
	if err := initializers.DB.First(&dish, dishId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Dish not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch dish", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"dish": dish})
}

func UpdateDish(ctx *gin.Context) {
	dishId, err := strconv.Atoi(ctx.Param("dishId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse dishId")
		return
	}

	var data dishData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if data.UnitPrice.LessThanOrEqual(decimal.Zero) {
		sendErrorResponse(ctx, http.StatusBadRequest, "unit price must be strictly positive")
		return
	}

	var dish models.Dish
	if err := initializers.DB.First(&dish, dishId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Dish not found")
		return
	}

	dish.Name = data.Name
	dish.Description = data.Description
	dish.UnitPrice = data.UnitPrice
	dish.Category = data.Category
	if data.Tags != nil {
		dish.Tags = data.Tags
	}
	if data.Available != nil {
		dish.Available = *data.Available
	}

	if err := initializers.DB.Save(&dish).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update dish", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Dish updated successfully.", "dish": dish})
}

// ToggleDishAvailability is the soft delete: an unavailable dish
// disappears from the table menu but keeps its history.
func ToggleDishAvailability(ctx *gin.Context) {
	dishId, err := strconv.Atoi(ctx.Param("dishId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse dishId")
		return
	}

	var dish models.Dish
	if err := initializers.DB.First(&dish, dishId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Dish not found")
		return
	}

	dish.Available = !dish.Available
	if err := initializers.DB.Save(&dish).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update dish availability", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Dish availability updated.", "available": dish.Available})
}

func DeleteDish(ctx *gin.Context) {
	dishId, err := strconv.Atoi(ctx.Param("dishId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse dishId")
		return
	}

	err = models.DeleteDish(initializers.DB, uint(dishId))
	if err != nil {
		if errors.Is(err, models.ErrDishReferenced) {
			sendErrorResponse(ctx, http.StatusConflict, "Dish is referenced by existing orders, toggle availability instead")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to delete dish", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Dish deleted successfully."})
}
