package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/middlewares"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/Grey-kingreys/restaurant/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgFailedToLoadCart = "Failed to load cart"
	msgFailedToSaveCart = "Failed to save cart"
	msgSessionRequired  = "Table session required"
)

func cartSessionToken(ctx *gin.Context) (string, bool) {
	token, ok := middlewares.SessionToken(ctx)
	if !ok || token == "" {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgSessionRequired)
		return "", false
	}
	return token, true
}

func cartSummary(cart *models.Cart) gin.H {
	return gin.H{
		"lines":     cart.Lines,
		"total":     cart.Total().StringFixed(2),
		"itemCount": cart.ItemCount(),
		"lineCount": cart.LineCount(),
	}
}

func GetCart(ctx *gin.Context) {
	token, ok := cartSessionToken(ctx)
	if !ok {
		return
	}

	cart, err := utils.LoadCart(ctx.Request.Context(), token)
	if err != nil {
		log.Println("Cart load error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToLoadCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartSummary(cart)})
}

type cartItemData struct {
	DishID   uint `json:"dishId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=10"`
	Replace  bool `json:"replace"`
}

// AddCartItem puts a dish in the session cart, snapshotting the current
// catalog price. Adding the same dish again accumulates its quantity
// but never refreshes the snapshot.
func AddCartItem(ctx *gin.Context) {
	token, ok := cartSessionToken(ctx)
	if !ok {
		return
	}

	var data cartItemData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var dish models.Dish
	err := initializers.DB.Where("id = ? AND available = ?", data.DishID, true).First(&dish).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Dish not found or unavailable")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	cart, err := utils.LoadCart(ctx.Request.Context(), token)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToLoadCart)
		return
	}

	cart.Add(&dish, data.Quantity, data.Replace)

	if err := utils.SaveCart(ctx.Request.Context(), token, cart); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToSaveCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": dish.Name + " added to cart",
		"cart":    cartSummary(cart),
	})
}

func RemoveCartItem(ctx *gin.Context) {
	token, ok := cartSessionToken(ctx)
	if !ok {
		return
	}

	dishId, err := strconv.Atoi(ctx.Param("dishId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse dishId")
		return
	}

	cart, err := utils.LoadCart(ctx.Request.Context(), token)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToLoadCart)
		return
	}

	cart.Remove(uint(dishId))

	if err := utils.SaveCart(ctx.Request.Context(), token, cart); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToSaveCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartSummary(cart)})
}

func ClearCart(ctx *gin.Context) {
	token, ok := cartSessionToken(ctx)
	if !ok {
		return
	}

	if err := utils.ClearCart(ctx.Request.Context(), token); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToSaveCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared."})
}
