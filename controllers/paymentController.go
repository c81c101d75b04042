package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCaisseDashboard aggregates payments and expenses over a period
// (today, week, month, all) together with the running balance.
func GetCaisseDashboard(ctx *gin.Context) {
	caisse, err := models.GetCaisse(initializers.DB)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load caisse", err)
		return
	}

	now := time.Now()
	var from time.Time
	period := ctx.DefaultQuery("period", "today")
	switch period {
	case "week":
		from = now.AddDate(0, 0, -7)
	case "month":
		from = now.AddDate(0, 0, -30)
	case "all":
		from = time.Time{}
	default:
		period = "today"
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	row, err := models.BuildReportRow(initializers.DB, period, from, now.Add(time.Second))
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to aggregate period", err)
		return
	}

	var lastPayments []models.Payment
	initializers.DB.Preload("Order.Table").Order("created_at desc").Limit(10).Find(&lastPayments)

	var lastExpenses []models.Expense
	initializers.DB.Preload("RecordedBy").Order("expense_date desc").Limit(10).Find(&lastExpenses)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"balance":      caisse.Balance.StringFixed(2),
		"period":       period,
		"summary":      row,
		"lastPayments": lastPayments,
		"lastExpenses": lastExpenses,
	})
}

func parseDateQuery(ctx *gin.Context, name string) (time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func GetPayments(ctx *gin.Context) {
	query := initializers.DB.Preload("Order.Table").Order("created_at desc")

	if from, ok := parseDateQuery(ctx, "from"); ok {
		query = query.Where("payments.created_at >= ?", from)
	}
	if to, ok := parseDateQuery(ctx, "to"); ok {
		query = query.Where("payments.created_at < ?", to.AddDate(0, 0, 1))
	}
	if table := ctx.Query("table"); table != "" {
		query = query.Joins("JOIN orders ON orders.id = payments.order_id").
			Joins("JOIN users ON users.id = orders.table_id").
			Where("users.login LIKE ?", "%"+table+"%")
	}

	var payments []models.Payment
	if result := query.Find(&payments); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch payments", result.Error)
		return
	}

	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(payment.Amount)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"payments": payments,
		"stats": gin.H{
			"count": len(payments),
			"total": total.StringFixed(2),
		},
	})
}

func GetExpenses(ctx *gin.Context) {
	query := initializers.DB.Preload("RecordedBy").Order("expense_date desc")

	if from, ok := parseDateQuery(ctx, "from"); ok {
		query = query.Where("expense_date >= ?", from)
	}
	if to, ok := parseDateQuery(ctx, "to"); ok {
		query = query.Where("expense_date < ?", to.AddDate(0, 0, 1))
	}

	var expenses []models.Expense
	if result := query.Find(&expenses); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch expenses", result.Error)
		return
	}

	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"expenses": expenses,
		"stats": gin.H{
			"count": len(expenses),
			"total": total.StringFixed(2),
		},
	})
}

type expenseData struct {
	Motif       string          `json:"motif" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate string          `json:"expenseDate" binding:"required"`
}

// CreateExpense records an expense and debits the caisse. Insufficient
// funds is a user-facing rejection: the balance is left untouched and no
// expense row exists.
func CreateExpense(ctx *gin.Context) {
	var data expenseData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	expenseDate, err := time.Parse("2006-01-02", data.ExpenseDate)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "expenseDate must be YYYY-MM-DD")
		return
	}

	recordedBy, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	expense, err := models.RecordExpense(initializers.DB, data.Motif, data.Amount, expenseDate, &recordedBy)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidAmount):
			sendErrorResponse(ctx, http.StatusBadRequest, "Amount must be strictly positive")
		case errors.Is(err, models.ErrInsufficientFunds):
			caisse, caisseErr := models.GetCaisse(initializers.DB)
			balance := "unknown"
			if caisseErr == nil {
				balance = caisse.Balance.StringFixed(2)
			}
			sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
				"message": "Insufficient funds in the caisse",
				"balance": balance,
			})
		default:
			respondWithError(ctx, http.StatusInternalServerError, "Failed to record expense", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Expense recorded successfully.",
		"expense": expense,
	})
}

func GetExpense(ctx *gin.Context) {
	expenseId, err := strconv.Atoi(ctx.Param("expenseId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse expenseId")
		return
	}

	var expense models.Expense
	result := initializers.DB.Preload("RecordedBy").First(&expense, expenseId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Expense not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch expense", result.Error)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"expense": expense})
}
