package jobs

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/Grey-kingreys/restaurant/utils"
)

func reportInterval() time.Duration {
	if raw := os.Getenv("REPORT_INTERVAL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return 24 * time.Hour
}

type reportEmailData struct {
	Date     string
	Summary  models.ReportRow
	Balance  string
	Expenses []models.Expense
}

// StartDailyReporter emails the prior day's aggregates to the operator
// address on a fixed interval. A failed send is logged and dropped,
// never retried; the webhook gets the summary either way.
func StartDailyReporter() {
	go func() {
		ticker := time.NewTicker(reportInterval())
		defer ticker.Stop()

		for range ticker.C {
			SendDailyReport()
		}
	}()
}

// SendDailyReport aggregates yesterday and mails the report.
func SendDailyReport() {
	now := time.Now()
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayStart := dayEnd.AddDate(0, 0, -1)

	row, err := models.BuildReportRow(initializers.DB, dayStart.Format("2006-01-02"), dayStart, dayEnd)
	if err != nil {
		initializers.LogError("jobs", "aggregate daily report", err)
		return
	}

	caisse, err := models.GetCaisse(initializers.DB)
	if err != nil {
		initializers.LogError("jobs", "load caisse for report", err)
		return
	}

	var expenses []models.Expense
	initializers.DB.Preload("RecordedBy").
		Where("expense_date >= ? AND expense_date < ?", dayStart, dayEnd).
		Find(&expenses)

	data := reportEmailData{
		Date:     dayStart.Format("02/01/2006"),
		Summary:  row,
		Balance:  caisse.Balance.StringFixed(2),
		Expenses: expenses,
	}

	var mailErr error
	to := os.Getenv("REPORT_EMAIL_TO")
	if to == "" {
		initializers.Logger.Warn("REPORT_EMAIL_TO not configured, skipping report email")
	} else {
		templatePath := filepath.Join("templates", "daily_report.html")
		mailErr = utils.SendEmail(to, "Daily Report - "+data.Date, data, templatePath)
		if mailErr != nil {
			initializers.LogError("jobs", "send daily report email", mailErr)
		} else {
			initializers.Logger.WithField("to", to).Info("daily report sent")
		}
	}

	if err := utils.NotifyReportWebhook(row, mailErr); err != nil {
		initializers.LogError("jobs", "notify report webhook", err)
	}
}
