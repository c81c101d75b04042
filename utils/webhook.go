package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/Grey-kingreys/restaurant/models"
	"github.com/go-resty/resty/v2"
)

// NotifyReportWebhook posts the daily report summary to the operations
// webhook when REPORT_WEBHOOK_URL is configured. Delivery is best
// effort.
func NotifyReportWebhook(row models.ReportRow, mailErr error) error {
	webhookURL := os.Getenv("REPORT_WEBHOOK_URL")
	if webhookURL == "" {
		return nil
	}

	payload := map[string]any{
		"period":     row.Period,
		"orders":     row.OrderCount,
		"paidOrders": row.PaidCount,
		"revenue":    row.Revenue.StringFixed(2),
		"expenses":   row.Expenses.StringFixed(2),
		"net":        row.Net.StringFixed(2),
	}
	if mailErr != nil {
		payload["emailError"] = mailErr.Error()
	}

	resp, err := resty.New().SetTimeout(10 * time.Second).
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(webhookURL)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}
	return nil
}
