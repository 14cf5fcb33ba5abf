// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"salonsync-backend/config"
	"salonsync-backend/models"
	"salonsync-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

// StylistPayout is one stylist's totals for a pay period.
type StylistPayout struct {
	StylistID   string  `json:"stylistId"`
	Name        string  `json:"name"`
	OrderCount  int     `json:"orderCount"`
	Sales       float64 `json:"sales"`
	Commission  float64 `json:"commission"`
	Tips        float64 `json:"tips"`
	Adjustments float64 `json:"adjustments"`
	Hours       float64 `json:"hours"`
	HourlyPay   float64 `json:"hourlyPay"`
	TotalPayout float64 `json:"totalPayout"`
}

type PayoutReport struct {
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Payouts     []StylistPayout `json:"payouts"`
}

// GetPayoutReport returns per-stylist payout totals for the pay period
// containing ?date (default today). Uses the same period windows as
// commission resolution so the figures line up.
func (rc *ReportController) GetPayoutReport(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		at = parsed
	}

	start, end := utils.PeriodFor(at)

	var stylists []models.Stylist
	if err := config.DB.Order("name asc").Find(&stylists).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stylists")
		return
	}

	report := PayoutReport{PeriodStart: start, PeriodEnd: end}

	for _, stylist := range stylists {
		var orders []models.Order
		if err := config.DB.Preload("Adjustments").
			Where("stylist_id = ?", stylist.ID).
			Where("status NOT IN ?", []string{models.OrderStatusCanceled, models.OrderStatusDeleted}).
			Where("appointment_date >= ? AND appointment_date < ?", start, end).
			Find(&orders).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
			return
		}

		payout := StylistPayout{StylistID: stylist.ID.String(), Name: stylist.Name}
		for _, order := range orders {
			payout.OrderCount++
			payout.Sales += order.TotalAmount
			payout.Commission += order.CommissionAmount
			payout.Tips += order.TipAmount
			for _, adjustment := range order.Adjustments {
				payout.Adjustments += adjustment.Amount
			}
		}

		var entries []models.TimeEntry
		if err := config.DB.Where("stylist_id = ?", stylist.ID).
			Where("clock_in >= ? AND clock_in < ?", start, end).
			Find(&entries).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve time entries")
			return
		}
		for _, entry := range entries {
			payout.Hours += entry.Hours()
		}

		payout.Sales = utils.Round2(payout.Sales)
		payout.Commission = utils.Round2(payout.Commission)
		payout.Tips = utils.Round2(payout.Tips)
		payout.Adjustments = utils.Round2(payout.Adjustments)
		payout.Hours = utils.Round2(payout.Hours)
		payout.HourlyPay = utils.Round2(payout.Hours * stylist.HourlyRate)
		payout.TotalPayout = utils.Round2(payout.Commission + payout.Tips + payout.Adjustments + payout.HourlyPay)

		if payout.OrderCount > 0 || payout.Hours > 0 {
			report.Payouts = append(report.Payouts, payout)
		}
	}

	c.JSON(http.StatusOK, report)
}
