// services/commission.go
package services

import (
	"sort"
	"time"

	"salonsync-backend/models"
	"salonsync-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PeriodSales sums a stylist's sales for the pay period containing `at`,
// excluding canceled/deleted orders and the order being priced, so a
// recompute never counts the order against its own tier.
func PeriodSales(db *gorm.DB, stylistID uuid.UUID, at time.Time, excludeOrderID uuid.UUID) (float64, error) {
	start, end := utils.PeriodFor(at)

	var total float64
	query := db.Model(&models.Order{}).
		Where("stylist_id = ?", stylistID).
		Where("status NOT IN ?", []string{models.OrderStatusCanceled, models.OrderStatusDeleted}).
		Where("appointment_date >= ? AND appointment_date < ?", start, end)
	if excludeOrderID != uuid.Nil {
		query = query.Where("id <> ?", excludeOrderID)
	}
	err := query.Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}

// RateFor picks the commission percent for a stylist at the given
// period-to-date sales: the tier with the greatest threshold not exceeding
// the figure, or the flat rate when no tier qualifies.
func RateFor(db *gorm.DB, stylist *models.Stylist, periodSales float64) (float64, error) {
	var tiers []models.CommissionTier
	if err := db.Where("stylist_id = ?", stylist.ID).
		Order("sales_threshold asc").
		Find(&tiers).Error; err != nil {
		return 0, err
	}

	// Order() already sorts; keep deterministic selection even if a caller
	// preloaded tiers another way.
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].SalesThreshold < tiers[j].SalesThreshold
	})

	rate := stylist.CommissionRate
	matched := false
	for _, tier := range tiers {
		if tier.SalesThreshold <= periodSales {
			rate = tier.Rate
			matched = true
		}
	}
	if !matched {
		rate = stylist.CommissionRate
	}
	return rate, nil
}

// ResolveCommission computes the commission amount for an order total.
func ResolveCommission(db *gorm.DB, stylist *models.Stylist, totalAmount float64, at time.Time, excludeOrderID uuid.UUID) (rate, amount float64, err error) {
	sales, err := PeriodSales(db, stylist.ID, at, excludeOrderID)
	if err != nil {
		return 0, 0, err
	}
	rate, err = RateFor(db, stylist, sales)
	if err != nil {
		return 0, 0, err
	}
	return rate, utils.CommissionFor(totalAmount, rate), nil
}
