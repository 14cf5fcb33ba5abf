package services

import (
	"testing"

	"salonsync-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
// TranslateError is on, matching production, so duplicate-key detection
// behaves the same way.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Stylist{},
		&models.CommissionTier{},
		&models.Order{},
		&models.CommissionAdjustment{},
		&models.SyncSettings{},
		&models.TimeEntry{},
	))
	return db
}

func createStylist(t *testing.T, db *gorm.DB, staffID string, rate float64) *models.Stylist {
	t.Helper()

	stylist := models.Stylist{
		BookingStaffID: staffID,
		Name:           "Stylist " + staffID,
		CommissionRate: rate,
		Enabled:        true,
	}
	require.NoError(t, db.Create(&stylist).Error)
	return &stylist
}

func createTiers(t *testing.T, db *gorm.DB, stylist *models.Stylist, tiers ...models.CommissionTier) {
	t.Helper()

	for i := range tiers {
		tiers[i].StylistID = stylist.ID
		if tiers[i].Level == 0 {
			tiers[i].Level = i + 1
		}
		require.NoError(t, db.Create(&tiers[i]).Error)
	}
}
