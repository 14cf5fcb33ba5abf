package services

import (
	"testing"

	"salonsync-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStylistCreatesUnknownAtDefaultRate(t *testing.T) {
	db := newTestDB(t)

	stylist, err := ResolveStylist(db, "p1", "Alex Chen", "Senior Stylist")
	require.NoError(t, err)

	assert.Equal(t, "p1", stylist.BookingStaffID)
	assert.Equal(t, "Alex Chen", stylist.Name)
	assert.Equal(t, "Senior Stylist", stylist.Role)
	assert.Equal(t, models.DefaultCommissionRate, stylist.CommissionRate)
	assert.True(t, stylist.Enabled)
}

func TestResolveStylistWithoutNameGetsPlaceholder(t *testing.T) {
	db := newTestDB(t)

	stylist, err := ResolveStylist(db, "p2", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Unknown stylist p2", stylist.Name)
}

func TestResolveStylistRefreshesPlaceholderName(t *testing.T) {
	db := newTestDB(t)

	_, err := ResolveStylist(db, "p3", "", "")
	require.NoError(t, err)

	stylist, err := ResolveStylist(db, "p3", "Sam Ortiz", "Colorist")
	require.NoError(t, err)
	assert.Equal(t, "Sam Ortiz", stylist.Name)
	assert.Equal(t, "Colorist", stylist.Role)

	var stored models.Stylist
	require.NoError(t, db.First(&stored, "booking_staff_id = ?", "p3").Error)
	assert.Equal(t, "Sam Ortiz", stored.Name)
}

// An administrator's configuration must survive re-synchronization: the
// resolver never re-rates, re-enables or renames a configured stylist.
func TestResolveStylistPreservesConfiguredRecord(t *testing.T) {
	db := newTestDB(t)

	configured := models.Stylist{
		BookingStaffID: "p4",
		Name:           "Dana Lee",
		CommissionRate: 55,
		Enabled:        true,
	}
	require.NoError(t, db.Create(&configured).Error)
	// Disabled by an administrator after creation.
	require.NoError(t, db.Model(&configured).Update("enabled", false).Error)

	stylist, err := ResolveStylist(db, "p4", "Wrong Name", "Wrong Role")
	require.NoError(t, err)

	assert.Equal(t, "Dana Lee", stylist.Name)
	assert.Equal(t, 55.0, stylist.CommissionRate)
	assert.False(t, stylist.Enabled, "disabled stylist is returned for inspection, not re-enabled")
}

func TestResolveStylistRequiresStaffID(t *testing.T) {
	db := newTestDB(t)

	_, err := ResolveStylist(db, "", "Name", "")
	assert.Error(t, err)
}
