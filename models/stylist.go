package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnknownStylistPrefix marks stylist records auto-created from a booking event
// before an administrator has named them. The identity resolver may overwrite
// a name with this prefix; deliberately configured names are left alone.
const UnknownStylistPrefix = "Unknown stylist"

// DefaultCommissionRate applies to auto-created stylists until an
// administrator configures a real rate or tier table.
const DefaultCommissionRate = 40.0

// Stylist maps an external scheduling staff member to local commission
// configuration. Exactly one row per BookingStaffID.
type Stylist struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	BookingStaffID string  `gorm:"uniqueIndex;not null" json:"bookingStaffId"`
	ShopifyStaffID *string `gorm:"index" json:"shopifyStaffId"`

	Name  string `gorm:"not null" json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`

	// Flat commission percent, used when no tier qualifies.
	CommissionRate float64 `gorm:"type:decimal(5,2);default:40.0" json:"commissionRate"`
	HourlyRate     float64 `gorm:"type:decimal(10,2);default:0.0" json:"hourlyRate"`

	// Disabled stylists are skipped by sync but kept for historical orders.
	Enabled bool `gorm:"default:true" json:"enabled"`

	// Bcrypt hash of the point-of-sale PIN. Never serialized.
	PinHash string `json:"-"`

	Tiers  []CommissionTier `gorm:"foreignKey:StylistID" json:"tiers,omitempty"`
	Orders []Order          `gorm:"foreignKey:StylistID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Stylist) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// CommissionTier is one (threshold, rate) step. The highest threshold not
// exceeding period-to-date sales determines the active rate.
type CommissionTier struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StylistID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_stylist_threshold,priority:1" json:"stylistId"`

	Level          int     `gorm:"not null" json:"level"`
	SalesThreshold float64 `gorm:"type:decimal(10,2);not null;uniqueIndex:idx_stylist_threshold,priority:2" json:"salesThreshold"`
	Rate           float64 `gorm:"type:decimal(5,2);not null" json:"rate"`
}

func (t *CommissionTier) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
