package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncSettings is a singleton row. Loaded once per request and passed by
// value into the sync services; never mutated in place by them.
type SyncSettings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	SyncOnBooked  bool `gorm:"default:true" json:"syncOnBooked"`
	SyncOnUpdated bool `gorm:"default:true" json:"syncOnUpdated"`

	// Tag applied to every draft order this service creates.
	OrderTag string `gorm:"default:'appointment'" json:"orderTag"`

	// Cached scheduling-platform business id, filled from the first webhook
	// that carries one.
	BusinessID string `json:"businessId"`

	// Commerce platform credentials. Owned by the settings admin surface,
	// consumed read-only by the sync path.
	ShopifyDomain string `json:"shopifyDomain"`
	ShopifyToken  string `json:"-"`

	NotifyStylistOnPaid bool `gorm:"default:false" json:"notifyStylistOnPaid"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *SyncSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// LoadSyncSettings returns the singleton settings row, creating it with
// defaults on first use.
func LoadSyncSettings(db *gorm.DB) (SyncSettings, error) {
	var settings SyncSettings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = SyncSettings{SyncOnBooked: true, SyncOnUpdated: true, OrderTag: "appointment"}
		err = db.Create(&settings).Error
	}
	return settings, err
}
