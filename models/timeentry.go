package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntry is a clock-in/clock-out row written by the point-of-sale plugin.
// The payout report only reads these; hour tracking itself lives elsewhere.
type TimeEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StylistID uuid.UUID `gorm:"type:uuid;index;not null" json:"stylistId"`

	ClockIn  time.Time  `gorm:"not null" json:"clockIn"`
	ClockOut *time.Time `json:"clockOut"`

	CreatedAt time.Time `json:"createdAt"`
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// Hours returns worked hours for the entry, zero while still clocked in.
func (e *TimeEntry) Hours() float64 {
	if e.ClockOut == nil {
		return 0
	}
	return e.ClockOut.Sub(e.ClockIn).Hours()
}
