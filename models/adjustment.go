package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommissionAdjustment is the only way a commission figure changes outside of
// the tier computation. Signed amount; negative claws back.
type CommissionAdjustment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`

	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason string  `gorm:"not null" json:"reason"`

	CreatedByUserID uuid.UUID `gorm:"type:uuid" json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (a *CommissionAdjustment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
