package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses. Cancellation and deletion are statuses, never row deletion,
// so historical reporting keeps working after an appointment goes away.
const (
	OrderStatusDraft           = "draft"
	OrderStatusPendingCheckout = "pending_checkout"
	OrderStatusPaid            = "paid"
	OrderStatusCanceled        = "canceled"
	OrderStatusDeleted         = "deleted"
)

// StringList is stored as a JSON array column (service names keep their order).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// Order is the durable record reconciling one appointment (or a manual sale)
// to a commercial transaction. One row per appointment, enforced by the
// unique index on AppointmentID.
type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// External correlation ids. AppointmentID is nil only for manual sales.
	AppointmentID  *string `gorm:"uniqueIndex" json:"appointmentId"`
	DraftOrderID   *string `gorm:"index" json:"draftOrderId"`
	ShopifyOrderID *string `gorm:"index" json:"shopifyOrderId"`

	StylistID uuid.UUID `gorm:"type:uuid;index;not null" json:"stylistId"`
	Stylist   *Stylist  `gorm:"foreignKey:StylistID" json:"stylist,omitempty"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `gorm:"index" json:"customerEmail"`

	ServiceNames StringList `gorm:"type:jsonb;default:'[]'" json:"serviceNames"`

	TotalAmount      float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	TipAmount        float64 `gorm:"type:decimal(10,2);default:0.0" json:"tipAmount"`
	CommissionAmount float64 `gorm:"type:decimal(10,2);default:0.0" json:"commissionAmount"`

	Status string `gorm:"type:varchar(20);default:'draft';index" json:"status"`

	AppointmentDate time.Time  `gorm:"index" json:"appointmentDate"`
	PaidAt          *time.Time `json:"paidAt"`
	VoidedAt        *time.Time `json:"voidedAt"`
	VoidReason      string     `json:"voidReason"`

	IsManual bool `gorm:"default:false" json:"isManual"`

	Adjustments []CommissionAdjustment `gorm:"foreignKey:OrderID" json:"adjustments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// Active reports whether the order should count toward period sales.
func (o *Order) Active() bool {
	return o.Status != OrderStatusCanceled && o.Status != OrderStatusDeleted
}
