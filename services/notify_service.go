// services/notify_service.go
package services

import (
	"fmt"
	"log"
	"os"

	"salonsync-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotifyService sends stylists an SMS when one of their orders is paid.
// Everything here is best-effort; a messaging outage never blocks a sync.
type NotifyService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewNotifyService(db *gorm.DB) *NotifyService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotifyService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

// OrderPaid implements the sync notifier hook.
func (s *NotifyService) OrderPaid(order *models.Order, stylist *models.Stylist) {
	if stylist.Phone == "" {
		return
	}

	body := fmt.Sprintf("Order paid: %s. Total $%.2f, your commission $%.2f",
		order.CustomerName, order.TotalAmount, order.CommissionAmount)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(stylist.Phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("[NOTIFY] SMS to %s failed: %v", stylist.Name, err)
		return
	}
	log.Printf("[NOTIFY] paid-order SMS sent to %s", stylist.Name)
}
