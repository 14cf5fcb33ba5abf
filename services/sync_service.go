// services/sync_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"salonsync-backend/models"
	"salonsync-backend/shopify"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sync outcomes reported back to the webhook caller. Skips are informational;
// the upstream platform gets a 200 for all of them.
const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeSkipped  = "skipped"
	OutcomeCanceled = "canceled"
	OutcomeDeleted  = "deleted"
	OutcomePaid     = "paid"
	OutcomeNoMatch  = "no_match"
)

type SyncResult struct {
	Outcome string     `json:"outcome"`
	Reason  string     `json:"reason,omitempty"`
	OrderID *uuid.UUID `json:"orderId,omitempty"`
}

func skipped(reason string) SyncResult {
	return SyncResult{Outcome: OutcomeSkipped, Reason: reason}
}

// ValidationError marks a payload the upstream must fix; handlers answer 400
// and no partial state is created.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// CommerceBridge is the slice of the commerce platform the sync engine
// drives. *shopify.Client satisfies it.
type CommerceBridge interface {
	EnsureServiceProduct(ctx context.Context, title string, price float64) (tags string, variantID int64, err error)
	CreateDraftOrder(ctx context.Context, draft shopify.DraftOrder) (int64, error)
	DeleteDraftOrder(ctx context.Context, id string) error
	GetOrder(ctx context.Context, id string) (shopify.Order, error)
}

// Notifier sends best-effort notifications after a payout-relevant change.
type Notifier interface {
	OrderPaid(order *models.Order, stylist *models.Stylist)
}

// SyncService owns the order lifecycle: it reconciles booking and payment
// events into one durable order per appointment.
type SyncService struct {
	db       *gorm.DB
	bridge   CommerceBridge
	notifier Notifier
}

func NewSyncService(db *gorm.DB, bridge CommerceBridge) *SyncService {
	return &SyncService{db: db, bridge: bridge}
}

func (s *SyncService) WithNotifier(n Notifier) *SyncService {
	s.notifier = n
	return s
}

// HandleBookingEvent ingests one scheduling webhook. Settings are loaded by
// the caller once per request and passed by value.
func (s *SyncService) HandleBookingEvent(ctx context.Context, event *BookingEvent, settings models.SyncSettings, now time.Time) (SyncResult, error) {
	norm := event.Normalize(now)

	s.cacheBusinessID(settings, norm.BusinessID)

	if event.IsCancellation() {
		return s.handleCancellation(ctx, norm.AppointmentID, event.IsDeletion())
	}

	if norm.AppointmentID == "" {
		return skipped("no appointment id on event"), nil
	}

	var existing models.Order
	err := s.db.Where("appointment_id = ?", norm.AppointmentID).First(&existing).Error
	exists := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return SyncResult{}, err
	}

	// Booked and updated events have independent toggles.
	if exists && !settings.SyncOnUpdated {
		return skipped("sync on updated is disabled"), nil
	}
	if !exists && !settings.SyncOnBooked {
		return skipped("sync on booked is disabled"), nil
	}

	if reason, skip := SkipReason(norm); skip {
		return skipped(reason), nil
	}

	stylist, err := ResolveStylist(s.db, norm.StaffID, event.StaffName(), event.StaffRole())
	if err != nil {
		return SyncResult{}, err
	}
	if !stylist.Enabled {
		return skipped("stylist is disabled: " + stylist.Name), nil
	}

	if exists {
		return s.updateOrder(&existing, event, norm)
	}
	return s.createOrder(ctx, event, norm, stylist, settings)
}

// updateOrder patches customer/service/amount fields on a resynced order.
// Commission stays as computed at creation; only a payment recomputes it.
func (s *SyncService) updateOrder(order *models.Order, event *BookingEvent, norm NormalizedEvent) (SyncResult, error) {
	updates := map[string]interface{}{
		"total_amount":     norm.TotalAmount,
		"appointment_date": norm.AppointmentAt,
	}
	if name := event.CustomerName(); name != "" {
		updates["customer_name"] = name
	}
	if email := event.CustomerEmail(); email != "" {
		updates["customer_email"] = email
	}
	if norm.ServiceTitle != "" {
		updates["service_names"] = models.StringList{norm.ServiceTitle}
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Outcome: OutcomeUpdated, OrderID: &order.ID}, nil
}

func (s *SyncService) createOrder(ctx context.Context, event *BookingEvent, norm NormalizedEvent, stylist *models.Stylist, settings models.SyncSettings) (SyncResult, error) {
	rate, commission, err := ResolveCommission(s.db, stylist, norm.TotalAmount, norm.AppointmentAt, uuid.Nil)
	if err != nil {
		return SyncResult{}, err
	}

	appointmentID := norm.AppointmentID
	order := models.Order{
		AppointmentID:    &appointmentID,
		StylistID:        stylist.ID,
		CustomerName:     event.CustomerName(),
		CustomerEmail:    event.CustomerEmail(),
		TotalAmount:      norm.TotalAmount,
		CommissionAmount: commission,
		Status:           models.OrderStatusDraft,
		AppointmentDate:  norm.AppointmentAt,
	}
	if norm.ServiceTitle != "" {
		order.ServiceNames = models.StringList{norm.ServiceTitle}
	}

	// The draft order is best-effort: a commerce outage must not lose the
	// booking, so the order is persisted even without a draft id.
	draftID := s.createDraftOrder(ctx, &order, norm, stylist, settings)
	if draftID != "" {
		order.DraftOrderID = &draftID
	}

	if err := s.db.Create(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent delivery for the same appointment won the
			// create; treat ours as the update it really is.
			if draftID != "" {
				s.DeleteDraftBestEffort(ctx, draftID)
			}
			var existing models.Order
			if ferr := s.db.Where("appointment_id = ?", norm.AppointmentID).First(&existing).Error; ferr != nil {
				return SyncResult{}, ferr
			}
			return s.updateOrder(&existing, event, norm)
		}
		return SyncResult{}, err
	}
	log.Printf("[SYNC] created order %s for appointment %s (rate %.2f%%)", order.ID, appointmentID, rate)
	return SyncResult{Outcome: OutcomeCreated, OrderID: &order.ID}, nil
}

func (s *SyncService) createDraftOrder(ctx context.Context, order *models.Order, norm NormalizedEvent, stylist *models.Stylist, settings models.SyncSettings) string {
	title := norm.ServiceTitle
	if title == "" {
		title = "Service"
	}

	productTags, variantID, err := s.bridge.EnsureServiceProduct(ctx, title, norm.TotalAmount)
	if err != nil {
		log.Printf("[SYNC] product lookup failed for %q: %v", title, err)
		productTags, variantID = "", 0
	}

	line := shopify.DraftLineItem{Quantity: 1}
	if variantID != 0 {
		line.VariantID = variantID
	} else {
		// No sellable variant; fall back to a custom, untracked line item.
		line.Custom = true
		line.Title = title
		line.Price = fmt.Sprintf("%.2f", norm.TotalAmount)
	}

	draft := shopify.DraftOrder{
		LineItems: []shopify.DraftLineItem{line},
		Tags:      draftTags(settings.OrderTag, stylist.Name, productTags),
		Note:      "Appointment " + norm.AppointmentID,
	}
	if order.CustomerEmail != "" || order.CustomerName != "" {
		first, last := splitName(order.CustomerName)
		draft.Customer = &shopify.DraftCustomer{FirstName: first, LastName: last, Email: order.CustomerEmail}
	}

	id, err := s.bridge.CreateDraftOrder(ctx, draft)
	if err != nil {
		log.Printf("[SYNC] draft order creation failed for appointment %s: %v", norm.AppointmentID, err)
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// draftTags always combines the configured default tag, a stylist tag and
// the product's own tags.
func draftTags(defaultTag, stylistName, productTags string) string {
	tags := []string{}
	if defaultTag != "" {
		tags = append(tags, defaultTag)
	}
	tags = append(tags, "stylist:"+stylistName)
	if productTags != "" {
		tags = append(tags, productTags)
	}
	return strings.Join(tags, ", ")
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func (s *SyncService) handleCancellation(ctx context.Context, appointmentID string, deletion bool) (SyncResult, error) {
	if appointmentID == "" {
		return SyncResult{}, ValidationError{"cancellation event carries no appointment id"}
	}

	var order models.Order
	err := s.db.Where("appointment_id = ?", appointmentID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return skipped("nothing to cancel for appointment " + appointmentID), nil
	}
	if err != nil {
		return SyncResult{}, err
	}

	outcome := OutcomeCanceled
	status := models.OrderStatusCanceled
	if deletion {
		outcome = OutcomeDeleted
		status = models.OrderStatusDeleted
	}

	// Repeat cancellations are no-ops.
	if order.Status == models.OrderStatusCanceled || order.Status == models.OrderStatusDeleted {
		return SyncResult{Outcome: outcome, Reason: "already canceled", OrderID: &order.ID}, nil
	}
	if order.Status == models.OrderStatusPaid {
		return skipped("order already paid, not canceling"), nil
	}

	if order.DraftOrderID != nil {
		s.DeleteDraftBestEffort(ctx, *order.DraftOrderID)
	}

	updates := map[string]interface{}{
		"status":         status,
		"draft_order_id": nil,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Outcome: outcome, OrderID: &order.ID}, nil
}

// DeleteDraftBestEffort removes an external draft. Failure is logged, never
// fatal; the local order's lifecycle proceeds regardless.
func (s *SyncService) DeleteDraftBestEffort(ctx context.Context, draftID string) {
	if err := s.bridge.DeleteDraftOrder(ctx, draftID); err != nil {
		log.Printf("[SYNC] draft order %s deletion failed (continuing): %v", draftID, err)
	}
}

// HandleOrderPaid ingests a commerce payment event: match it to a local
// order, recompute commission at the paid total and transition to paid.
func (s *SyncService) HandleOrderPaid(ctx context.Context, paid shopify.Order, settings models.SyncSettings) (SyncResult, error) {
	order, err := s.matchPaidOrder(paid)
	if err != nil {
		return SyncResult{}, err
	}
	if order == nil {
		return SyncResult{Outcome: OutcomeNoMatch, Reason: "no local order matches sale"}, nil
	}
	if order.Status == models.OrderStatusPaid {
		return SyncResult{Outcome: OutcomePaid, Reason: "already paid", OrderID: &order.ID}, nil
	}

	total := parseMoney(paid.TotalPrice)
	tip := parseMoney(paid.TotalTip)

	var stylist models.Stylist
	if err := s.db.First(&stylist, "id = ?", order.StylistID).Error; err != nil {
		return SyncResult{}, err
	}

	// Same tier algorithm as creation, against the paid total, excluding
	// this order from the period figure.
	_, commission, err := ResolveCommission(s.db, &stylist, total, order.AppointmentDate, order.ID)
	if err != nil {
		return SyncResult{}, err
	}

	now := time.Now()
	shopifyID := strconv.FormatInt(paid.ID, 10)
	updates := map[string]interface{}{
		"total_amount":      total,
		"tip_amount":        tip,
		"commission_amount": commission,
		"shopify_order_id":  shopifyID,
		"paid_at":           now,
		"status":            models.OrderStatusPaid,
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return SyncResult{}, err
	}

	if s.notifier != nil && settings.NotifyStylistOnPaid {
		order.TotalAmount = total
		order.TipAmount = tip
		order.CommissionAmount = commission
		s.notifier.OrderPaid(order, &stylist)
	}
	return SyncResult{Outcome: OutcomePaid, OrderID: &order.ID}, nil
}

// matchPaidOrder finds the local order for an inbound sale: first by a
// previously stored sale id, then (for sales completed from a draft) by
// customer email among unpaid orders, disambiguated by total within a cent.
func (s *SyncService) matchPaidOrder(paid shopify.Order) (*models.Order, error) {
	saleID := strconv.FormatInt(paid.ID, 10)

	var order models.Order
	err := s.db.Where("shopify_order_id = ?", saleID).First(&order).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !strings.Contains(strings.ToLower(paid.SourceName), "draft") {
		return nil, nil
	}
	email := paid.Email
	if email == "" && paid.Customer != nil {
		email = paid.Customer.Email
	}
	if email == "" {
		return nil, nil
	}

	var candidates []models.Order
	if err := s.db.Where("status IN ? AND LOWER(customer_email) = ?",
		[]string{models.OrderStatusDraft, models.OrderStatusPendingCheckout}, strings.ToLower(email)).
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 1 {
		return &candidates[0], nil
	}
	if len(candidates) > 1 {
		total := parseMoney(paid.TotalPrice)
		var matched []models.Order
		for _, cand := range candidates {
			if math.Abs(cand.TotalAmount-total) <= 0.01 {
				matched = append(matched, cand)
			}
		}
		if len(matched) == 1 {
			return &matched[0], nil
		}
	}
	return nil, nil
}

func parseMoney(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// cacheBusinessID persists the scheduling business id the first time a
// webhook carries one. The passed settings value is never mutated.
func (s *SyncService) cacheBusinessID(settings models.SyncSettings, businessID string) {
	if businessID == "" || settings.BusinessID != "" || settings.ID == uuid.Nil {
		return
	}
	if err := s.db.Model(&models.SyncSettings{}).
		Where("id = ? AND (business_id = '' OR business_id IS NULL)", settings.ID).
		Update("business_id", businessID).Error; err != nil {
		log.Printf("[SYNC] failed to cache business id: %v", err)
	}
}
