// services/reconcile_service.go
package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"salonsync-backend/models"
	"salonsync-backend/shopify"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DraftReader is the read-only slice of the commerce platform the nightly
// sweep needs. *shopify.Client satisfies it (and CommerceBridge).
type DraftReader interface {
	GetDraftOrder(ctx context.Context, id string) (shopify.DraftOrder, error)
	GetOrder(ctx context.Context, id string) (shopify.Order, error)
}

// ReconcileService catches drafts that were completed at the register while
// a payment webhook was missed: stale draft orders are re-checked against
// the commerce platform and promoted through the normal paid path.
type ReconcileService struct {
	db     *gorm.DB
	bridge DraftReader
	sync   *SyncService
}

func NewReconcileService(db *gorm.DB, bridge DraftReader, sync *SyncService) *ReconcileService {
	return &ReconcileService{db: db, bridge: bridge, sync: sync}
}

func (s *ReconcileService) StartScheduler() {
	c := cron.New()

	// Run nightly at 3 AM, after the register has closed out.
	c.AddFunc("0 3 * * *", func() {
		s.SweepStaleDrafts(context.Background())
	})

	c.Start()
	log.Println("Draft reconciliation scheduler started")
}

// SweepStaleDrafts re-checks draft orders older than a day.
func (s *ReconcileService) SweepStaleDrafts(ctx context.Context) {
	log.Println("Starting stale draft sweep...")

	settings, err := models.LoadSyncSettings(s.db)
	if err != nil {
		log.Printf("[RECONCILE] failed to load settings: %v", err)
		return
	}

	cutoff := time.Now().Add(-24 * time.Hour)

	var orders []models.Order
	if err := s.db.Where("status IN ? AND draft_order_id IS NOT NULL AND created_at < ?",
		[]string{models.OrderStatusDraft, models.OrderStatusPendingCheckout}, cutoff).
		Find(&orders).Error; err != nil {
		log.Printf("[RECONCILE] failed to list stale drafts: %v", err)
		return
	}

	checked, promoted := 0, 0
	for _, order := range orders {
		checked++
		draft, err := s.bridge.GetDraftOrder(ctx, *order.DraftOrderID)
		if err != nil {
			log.Printf("[RECONCILE] draft %s lookup failed: %v", *order.DraftOrderID, err)
			continue
		}
		// An invoiced draft is sitting in checkout; track that until the
		// payment arrives.
		if draft.Status == "invoice_sent" && order.Status == models.OrderStatusDraft {
			if err := s.db.Model(&order).Update("status", models.OrderStatusPendingCheckout).Error; err != nil {
				log.Printf("[RECONCILE] failed to mark order %s pending checkout: %v", order.ID, err)
			}
			continue
		}
		if draft.Status != "completed" || draft.OrderID == nil {
			continue
		}

		paid, err := s.bridge.GetOrder(ctx, strconv.FormatInt(*draft.OrderID, 10))
		if err != nil {
			log.Printf("[RECONCILE] order %d lookup failed: %v", *draft.OrderID, err)
			continue
		}

		result, err := s.sync.HandleOrderPaid(ctx, paid, settings)
		if err != nil {
			log.Printf("[RECONCILE] paid promotion failed for order %s: %v", order.ID, err)
			continue
		}
		if result.Outcome == OutcomePaid {
			promoted++
		}
	}

	log.Printf("Stale draft sweep completed: %d checked, %d promoted", checked, promoted)
}
