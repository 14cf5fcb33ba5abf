// controllers/webhook.go
package controllers

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"salonsync-backend/config"
	"salonsync-backend/models"
	"salonsync-backend/services"
	"salonsync-backend/shopify"
	"salonsync-backend/utils"

	"github.com/gin-gonic/gin"
)

var (
	notifier     *services.NotifyService
	notifierOnce sync.Once
)

func paidNotifier() *services.NotifyService {
	notifierOnce.Do(func() {
		notifier = services.NewNotifyService(config.DB)
	})
	return notifier
}

func newSyncService(settings models.SyncSettings) *services.SyncService {
	bridge := shopify.NewClient(settings.ShopifyDomain, settings.ShopifyToken)
	return services.NewSyncService(config.DB, bridge).WithNotifier(paidNotifier())
}

// BookingWebhook ingests scheduling platform events: bookings, updates,
// cancellations and deletions. All handled outcomes, including skips,
// answer 200 so the upstream stops retrying.
func BookingWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Unable to read request body")
		return
	}

	event, err := services.ParseBookingEvent(body)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	settings, err := models.LoadSyncSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load sync settings")
		return
	}

	result, err := newSyncService(settings).HandleBookingEvent(c.Request.Context(), event, settings, time.Now())
	if err != nil {
		var validation services.ValidationError
		if errors.As(err, &validation) {
			utils.RespondWithError(c, http.StatusBadRequest, validation.Message)
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Sync failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// ShopifyOrderPaidWebhook ingests the commerce platform's orders/paid event
// and matches it back to a local order. A missing match is a handled
// outcome, not an error.
func ShopifyOrderPaidWebhook(c *gin.Context) {
	var paid shopify.Order
	if err := c.ShouldBindJSON(&paid); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	settings, err := models.LoadSyncSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load sync settings")
		return
	}

	result, err := newSyncService(settings).HandleOrderPaid(c.Request.Context(), paid, settings)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Payment sync failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
