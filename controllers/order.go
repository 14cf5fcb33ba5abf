// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonsync-backend/config"
	"salonsync-backend/models"
	"salonsync-backend/services"
	"salonsync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ManualOrderInput is a sale entered by an administrator, not synced from an
// appointment. No appointment id, so it never collides with webhook orders.
type ManualOrderInput struct {
	StylistID     uuid.UUID  `json:"stylistId" binding:"required"`
	CustomerName  string     `json:"customerName" binding:"required"`
	CustomerEmail string     `json:"customerEmail"`
	ServiceNames  []string   `json:"serviceNames"`
	TotalAmount   *float64   `json:"totalAmount" binding:"required"`
	TipAmount     float64    `json:"tipAmount"`
	Date          *time.Time `json:"date"`
}

type VoidOrderInput struct {
	Reason string `json:"reason" binding:"required"`
}

type AdjustmentInput struct {
	Amount *float64 `json:"amount" binding:"required"`
	Reason string   `json:"reason" binding:"required"`
}

type FixDateInput struct {
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
}

// GetOrders lists orders, newest appointment first, with optional filters.
func GetOrders(c *gin.Context) {
	query := config.DB.Preload("Stylist").Order("appointment_date desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if stylistID := c.Query("stylistId"); stylistID != "" {
		query = query.Where("stylist_id = ?", stylistID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("appointment_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("appointment_date < ?", to)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func GetOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.Preload("Stylist").Preload("Adjustments").
		First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// CreateManualOrder records a walk-in or historical sale. Commission is
// computed with the same tier algorithm as synced orders.
func CreateManualOrder(c *gin.Context) {
	var input ManualOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if *input.TotalAmount < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Total amount cannot be negative")
		return
	}

	var stylist models.Stylist
	if err := config.DB.First(&stylist, "id = ?", input.StylistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Stylist not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	_, commission, err := services.ResolveCommission(config.DB, &stylist, *input.TotalAmount, date, uuid.Nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute commission")
		return
	}

	order := models.Order{
		StylistID:        stylist.ID,
		CustomerName:     input.CustomerName,
		CustomerEmail:    input.CustomerEmail,
		ServiceNames:     models.StringList(input.ServiceNames),
		TotalAmount:      *input.TotalAmount,
		TipAmount:        input.TipAmount,
		CommissionAmount: commission,
		Status:           models.OrderStatusPaid,
		AppointmentDate:  date,
		IsManual:         true,
	}
	now := time.Now()
	order.PaidAt = &now

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// VoidOrder cancels an order with a reason. The row is kept; cancellation is
// a status, never a deletion.
func VoidOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input VoidOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "A void reason is required")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.Status == models.OrderStatusCanceled || order.Status == models.OrderStatusDeleted {
		c.JSON(http.StatusOK, order)
		return
	}

	settings, err := models.LoadSyncSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load sync settings")
		return
	}
	if order.DraftOrderID != nil {
		// Best-effort; the local void proceeds even if the draft lingers.
		newSyncService(settings).DeleteDraftBestEffort(c.Request.Context(), *order.DraftOrderID)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         models.OrderStatusCanceled,
		"draft_order_id": nil,
		"voided_at":      now,
		"void_reason":    input.Reason,
	}
	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to void order")
		return
	}

	config.DB.First(&order, "id = ?", orderUUID)
	c.JSON(http.StatusOK, order)
}

// RestoreOrder is the one transition back: canceled or deleted to draft.
func RestoreOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.Status != models.OrderStatusCanceled && order.Status != models.OrderStatusDeleted {
		utils.RespondWithError(c, http.StatusBadRequest, "Only canceled or deleted orders can be restored")
		return
	}

	// A restored order goes back to the start of the lifecycle, so payment
	// state from before the void is cleared with the void fields.
	updates := map[string]interface{}{
		"status":           models.OrderStatusDraft,
		"voided_at":        nil,
		"void_reason":      "",
		"paid_at":          nil,
		"shopify_order_id": nil,
	}
	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore order")
		return
	}

	config.DB.First(&order, "id = ?", orderUUID)
	c.JSON(http.StatusOK, order)
}

// FixAppointmentDate corrects a mis-parsed appointment date.
func FixAppointmentDate(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input FixDateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.Order{}).Where("id = ?", orderUUID).
		Update("appointment_date", input.AppointmentDate)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	var order models.Order
	config.DB.First(&order, "id = ?", orderUUID)
	c.JSON(http.StatusOK, order)
}

// CreateAdjustment is the only way to move a commission figure off its
// computed value.
func CreateAdjustment(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input AdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	adjustment := models.CommissionAdjustment{
		OrderID: order.ID,
		Amount:  *input.Amount,
		Reason:  input.Reason,
	}
	if userID, exists := c.Get("userId"); exists {
		if str, ok := userID.(string); ok {
			if parsed, err := uuid.Parse(str); err == nil {
				adjustment.CreatedByUserID = parsed
			}
		}
	}

	if err := config.DB.Create(&adjustment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create adjustment")
		return
	}

	c.JSON(http.StatusCreated, adjustment)
}

func GetAdjustments(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var adjustments []models.CommissionAdjustment
	if err := config.DB.Where("order_id = ?", orderUUID).
		Order("created_at asc").Find(&adjustments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve adjustments")
		return
	}

	c.JSON(http.StatusOK, adjustments)
}
