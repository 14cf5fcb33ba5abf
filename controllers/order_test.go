package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonsync-backend/config"
	"salonsync-backend/controllers"
	"salonsync-backend/models"
	"salonsync-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedJSON(t *testing.T, router http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	token, err := utils.GenerateToken(uuid.NewString())
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedStylist(t *testing.T, rate float64) *models.Stylist {
	t.Helper()

	stylist := models.Stylist{
		BookingStaffID: uuid.NewString(),
		Name:           "Alex Chen",
		CommissionRate: rate,
		Enabled:        true,
	}
	require.NoError(t, config.DB.Create(&stylist).Error)
	return &stylist
}

func TestManualOrderComputesCommission(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")
	stylist := seedStylist(t, 40)

	total := 80.0
	w := authedJSON(t, router, http.MethodPost, "/api/orders", controllers.ManualOrderInput{
		StylistID:    stylist.ID,
		CustomerName: "Walk In",
		ServiceNames: []string{"Color"},
		TotalAmount:  &total,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Nil(t, order.AppointmentID)
	assert.True(t, order.IsManual)
	assert.Equal(t, 32.0, order.CommissionAmount)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
}

func TestManualOrderValidation(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")
	stylist := seedStylist(t, 40)

	// No amount.
	w := authedJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"stylistId":    stylist.ID,
		"customerName": "Walk In",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No customer.
	w = authedJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"stylistId":   stylist.ID,
		"totalAmount": 50,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was persisted.
	var count int64
	config.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestVoidAndRestoreOrder(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")
	stylist := seedStylist(t, 40)

	appointmentID := "a1"
	order := models.Order{
		AppointmentID:   &appointmentID,
		StylistID:       stylist.ID,
		TotalAmount:     100,
		Status:          models.OrderStatusDraft,
		AppointmentDate: time.Now(),
	}
	require.NoError(t, config.DB.Create(&order).Error)

	w := authedJSON(t, router, http.MethodPost, "/api/orders/"+order.ID.String()+"/void",
		controllers.VoidOrderInput{Reason: "double booked"})
	require.Equal(t, http.StatusOK, w.Code)

	var voided models.Order
	require.NoError(t, config.DB.First(&voided, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusCanceled, voided.Status)
	assert.Equal(t, "double booked", voided.VoidReason)
	assert.NotNil(t, voided.VoidedAt)

	// Still fetchable by appointment id: the row is never removed.
	var byAppointment models.Order
	require.NoError(t, config.DB.First(&byAppointment, "appointment_id = ?", "a1").Error)
	assert.Equal(t, order.ID, byAppointment.ID)

	// Restore takes it back to draft.
	w = authedJSON(t, router, http.MethodPost, "/api/orders/"+order.ID.String()+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var restored models.Order
	require.NoError(t, config.DB.First(&restored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDraft, restored.Status)
	assert.Nil(t, restored.VoidedAt)
	assert.Empty(t, restored.VoidReason)

	// Restoring a draft order is rejected.
	w = authedJSON(t, router, http.MethodPost, "/api/orders/"+order.ID.String()+"/restore", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestoreClearsPaymentState(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")
	stylist := seedStylist(t, 40)

	paidAt := time.Now()
	saleID := "555"
	order := models.Order{
		StylistID:       stylist.ID,
		TotalAmount:     100,
		Status:          models.OrderStatusPaid,
		AppointmentDate: time.Now(),
		PaidAt:          &paidAt,
		ShopifyOrderID:  &saleID,
		IsManual:        true,
	}
	require.NoError(t, config.DB.Create(&order).Error)

	w := authedJSON(t, router, http.MethodPost, "/api/orders/"+order.ID.String()+"/void",
		controllers.VoidOrderInput{Reason: "charged in error"})
	require.Equal(t, http.StatusOK, w.Code)

	w = authedJSON(t, router, http.MethodPost, "/api/orders/"+order.ID.String()+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var restored models.Order
	require.NoError(t, config.DB.First(&restored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDraft, restored.Status)
	assert.Nil(t, restored.PaidAt)
	assert.Nil(t, restored.ShopifyOrderID)
}

func TestVoidRequiresReason(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")
	stylist := seedStylist(t, 40)

	order := models.Order{
		StylistID:       stylist.ID,
		TotalAmount:     100,
		Status:          models.OrderStatusDraft,
		AppointmentDate: time.Now(),
		IsManual:        true,
	}
	require.NoError(t, config.DB.Create(&order).Error)

	w := authedJSON(t, router, http.MethodPost, "/api/orders/"+order.ID.String()+"/void",
		map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdjustmentsFlow(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")
	stylist := seedStylist(t, 40)

	order := models.Order{
		StylistID:        stylist.ID,
		TotalAmount:      100,
		CommissionAmount: 40,
		Status:           models.OrderStatusPaid,
		AppointmentDate:  time.Now(),
		IsManual:         true,
	}
	require.NoError(t, config.DB.Create(&order).Error)

	amount := -10.0
	w := authedJSON(t, router, http.MethodPost, "/api/orders/"+order.ID.String()+"/adjustments",
		controllers.AdjustmentInput{Amount: &amount, Reason: "redo discount"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = authedJSON(t, router, http.MethodGet, "/api/orders/"+order.ID.String()+"/adjustments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var adjustments []models.CommissionAdjustment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adjustments))
	require.Len(t, adjustments, 1)
	assert.Equal(t, -10.0, adjustments[0].Amount)

	// The computed commission itself is untouched.
	var stored models.Order
	require.NoError(t, config.DB.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, 40.0, stored.CommissionAmount)
}

func TestRequiresAuth(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("JWT_SECRET", "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
