// controllers/stylist.go
package controllers

import (
	"errors"
	"net/http"

	"salonsync-backend/config"
	"salonsync-backend/models"
	"salonsync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateStylistInput struct {
	BookingStaffID string   `json:"bookingStaffId" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	Role           string   `json:"role"`
	Phone          string   `json:"phone"`
	ShopifyStaffID *string  `json:"shopifyStaffId"`
	CommissionRate *float64 `json:"commissionRate"`
	HourlyRate     float64  `json:"hourlyRate"`
}

type UpdateStylistInput struct {
	Name           *string  `json:"name"`
	Role           *string  `json:"role"`
	Phone          *string  `json:"phone"`
	ShopifyStaffID *string  `json:"shopifyStaffId"`
	CommissionRate *float64 `json:"commissionRate"`
	HourlyRate     *float64 `json:"hourlyRate"`
	Enabled        *bool    `json:"enabled"`
}

type TierInput struct {
	Level          int     `json:"level"`
	SalesThreshold float64 `json:"salesThreshold"`
	Rate           float64 `json:"rate" binding:"min=0,max=100"`
}

type SetTiersInput struct {
	Tiers []TierInput `json:"tiers" binding:"required"`
}

type SetPinInput struct {
	Pin string `json:"pin" binding:"required,min=4,max=8"`
}

func GetStylists(c *gin.Context) {
	var stylists []models.Stylist
	query := config.DB.Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("sales_threshold asc")
	}).Order("name asc")

	if c.Query("enabled") == "true" {
		query = query.Where("enabled = ?", true)
	}

	if err := query.Find(&stylists).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stylists")
		return
	}

	c.JSON(http.StatusOK, stylists)
}

func CreateStylist(c *gin.Context) {
	var input CreateStylistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	rate := models.DefaultCommissionRate
	if input.CommissionRate != nil {
		rate = *input.CommissionRate
	}

	stylist := models.Stylist{
		BookingStaffID: input.BookingStaffID,
		Name:           input.Name,
		Role:           input.Role,
		Phone:          input.Phone,
		ShopifyStaffID: input.ShopifyStaffID,
		CommissionRate: rate,
		HourlyRate:     input.HourlyRate,
		Enabled:        true,
	}

	if err := config.DB.Create(&stylist).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "A stylist with that scheduling id already exists")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create stylist")
		return
	}

	c.JSON(http.StatusCreated, stylist)
}

func UpdateStylist(c *gin.Context) {
	stylistUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylist ID format")
		return
	}

	var input UpdateStylistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var stylist models.Stylist
	if err := config.DB.First(&stylist, "id = ?", stylistUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Stylist not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		stylist.Name = *input.Name
	}
	if input.Role != nil {
		stylist.Role = *input.Role
	}
	if input.Phone != nil {
		stylist.Phone = *input.Phone
	}
	if input.ShopifyStaffID != nil {
		stylist.ShopifyStaffID = input.ShopifyStaffID
	}
	if input.CommissionRate != nil {
		stylist.CommissionRate = *input.CommissionRate
	}
	if input.HourlyRate != nil {
		stylist.HourlyRate = *input.HourlyRate
	}
	if input.Enabled != nil {
		stylist.Enabled = *input.Enabled
	}

	if err := config.DB.Save(&stylist).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update stylist")
		return
	}

	c.JSON(http.StatusOK, stylist)
}

// SetStylistTiers replaces the whole tier table in one call. Thresholds must
// be strictly ascending so tier selection stays unambiguous.
func SetStylistTiers(c *gin.Context) {
	stylistUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylist ID format")
		return
	}

	var input SetTiersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for i := 1; i < len(input.Tiers); i++ {
		if input.Tiers[i].SalesThreshold <= input.Tiers[i-1].SalesThreshold {
			utils.RespondWithError(c, http.StatusBadRequest, "Tier thresholds must be strictly ascending")
			return
		}
	}

	var stylist models.Stylist
	if err := config.DB.First(&stylist, "id = ?", stylistUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Stylist not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("stylist_id = ?", stylist.ID).Delete(&models.CommissionTier{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing tiers")
		return
	}

	tiers := make([]models.CommissionTier, 0, len(input.Tiers))
	for i, tier := range input.Tiers {
		level := tier.Level
		if level == 0 {
			level = i + 1
		}
		record := models.CommissionTier{
			StylistID:      stylist.ID,
			Level:          level,
			SalesThreshold: tier.SalesThreshold,
			Rate:           tier.Rate,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save tiers")
			return
		}
		tiers = append(tiers, record)
	}

	tx.Commit()

	c.JSON(http.StatusOK, tiers)
}

// SetStylistPin stores the bcrypt hash of a point-of-sale PIN.
func SetStylistPin(c *gin.Context) {
	stylistUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid stylist ID format")
		return
	}

	var input SetPinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "PIN must be 4-8 characters")
		return
	}

	hash, err := utils.HashPin(input.Pin)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash PIN")
		return
	}

	result := config.DB.Model(&models.Stylist{}).Where("id = ?", stylistUUID).
		Update("pin_hash", hash)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to set PIN")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Stylist not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "PIN updated"})
}
