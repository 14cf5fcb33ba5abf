// controllers/settings.go
package controllers

import (
	"net/http"

	"salonsync-backend/config"
	"salonsync-backend/models"
	"salonsync-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateSettingsInput struct {
	SyncOnBooked        *bool   `json:"syncOnBooked"`
	SyncOnUpdated       *bool   `json:"syncOnUpdated"`
	OrderTag            *string `json:"orderTag"`
	ShopifyDomain       *string `json:"shopifyDomain"`
	ShopifyToken        *string `json:"shopifyToken"`
	NotifyStylistOnPaid *bool   `json:"notifyStylistOnPaid"`
}

func GetSettings(c *gin.Context) {
	settings, err := models.LoadSyncSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := models.LoadSyncSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if input.SyncOnBooked != nil {
		settings.SyncOnBooked = *input.SyncOnBooked
	}
	if input.SyncOnUpdated != nil {
		settings.SyncOnUpdated = *input.SyncOnUpdated
	}
	if input.OrderTag != nil {
		settings.OrderTag = *input.OrderTag
	}
	if input.ShopifyDomain != nil {
		settings.ShopifyDomain = *input.ShopifyDomain
	}
	if input.ShopifyToken != nil {
		settings.ShopifyToken = *input.ShopifyToken
	}
	if input.NotifyStylistOnPaid != nil {
		settings.NotifyStylistOnPaid = *input.NotifyStylistOnPaid
	}

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
