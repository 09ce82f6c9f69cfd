// controllers/settings.go
package controllers

import (
	"net/http"

	"restropos-backend/models"
	"restropos-backend/store"
	"restropos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SettingsController exposes the restaurant profile: identity, charge rates
// and the printer list.
type SettingsController struct {
	Store *store.Store
}

// UpdateSettingsInput defines the expected JSON structure for settings
// changes. Rates are decimal fractions in [0, 1); changing them never
// touches historical orders.
type UpdateSettingsInput struct {
	RestaurantName        *string           `json:"restaurantName"`
	RestaurantAddress     *string           `json:"restaurantAddress"`
	RestaurantPhone       *string           `json:"restaurantPhone"`
	VATRate               *decimal.Decimal  `json:"vatRate"`
	ServiceChargeRate     *decimal.Decimal  `json:"serviceChargeRate"`
	DefaultDeliveryCharge *decimal.Decimal  `json:"defaultDeliveryCharge"`
	Printers              *[]models.Printer `json:"printers"`
}

// GetSettings retrieves the restaurant profile and rates
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings := sc.Store.Settings()
	c.JSON(http.StatusOK, gin.H{
		"restaurantName":        settings.RestaurantName,
		"restaurantAddress":     settings.RestaurantAddress,
		"restaurantPhone":       settings.RestaurantPhone,
		"vatRate":               settings.VATRate,
		"serviceChargeRate":     settings.ServiceChargeRate,
		"defaultDeliveryCharge": settings.DefaultDeliveryCharge,
		"printers":              settings.Printers,
	})
}

// UpdateSettings applies profile, rate and printer changes
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, warn, err := sc.Store.UpdateSettings(store.SettingsUpdate{
		RestaurantName:        input.RestaurantName,
		RestaurantAddress:     input.RestaurantAddress,
		RestaurantPhone:       input.RestaurantPhone,
		VATRate:               input.VATRate,
		ServiceChargeRate:     input.ServiceChargeRate,
		DefaultDeliveryCharge: input.DefaultDeliveryCharge,
		Printers:              input.Printers,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{
		"restaurantName":        settings.RestaurantName,
		"restaurantAddress":     settings.RestaurantAddress,
		"restaurantPhone":       settings.RestaurantPhone,
		"vatRate":               settings.VATRate,
		"serviceChargeRate":     settings.ServiceChargeRate,
		"defaultDeliveryCharge": settings.DefaultDeliveryCharge,
		"printers":              settings.Printers,
	}, warn))
}
