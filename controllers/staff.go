// controllers/staff.go
package controllers

import (
	"net/http"

	"restropos-backend/models"
	"restropos-backend/store"
	"restropos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StaffController manages the staff accounts (waiters included).
type StaffController struct {
	Store *store.Store
}

// CreateStaffInput defines the expected JSON structure for adding staff
type CreateStaffInput struct {
	Name       string           `json:"name" binding:"required"`
	Role       models.Role      `json:"role" binding:"required,oneof=Admin Manager Staff Waiter"`
	Phone      string           `json:"phone"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
}

// UpdateStaffInput defines the expected JSON structure for updating staff
type UpdateStaffInput struct {
	Name       *string          `json:"name"`
	Role       *models.Role     `json:"role"`
	Phone      *string          `json:"phone"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
	IsActive   *bool            `json:"isActive"`
}

// AddStaff creates a staff account
func (sc *StaffController) AddStaff(c *gin.Context) {
	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	user, warn, err := sc.Store.AddUser(store.UserInput{
		Name:       input.Name,
		Role:       input.Role,
		Phone:      input.Phone,
		HourlyRate: input.HourlyRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.AttachWarning(gin.H{"user": user}, warn))
}

// GetStaff lists all staff accounts
func (sc *StaffController) GetStaff(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": sc.Store.Settings().Users})
}

// UpdateStaff edits a staff account
func (sc *StaffController) UpdateStaff(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user, warn, err := sc.Store.UpdateUser(userUUID, store.UserUpdate{
		Name:       input.Name,
		Role:       input.Role,
		Phone:      input.Phone,
		HourlyRate: input.HourlyRate,
		IsActive:   input.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"user": user}, warn))
}

// DeleteStaff removes an account and clears its table assignments
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	warn, err := sc.Store.DeleteUser(userUUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"message": "Staff member deleted successfully"}, warn))
}
