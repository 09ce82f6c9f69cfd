// controllers/attendance.go
package controllers

import (
	"net/http"

	"restropos-backend/store"
	"restropos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceController exposes the time ledger: check-in/out, breaks, logs
// and the derived per-user summary.
type AttendanceController struct {
	Store *store.Store
}

// AttendanceInput identifies the staff member clocking an event
type AttendanceInput struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

// CheckIn opens a work session
func (ac *AttendanceController) CheckIn(c *gin.Context) {
	var input AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, warn, err := ac.Store.CheckIn(input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.AttachWarning(gin.H{"timeLog": entry}, warn))
}

// CheckOut closes the open work session
func (ac *AttendanceController) CheckOut(c *gin.Context) {
	var input AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, warn, err := ac.Store.CheckOut(input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"timeLog": entry}, warn))
}

// StartBreak begins a break within the open session
func (ac *AttendanceController) StartBreak(c *gin.Context) {
	var input AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, warn, err := ac.Store.StartBreak(input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"timeLog": entry}, warn))
}

// EndBreak ends the break and accumulates its minutes
func (ac *AttendanceController) EndBreak(c *gin.Context) {
	var input AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, warn, err := ac.Store.EndBreak(input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"timeLog": entry}, warn))
}

// GetTimeLogs lists sessions, filtered by ?userId= and ?date=YYYY-MM-DD
func (ac *AttendanceController) GetTimeLogs(c *gin.Context) {
	var userID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
			return
		}
		userID = &parsed
	}

	c.JSON(http.StatusOK, gin.H{"timeLogs": ac.Store.TimeLogs(userID, c.Query("date"))})
}

// GetSummary aggregates worked minutes and pay per staff member
func (ac *AttendanceController) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"summary": ac.Store.AttendanceSummaries()})
}
