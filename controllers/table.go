// controllers/table.go
package controllers

import (
	"net/http"

	"restropos-backend/models"
	"restropos-backend/store"
	"restropos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TableController handles the floor plan: table definitions, their status
// and the in-progress order-taking sessions.
type TableController struct {
	Store *store.Store
}

// CreateTableInput defines the expected JSON structure for creating a table
type CreateTableInput struct {
	Name     string            `json:"name" binding:"required"`
	Capacity int               `json:"capacity" binding:"required,min=1"`
	Shape    models.TableShape `json:"shape" binding:"required,oneof=rectangle square circle"`
	Notes    string            `json:"notes"`
}

// UpdateTableInput defines the expected JSON structure for updating a table
type UpdateTableInput struct {
	Name     *string            `json:"name"`
	Capacity *int               `json:"capacity"`
	Shape    *models.TableShape `json:"shape"`
	Notes    *string            `json:"notes"`
}

// UpdateTableStatusInput carries the staff-chosen status change. ActorID is
// the acting staff member; WaiterID optionally seats a waiter when the table
// becomes occupied.
type UpdateTableStatusInput struct {
	Status   models.TableStatus `json:"status" binding:"required"`
	ActorID  uuid.UUID          `json:"actorId" binding:"required"`
	WaiterID *uuid.UUID         `json:"waiterId"`
}

// TableItemInput sets the quantity of one menu item in the table session
type TableItemInput struct {
	MenuItemID uuid.UUID `json:"menuItemId" binding:"required"`
	Quantity   int       `json:"quantity"`
}

// AssignWaiterInput sets or clears the table's waiter
type AssignWaiterInput struct {
	WaiterID *uuid.UUID `json:"waiterId"`
}

// CreateTable adds a table to the floor plan
func (tc *TableController) CreateTable(c *gin.Context) {
	var input CreateTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	table, warn, err := tc.Store.AddTable(store.TableInput{
		Name:     input.Name,
		Capacity: input.Capacity,
		Shape:    input.Shape,
		Notes:    input.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.AttachWarning(gin.H{"table": table}, warn))
}

// GetTables retrieves the floor plan
func (tc *TableController) GetTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": tc.Store.Settings().Tables})
}

// UpdateTable edits a table definition
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid table ID format")
		return
	}

	var input UpdateTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	table, warn, err := tc.Store.UpdateTable(tableUUID, store.TableUpdate{
		Name:     input.Name,
		Capacity: input.Capacity,
		Shape:    input.Shape,
		Notes:    input.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"table": table}, warn))
}

// DeleteTable removes a table from the floor plan
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid table ID format")
		return
	}

	warn, err := tc.Store.DeleteTable(tableUUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"message": "Table deleted successfully"}, warn))
}

// UpdateTableStatus applies a staff-chosen status change with its side
// effects (session start/clear, waiter reset).
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tableUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid table ID format")
		return
	}

	var input UpdateTableStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	table, warn, err := tc.Store.SetTableStatus(tableUUID, input.Status, input.ActorID, input.WaiterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"table": table}, warn))
}

// AssignWaiter sets or clears the waiter without changing status
func (tc *TableController) AssignWaiter(c *gin.Context) {
	tableUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid table ID format")
		return
	}

	var input AssignWaiterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	table, warn, err := tc.Store.AssignWaiter(tableUUID, input.WaiterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"table": table}, warn))
}

// SetTableItem sets a line quantity in the table's session; zero removes it
func (tc *TableController) SetTableItem(c *gin.Context) {
	tableUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid table ID format")
		return
	}

	var input TableItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	table, warn, err := tc.Store.SetTableItemQuantity(tableUUID, input.MenuItemID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"table": table}, warn))
}
