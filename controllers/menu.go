// controllers/menu.go
package controllers

import (
	"net/http"

	"restropos-backend/store"
	"restropos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuController handles the menu catalog and its categories.
type MenuController struct {
	Store *store.Store
}

// CreateMenuItemInput defines the expected JSON structure for creating a menu item
type CreateMenuItemInput struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId" binding:"required"`
	Description string          `json:"description"`
	Recipe      string          `json:"recipe"`
	ImageURL    string          `json:"imageUrl"`
}

// UpdateMenuItemInput defines the expected JSON structure for updating a menu item
type UpdateMenuItemInput struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
	Description *string          `json:"description"`
	Recipe      *string          `json:"recipe"`
	ImageURL    *string          `json:"imageUrl"`
	IsActive    *bool            `json:"isActive"`
}

// CreateMenuItem adds a dish to the menu
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var input CreateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, warn, err := mc.Store.AddMenuItem(store.MenuItemInput{
		Name:        input.Name,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Recipe:      input.Recipe,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.AttachWarning(gin.H{"item": item}, warn))
}

// GetMenu retrieves the menu catalog with its categories
func (mc *MenuController) GetMenu(c *gin.Context) {
	settings := mc.Store.Settings()
	c.JSON(http.StatusOK, gin.H{
		"categories": settings.Categories,
		"items":      settings.MenuItems,
	})
}

// UpdateMenuItem edits a dish. Historical orders keep their snapshots.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid menu item ID format")
		return
	}

	var input UpdateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, warn, err := mc.Store.UpdateMenuItem(itemUUID, store.MenuItemUpdate{
		Name:        input.Name,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Recipe:      input.Recipe,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"item": item}, warn))
}

// DeleteMenuItem removes a dish from the menu
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid menu item ID format")
		return
	}

	warn, err := mc.Store.DeleteMenuItem(itemUUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"message": "Menu item deleted successfully"}, warn))
}

// CategoryInput defines the expected JSON structure for category changes
type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory adds a menu category
func (mc *MenuController) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category, warn, err := mc.Store.AddCategory(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.AttachWarning(gin.H{"category": category}, warn))
}

// RenameCategory renames a menu category
func (mc *MenuController) RenameCategory(c *gin.Context) {
	categoryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category, warn, err := mc.Store.RenameCategory(categoryUUID, input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"category": category}, warn))
}

// DeleteCategory removes a category; fails while menu items still use it
func (mc *MenuController) DeleteCategory(c *gin.Context) {
	categoryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	warn, err := mc.Store.DeleteCategory(categoryUUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"message": "Category deleted successfully"}, warn))
}
