// controllers/order.go
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

// OrderController handles order placement, the kitchen pipeline, payment and
// the derived bill/KOT renderings.
type OrderController struct {
	Store *store.Store
}

// OrderItemInput defines one requested line item
type OrderItemInput struct {
	MenuItemID uuid.UUID `json:"menuItemId" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderInput defines the expected JSON structure for placing an order.
// Dine-in orders may omit items to order the table's current session as-is.
type PlaceOrderInput struct {
	Type            models.OrderType `json:"type" binding:"required,oneof=dine-in takeout delivery"`
	Items           []OrderItemInput `json:"items"`
	TableID         *uuid.UUID       `json:"tableId"`
	CustomerName    string           `json:"customerName"`
	CustomerPhone   string           `json:"customerPhone"`
	DeliveryAddress string           `json:"deliveryAddress"`
	DeliveryCharge  *decimal.Decimal `json:"deliveryCharge"`
}

// UpdateOrderStatusInput carries the requested pipeline transition
type UpdateOrderStatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdatePaymentInput defines the expected JSON structure for payment updates
type UpdatePaymentInput struct {
	Status        models.PaymentStatus `json:"status" binding:"required,oneof=paid unpaid partial"`
	PaidAmount    *decimal.Decimal     `json:"paidAmount"`
	PaymentMethod *string              `json:"paymentMethod"`
}

// PlaceOrder creates an order with rates and prices snapshotted at placement
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var input PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.CustomerPhone != "" && !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer phone number")
		return
	}

	items := make([]store.OrderItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, store.OrderItemInput{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}

	order, warn, err := oc.Store.PlaceOrder(store.PlaceOrderInput{
		Type:            input.Type,
		Items:           items,
		TableID:         input.TableID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryCharge:  input.DeliveryCharge,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.AttachWarning(gin.H{"order": order}, warn))
}

// GetOrders lists orders, optionally filtered by ?status= and ?type=
func (oc *OrderController) GetOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !models.ValidOrderStatus(status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown order status filter")
		return
	}
	orderType := models.OrderType(c.Query("type"))
	if orderType != "" && !models.ValidOrderType(orderType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown order type filter")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": oc.Store.Orders(status, orderType)})
}

// GetOrder retrieves one order along with its legal next statuses
func (oc *OrderController) GetOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := oc.Store.OrderByID(orderUUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":       order,
		"allowedNext": models.AllowedNextStatuses(order.Status),
	})
}

// UpdateOrderStatus moves an order along the kitchen pipeline
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, warn, err := oc.Store.TransitionOrder(orderUUID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{
		"order":       order,
		"allowedNext": models.AllowedNextStatuses(order.Status),
	}, warn))
}

// UpdatePayment records the payment state of an order
func (oc *OrderController) UpdatePayment(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, warn, err := oc.Store.UpdateOrderPayment(orderUUID, store.PaymentUpdate{
		Status:        input.Status,
		PaidAmount:    input.PaidAmount,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.AttachWarning(gin.H{"order": order}, warn))
}

// GetBill renders an on-demand numbered bill for the order
func (oc *OrderController) GetBill(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	bill, err := oc.Store.BillFor(orderUUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// GetKitchenTicket renders the prices-omitted KOT for the order
func (oc *OrderController) GetKitchenTicket(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	ticket, err := oc.Store.KitchenTicketFor(orderUUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
