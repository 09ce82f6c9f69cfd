package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderInKitchen OrderStatus = "in_kitchen"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderTakeout  OrderType = "takeout"
	OrderDelivery OrderType = "delivery"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// orderTransitions is the kitchen workflow pipeline. completed and cancelled
// are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderInKitchen, OrderCancelled},
	OrderInKitchen: {OrderReady},
	OrderReady:     {OrderCompleted},
	OrderCompleted: {},
	OrderCancelled: {},
}

// AllowedNextStatuses returns the statuses an order in the given status may
// move to. The UI offers exactly these; TransitionTo re-validates anyway.
func AllowedNextStatuses(s OrderStatus) []OrderStatus {
	next, ok := orderTransitions[s]
	if !ok {
		return nil
	}
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidOrderType reports whether t is one of the known order types.
func ValidOrderType(t OrderType) bool {
	switch t {
	case OrderDineIn, OrderTakeout, OrderDelivery:
		return true
	}
	return false
}

// OrderLineItem is a snapshot of a menu item at order time plus a quantity.
type OrderLineItem struct {
	MenuItemID uuid.UUID       `json:"menuItemId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

// NewOrderLineItem snapshots a menu item into a line item. Quantity below 1
// and negative prices are rejected, never clamped.
func NewOrderLineItem(item MenuItem, quantity int) (OrderLineItem, error) {
	if quantity < 1 {
		return OrderLineItem{}, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if item.Price.IsNegative() {
		return OrderLineItem{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return OrderLineItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   quantity,
	}, nil
}

// Order is immutable once placed except for its status fields. Orders are
// never deleted; cancellation is a status.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Type        OrderType       `json:"type"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderLineItem `json:"items"`

	// Rates are snapshotted at placement so later settings changes never
	// alter historical totals.
	VATRate           decimal.Decimal `json:"vatRate"`
	ServiceChargeRate decimal.Decimal `json:"serviceChargeRate"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	VAT            decimal.Decimal `json:"vat"`
	ServiceCharge  decimal.Decimal `json:"serviceCharge"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	Total          decimal.Decimal `json:"total"`

	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`

	TableID         *uuid.UUID `json:"tableId,omitempty"`
	CustomerName    string     `json:"customerName,omitempty"`
	CustomerPhone   string     `json:"customerPhone,omitempty"`
	DeliveryAddress string     `json:"deliveryAddress,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TransitionTo moves the order to next if the transition table allows it.
// On failure the status is left untouched.
func (o *Order) TransitionTo(next OrderStatus) error {
	if !ValidOrderStatus(next) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == next {
			o.Status = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, next)
}

// Bill is an on-demand, numbered snapshot of an order. It is derived, never
// stored.
type Bill struct {
	BillNumber string    `json:"billNumber"`
	PrintedAt  time.Time `json:"printedAt"`
	Restaurant string    `json:"restaurant"`
	Order      Order     `json:"order"`
}

// KitchenTicketLine is one line of a KOT: prices are deliberately omitted.
type KitchenTicketLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// KitchenTicket is the kitchen-facing rendering of an order.
type KitchenTicket struct {
	OrderNumber string              `json:"orderNumber"`
	Type        OrderType           `json:"type"`
	TableID     *uuid.UUID          `json:"tableId,omitempty"`
	Lines       []KitchenTicketLine `json:"lines"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// KitchenTicketFor renders the prices-omitted kitchen view of an order.
func KitchenTicketFor(o Order) KitchenTicket {
	lines := make([]KitchenTicketLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, KitchenTicketLine{Name: it.Name, Quantity: it.Quantity})
	}
	return KitchenTicket{
		OrderNumber: o.OrderNumber,
		Type:        o.Type,
		TableID:     o.TableID,
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
	}
}
