package store

import (
	"fmt"
	"time"

	"restropos-backend/models"
	"restropos-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
}

type PlaceOrderInput struct {
	Type  models.OrderType
	Items []OrderItemInput

	// TableID applies to dine-in. When the item list is empty, the table's
	// current session is ordered as-is.
	TableID *uuid.UUID

	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string

	// DeliveryCharge overrides the configured default; ignored unless the
	// order type is delivery.
	DeliveryCharge *decimal.Decimal
}

// PlaceOrder creates an order with charge rates and line items snapshotted
// from the current menu and settings. The order starts pending and unpaid.
func (s *Store) PlaceOrder(input PlaceOrderInput) (models.Order, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidOrderType(input.Type) {
		return models.Order{}, "", fmt.Errorf("%w: unknown order type %q", models.ErrValidation, input.Type)
	}
	if input.Type == models.OrderDelivery && input.DeliveryAddress == "" {
		return models.Order{}, "", fmt.Errorf("%w: delivery orders require an address", models.ErrValidation)
	}
	if input.Type == models.OrderDineIn && input.TableID != nil && s.findTable(*input.TableID) == nil {
		return models.Order{}, "", fmt.Errorf("%w: table %s", ErrNotFound, *input.TableID)
	}

	var items []models.OrderLineItem
	if len(input.Items) == 0 && input.Type == models.OrderDineIn && input.TableID != nil {
		table := s.findTable(*input.TableID)
		items = append(items, table.CurrentItems...)
	} else {
		for _, in := range input.Items {
			menuItem := s.findMenuItem(in.MenuItemID)
			if menuItem == nil {
				return models.Order{}, "", fmt.Errorf("%w: menu item %s", ErrNotFound, in.MenuItemID)
			}
			line, err := models.NewOrderLineItem(*menuItem, in.Quantity)
			if err != nil {
				return models.Order{}, "", err
			}
			items = append(items, line)
		}
	}
	if len(items) == 0 {
		return models.Order{}, "", fmt.Errorf("%w: an order needs at least one item", models.ErrValidation)
	}

	deliveryCharge := decimal.Zero
	if input.Type == models.OrderDelivery {
		deliveryCharge = s.settings.DefaultDeliveryCharge
		if input.DeliveryCharge != nil {
			if input.DeliveryCharge.IsNegative() {
				return models.Order{}, "", fmt.Errorf("%w: delivery charge must not be negative", models.ErrValidation)
			}
			deliveryCharge = *input.DeliveryCharge
		}
	}

	rates := s.settings.Rates()
	charges := models.CalculateCharges(items, rates, deliveryCharge)
	now := s.now()

	order := models.Order{
		ID:                uuid.New(),
		OrderNumber:       "ORD-" + now.Format("20060102") + "-" + utils.GenerateRandomString(6),
		Type:              input.Type,
		Status:            models.OrderPending,
		Items:             items,
		VATRate:           rates.VATRate,
		ServiceChargeRate: rates.ServiceChargeRate,
		Subtotal:          charges.Subtotal,
		VAT:               charges.VAT,
		ServiceCharge:     charges.ServiceCharge,
		DeliveryCharge:    charges.DeliveryCharge,
		Total:             charges.Total,
		PaymentStatus:     models.PaymentUnpaid,
		PaidAmount:        decimal.Zero,
		TableID:           input.TableID,
		CustomerName:      input.CustomerName,
		CustomerPhone:     input.CustomerPhone,
		DeliveryAddress:   input.DeliveryAddress,
		CreatedAt:         now,
	}
	s.orders = append(s.orders, order)
	return order, s.persistOrders(), nil
}

// Orders returns the order log, optionally filtered by status and type.
func (s *Store) Orders(status models.OrderStatus, orderType models.OrderType) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		if orderType != "" && o.Type != orderType {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (s *Store) OrderByID(id uuid.UUID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return models.Order{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return *order, nil
}

// TransitionOrder moves an order along the kitchen pipeline. Legality is
// checked by the order itself regardless of what the caller was offered.
func (s *Store) TransitionOrder(id uuid.UUID, next models.OrderStatus) (models.Order, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return models.Order{}, "", fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	if err := order.TransitionTo(next); err != nil {
		return models.Order{}, "", err
	}
	return *order, s.persistOrders(), nil
}

type PaymentUpdate struct {
	Status        models.PaymentStatus
	PaidAmount    *decimal.Decimal
	PaymentMethod *string
}

func (s *Store) UpdateOrderPayment(id uuid.UUID, update PaymentUpdate) (models.Order, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return models.Order{}, "", fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	switch update.Status {
	case models.PaymentUnpaid, models.PaymentPartial, models.PaymentPaid:
	default:
		return models.Order{}, "", fmt.Errorf("%w: unknown payment status %q", models.ErrValidation, update.Status)
	}
	if update.PaidAmount != nil && update.PaidAmount.IsNegative() {
		return models.Order{}, "", fmt.Errorf("%w: paid amount must not be negative", models.ErrValidation)
	}
	order.PaymentStatus = update.Status
	if update.PaidAmount != nil {
		order.PaidAmount = *update.PaidAmount
	}
	if update.PaymentMethod != nil {
		order.PaymentMethod = *update.PaymentMethod
	}
	return *order, s.persistOrders(), nil
}

// BillFor renders a numbered, print-stamped snapshot of an order. Bills are
// derived on demand, never stored.
func (s *Store) BillFor(id uuid.UUID) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return models.Bill{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	now := s.now()
	return models.Bill{
		BillNumber: "BILL-" + now.Format("20060102") + "-" + utils.GenerateRandomString(6),
		PrintedAt:  now,
		Restaurant: s.settings.RestaurantName,
		Order:      *order,
	}, nil
}

// KitchenTicketFor renders the prices-omitted kitchen view of an order.
func (s *Store) KitchenTicketFor(id uuid.UUID) (models.KitchenTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return models.KitchenTicket{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return models.KitchenTicketFor(*order), nil
}

// OrdersBetween returns orders created in [start, end), for reporting.
func (s *Store) OrdersBetween(start, end time.Time) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, o := range s.orders {
		if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) findOrder(id uuid.UUID) *models.Order {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i]
		}
	}
	return nil
}
