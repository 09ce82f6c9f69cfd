package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func mustLine(t *testing.T, name string, price float64, qty int) OrderLineItem {
	t.Helper()
	item := MenuItem{ID: uuid.New(), Name: name, Price: decimal.NewFromFloat(price)}
	line, err := NewOrderLineItem(item, qty)
	if err != nil {
		t.Fatalf("NewOrderLineItem(%s): %v", name, err)
	}
	return line
}

func TestCalculateCharges(t *testing.T) {
	items := []OrderLineItem{
		mustLine(t, "Momo", 200, 1),
		mustLine(t, "Chowmein", 100, 2),
	}
	rates := ChargeRates{
		VATRate:           decimal.NewFromFloat(0.13),
		ServiceChargeRate: decimal.NewFromFloat(0.10),
	}

	got := CalculateCharges(items, rates, decimal.Zero)

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"subtotal", got.Subtotal, "400"},
		{"vat", got.VAT, "52"},
		{"serviceCharge", got.ServiceCharge, "40"},
		{"total", got.Total, "492"},
	}
	for _, check := range checks {
		if !check.got.Equal(decimal.RequireFromString(check.want)) {
			t.Errorf("%s = %s, want %s", check.name, check.got, check.want)
		}
	}
}

func TestCalculateChargesEmpty(t *testing.T) {
	got := CalculateCharges(nil, ChargeRates{
		VATRate:           decimal.NewFromFloat(0.13),
		ServiceChargeRate: decimal.NewFromFloat(0.10),
	}, decimal.Zero)

	for name, value := range map[string]decimal.Decimal{
		"subtotal":      got.Subtotal,
		"vat":           got.VAT,
		"serviceCharge": got.ServiceCharge,
		"total":         got.Total,
	} {
		if !value.IsZero() {
			t.Errorf("%s = %s, want 0", name, value)
		}
	}
}

func TestCalculateChargesDelivery(t *testing.T) {
	items := []OrderLineItem{mustLine(t, "Thali", 350, 1)}
	got := CalculateCharges(items, ChargeRates{
		VATRate:           decimal.NewFromFloat(0.13),
		ServiceChargeRate: decimal.Zero,
	}, decimal.NewFromInt(60))

	want := decimal.RequireFromString("455.50") // 350 + 45.50 vat + 60 delivery
	if !got.Total.Equal(want) {
		t.Errorf("total = %s, want %s", got.Total, want)
	}
}

// The total must always be the exact sum of its rounded parts, whatever the
// rates.
func TestCalculateChargesTotalIsSumOfParts(t *testing.T) {
	items := []OrderLineItem{
		mustLine(t, "A", 33.33, 3),
		mustLine(t, "B", 9.99, 7),
		mustLine(t, "C", 0.01, 1),
	}
	rateValues := []float64{0, 0.01, 0.07, 0.13, 0.1999, 0.5, 0.999}
	for _, vat := range rateValues {
		for _, svc := range rateValues {
			rates := ChargeRates{
				VATRate:           decimal.NewFromFloat(vat),
				ServiceChargeRate: decimal.NewFromFloat(svc),
			}
			got := CalculateCharges(items, rates, decimal.NewFromFloat(25.55))
			sum := got.Subtotal.Add(got.VAT).Add(got.ServiceCharge).Add(got.DeliveryCharge)
			if !got.Total.Equal(sum) {
				t.Errorf("vat=%v svc=%v: total %s != parts sum %s", vat, svc, got.Total, sum)
			}
		}
	}
}

func TestNewOrderLineItemValidation(t *testing.T) {
	item := MenuItem{ID: uuid.New(), Name: "Momo", Price: decimal.NewFromInt(200)}

	if _, err := NewOrderLineItem(item, 0); err == nil {
		t.Error("quantity 0 accepted, want validation error")
	}
	if _, err := NewOrderLineItem(item, -2); err == nil {
		t.Error("negative quantity accepted, want validation error")
	}

	item.Price = decimal.NewFromInt(-5)
	if _, err := NewOrderLineItem(item, 1); err == nil {
		t.Error("negative price accepted, want validation error")
	}
}

func TestNewMenuItemValidation(t *testing.T) {
	if _, err := NewMenuItem("", decimal.NewFromInt(10), uuid.New()); err == nil {
		t.Error("empty name accepted, want validation error")
	}
	if _, err := NewMenuItem("Momo", decimal.NewFromInt(-1), uuid.New()); err == nil {
		t.Error("negative price accepted, want validation error")
	}
	if _, err := NewMenuItem("Momo", decimal.Zero, uuid.New()); err != nil {
		t.Errorf("zero price rejected: %v", err)
	}
}
