package models

import "github.com/shopspring/decimal"

// ChargeRates are decimal fractions, e.g. 0.13 for 13% VAT.
type ChargeRates struct {
	VATRate           decimal.Decimal `json:"vatRate"`
	ServiceChargeRate decimal.Decimal `json:"serviceChargeRate"`
}

type ChargeBreakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	VAT            decimal.Decimal `json:"vat"`
	ServiceCharge  decimal.Decimal `json:"serviceCharge"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	Total          decimal.Decimal `json:"total"`
}

// CalculateCharges computes the bill amounts for a set of line items. Pure
// and deterministic; an empty item list yields all zeros. Each derived amount
// is rounded to two decimal places, and total is always the exact sum of the
// rounded parts.
func CalculateCharges(items []OrderLineItem, rates ChargeRates, deliveryCharge decimal.Decimal) ChargeBreakdown {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	subtotal = subtotal.Round(2)
	vat := subtotal.Mul(rates.VATRate).Round(2)
	serviceCharge := subtotal.Mul(rates.ServiceChargeRate).Round(2)
	delivery := deliveryCharge.Round(2)

	return ChargeBreakdown{
		Subtotal:       subtotal,
		VAT:            vat,
		ServiceCharge:  serviceCharge,
		DeliveryCharge: delivery,
		Total:          subtotal.Add(vat).Add(serviceCharge).Add(delivery),
	}
}
