package pricing

import (
	"math"

	apperrors "brutus/internal/errors"
)

// Addon is an optional extra priced onto a cart line.
type Addon struct {
	Name  string
	Price float64
}

// Line is the minimal shape the engine needs to price a cart line.
// Addon eligibility (no addons on beverages) is the caller's concern.
type Line struct {
	UnitPrice float64
	Quantity  int
	Addons    []Addon
}

// LineTotal computes (unitPrice + sum of addon prices) * quantity.
func LineTotal(l Line) float64 {
	addons := 0.0
	for _, a := range l.Addons {
		addons += a.Price
	}
	return (l.UnitPrice + addons) * float64(l.Quantity)
}

// CartTotal sums line totals plus the delivery fee when a quote is
// present. Computation keeps full precision; callers round only for
// display.
func CartTotal(lines []Line, deliveryFee *float64) float64 {
	total := 0.0
	for _, l := range lines {
		total += LineTotal(l)
	}
	if deliveryFee != nil {
		total += *deliveryFee
	}
	return total
}

// Change validates a cash payment and returns the change due.
// Tendered == 0 means the customer left the change amount unspecified
// and is accepted with zero change; 0 < tendered < total is rejected.
func Change(tendered, total float64) (float64, error) {
	if tendered < 0 {
		return 0, apperrors.NewValidationError("cash tendered must be non-negative", apperrors.ValidationDetail{
			Field:   "cashTendered",
			Message: "must be zero or a positive amount",
		})
	}
	if tendered == 0 {
		return 0, nil
	}
	if tendered < total {
		return 0, apperrors.NewValidationError("cash tendered is less than the order total", apperrors.ValidationDetail{
			Field:   "cashTendered",
			Message: "must be greater than or equal to the order total",
		})
	}
	return tendered - total, nil
}

// Round2 rounds to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
