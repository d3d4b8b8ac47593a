package cart

import (
	"fmt"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
	"brutus/internal/pricing"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Line is a cart entry: a product reference, quantity, free-text note
// and the addons chosen for it.
type Line struct {
	Product  domain.Product
	Quantity int
	Note     string
	Addons   []pricing.Addon
}

// Cart holds the customer's session state. All mutations go through
// named methods so the quantity and addon invariants stay centralized.
type Cart struct {
	classifier *Classifier
	lines      []Line
}

func New(classifier *Classifier) *Cart {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Cart{classifier: classifier}
}

// Add appends a line. Quantity must be within [1,99] and addons are
// rejected on products classified as drinks.
func (c *Cart) Add(p domain.Product, qty int, note string, addons []pricing.Addon) error {
	if qty < MinQuantity || qty > MaxQuantity {
		return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between %d and %d", MinQuantity, MaxQuantity),
		})
	}
	if len(addons) > 0 && c.classifier.Classify(p.Category) == BucketDrinks {
		return apperrors.NewValidationError("addons are not applicable to beverages", apperrors.ValidationDetail{
			Field:   "addons",
			Message: "beverages cannot carry addons",
		})
	}

	line := Line{Product: p, Quantity: qty, Note: note}
	line.Addons = append(line.Addons, addons...)
	c.lines = append(c.lines, line)
	return nil
}

// Increment raises a line's quantity by one, capped at MaxQuantity.
func (c *Cart) Increment(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if c.lines[index].Quantity >= MaxQuantity {
		return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity cannot exceed %d", MaxQuantity),
		})
	}
	c.lines[index].Quantity++
	return nil
}

// Decrement lowers a line's quantity by one. A line at quantity 1 is
// removed entirely; no zero-quantity line may persist.
func (c *Cart) Decrement(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if c.lines[index].Quantity > 1 {
		c.lines[index].Quantity--
		return nil
	}
	return c.Remove(index)
}

func (c *Cart) Remove(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Total prices the cart, including the delivery fee when a quote is
// present.
func (c *Cart) Total(quote *domain.DeliveryQuote) float64 {
	lines := make([]pricing.Line, len(c.lines))
	for i, l := range c.lines {
		lines[i] = pricing.Line{
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Addons:    l.Addons,
		}
	}
	var fee *float64
	if quote != nil {
		fee = &quote.Price
	}
	return pricing.CartTotal(lines, fee)
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.lines) {
		return apperrors.NewNotFoundError(fmt.Sprintf("no cart line at index %d", index))
	}
	return nil
}
