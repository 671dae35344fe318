// Package pricing computes line and order totals. Every function here is
// pure: no clock, no storage.
package pricing

import (
	"fmt"

	"burger_pos/internal/models"

	"github.com/shopspring/decimal"
)

// ClampQuantity enforces the minimum quantity of one.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// UnitPrice is the size price (when a size is chosen and the product has a
// size table) or the flat price, plus every "add" modifier price.
// "remove" modifiers never change the price.
func UnitPrice(p models.Product, size models.Size, mods []models.Modifier) int64 {
	base := p.Price
	if p.HasSizes() && size != "" {
		if price, ok := p.Sizes.For(size); ok {
			base = price
		}
	}
	for _, m := range mods {
		if m.Kind == models.ModifierAdd {
			base += m.Price
		}
	}
	return base
}

func LineSubtotal(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(ClampQuantity(quantity))
}

// PriceLine returns the line with quantity clamped and its cached unit
// price and subtotal recomputed.
func PriceLine(l models.OrderLine) models.OrderLine {
	l.Quantity = ClampQuantity(l.Quantity)
	l.UnitPrice = UnitPrice(l.Product, l.Size, l.Modifiers)
	l.Subtotal = LineSubtotal(l.UnitPrice, l.Quantity)
	return l
}

// NewLine builds and validates a priced line.
func NewLine(id string, p models.Product, size models.Size, mods []models.Modifier, quantity int) (models.OrderLine, error) {
	line := models.OrderLine{
		ID:        id,
		Product:   p,
		Size:      size,
		Modifiers: append([]models.Modifier(nil), mods...),
		Quantity:  quantity,
	}
	if err := line.Validate(); err != nil {
		return models.OrderLine{}, err
	}
	return PriceLine(line), nil
}

// AdjustQuantity adds delta to the line quantity, never going below one.
func AdjustQuantity(l models.OrderLine, delta int) models.OrderLine {
	l.Quantity += delta
	return PriceLine(l)
}

// OrderTotal is the pre-tax sum of all line subtotals.
func OrderTotal(lines []models.OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += PriceLine(l).Subtotal
	}
	return total
}

// ParseRate parses a tax rate such as "0.21". Empty means no tax.
func ParseRate(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax rate %q: %w", s, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid tax rate %q: must not be negative", s)
	}
	return rate, nil
}

// TaxAmount is total*rate rounded half away from zero to whole units.
func TaxAmount(total int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(total).Mul(rate).Round(0).IntPart()
}

// ApplyTax returns the total with the multiplicative tax rate applied on top.
func ApplyTax(total int64, rate decimal.Decimal) int64 {
	return total + TaxAmount(total, rate)
}

// Average returns sum/count rounded to whole units, zero when count is zero.
func Average(sum int64, count int) int64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(count))).Round(0).IntPart()
}
