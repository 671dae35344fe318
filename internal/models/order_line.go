package models

import (
	"errors"
	"fmt"
)

var ErrInvalidLine = errors.New("invalid order line")

type OrderLine struct {
	ID        string     `json:"id"`
	Product   Product    `json:"product"`
	Size      Size       `json:"size,omitempty"`
	Modifiers []Modifier `json:"modifiers"`
	Quantity  int        `json:"quantity"`
	UnitPrice int64      `json:"unit_price"`
	Subtotal  int64      `json:"subtotal"`
}

// Validate checks the structural rules of a line: a size is chosen exactly
// when the product is sold by size, and no modifier name repeats.
func (l OrderLine) Validate() error {
	if l.Product.ID == "" {
		return fmt.Errorf("%w: missing product", ErrInvalidLine)
	}
	if l.Product.HasSizes() {
		if _, ok := l.Product.Sizes.For(l.Size); !ok {
			return fmt.Errorf("%w: product %s requires a size (simple or double)", ErrInvalidLine, l.Product.ID)
		}
	} else if l.Size != "" {
		return fmt.Errorf("%w: product %s is not sold by size", ErrInvalidLine, l.Product.ID)
	}

	seen := make(map[string]struct{}, len(l.Modifiers))
	for _, m := range l.Modifiers {
		if m.Kind != ModifierAdd && m.Kind != ModifierRemove {
			return fmt.Errorf("%w: modifier %q has unknown kind %q", ErrInvalidLine, m.Name, m.Kind)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("%w: modifier %q selected twice", ErrInvalidLine, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}
