package models

type Category string

const (
	CategoryBurger  Category = "burger"
	CategorySide    Category = "side"
	CategoryNuggets Category = "nuggets"
	CategoryDrink   Category = "drink"
	CategoryPromo   Category = "promo"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBurger, CategorySide, CategoryNuggets, CategoryDrink, CategoryPromo:
		return true
	}
	return false
}

type Size string

const (
	SizeSimple Size = "simple"
	SizeDouble Size = "double"
)

// SizePrices is the per-size price table of products sold in two patty sizes.
type SizePrices struct {
	Simple int64 `json:"simple" yaml:"simple"`
	Double int64 `json:"double" yaml:"double"`
}

// For returns the price of the given size. Unknown sizes report false.
func (p SizePrices) For(size Size) (int64, bool) {
	switch size {
	case SizeSimple:
		return p.Simple, true
	case SizeDouble:
		return p.Double, true
	}
	return 0, false
}

type Product struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Category    Category    `json:"category" yaml:"category"`
	Price       int64       `json:"price" yaml:"price"`
	Sizes       *SizePrices `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string      `json:"icon,omitempty" yaml:"icon,omitempty"`
}

func (p Product) HasSizes() bool {
	return p.Sizes != nil
}

type ModifierKind string

const (
	ModifierAdd    ModifierKind = "add"
	ModifierRemove ModifierKind = "remove"
)

// Modifier is an extra (priced) or an ingredient exclusion (never priced).
type Modifier struct {
	Name  string       `json:"name" yaml:"name"`
	Kind  ModifierKind `json:"kind" yaml:"kind"`
	Price int64        `json:"price,omitempty" yaml:"price,omitempty"`
}

// ModifierGroups holds the two catalog lists offered on every product.
type ModifierGroups struct {
	Add    []Modifier `json:"add" yaml:"add"`
	Remove []Modifier `json:"remove" yaml:"remove"`
}
