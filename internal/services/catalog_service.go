package services

import (
	_ "embed"
	"fmt"
	"os"

	"burger_pos/internal/models"
	"burger_pos/internal/pricing"

	"github.com/lucsky/cuid"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the static menu: products plus the add and remove modifier lists.
type Catalog struct {
	Products  []models.Product      `json:"products" yaml:"products"`
	Modifiers models.ModifierGroups `json:"modifiers" yaml:"modifiers"`
}

// LineRequest selects a product by id and modifiers by name.
type LineRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	Size      string   `json:"size"`
	Add       []string `json:"add"`
	Remove    []string `json:"remove"`
	Quantity  int      `json:"quantity"`
}

type CatalogService interface {
	Catalog() Catalog
	Products(category models.Category) []models.Product
	Product(id string) (models.Product, error)
	Modifier(kind models.ModifierKind, name string) (models.Modifier, error)
	BuildLine(req LineRequest) (models.OrderLine, error)
}

type catalogService struct {
	catalog  Catalog
	products map[string]models.Product
	add      map[string]models.Modifier
	remove   map[string]models.Modifier
}

// LoadCatalog reads the catalog from path, or the embedded default when
// path is empty.
func LoadCatalog(path string) (Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = b
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return c, nil
}

func NewCatalogService(c Catalog) (CatalogService, error) {
	s := &catalogService{
		catalog:  c,
		products: make(map[string]models.Product, len(c.Products)),
		add:      make(map[string]models.Modifier, len(c.Modifiers.Add)),
		remove:   make(map[string]models.Modifier, len(c.Modifiers.Remove)),
	}

	for _, p := range c.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog product %q has no id", p.Name)
		}
		if _, dup := s.products[p.ID]; dup {
			return nil, fmt.Errorf("catalog product id %q is duplicated", p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("catalog product %q has unknown category %q", p.ID, p.Category)
		}
		s.products[p.ID] = p
	}
	for _, m := range c.Modifiers.Add {
		m.Kind = models.ModifierAdd
		s.add[m.Name] = m
	}
	for _, m := range c.Modifiers.Remove {
		// Removals are never priced.
		m.Kind = models.ModifierRemove
		m.Price = 0
		s.remove[m.Name] = m
	}
	return s, nil
}

// Catalog returns a copy of the menu; callers may modify it freely.
func (s *catalogService) Catalog() Catalog {
	products := make([]models.Product, 0, len(s.catalog.Products))
	for _, p := range s.catalog.Products {
		products = append(products, cloneProduct(p))
	}
	return Catalog{
		Products: products,
		Modifiers: models.ModifierGroups{
			Add:    append([]models.Modifier(nil), s.catalog.Modifiers.Add...),
			Remove: append([]models.Modifier(nil), s.catalog.Modifiers.Remove...),
		},
	}
}

// Products returns the products of a category, or all of them when
// category is empty.
func (s *catalogService) Products(category models.Category) []models.Product {
	out := make([]models.Product, 0, len(s.catalog.Products))
	for _, p := range s.catalog.Products {
		if category == "" || p.Category == category {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

func (s *catalogService) Product(id string) (models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	return cloneProduct(p), nil
}

func cloneProduct(p models.Product) models.Product {
	if p.Sizes != nil {
		sizes := *p.Sizes
		p.Sizes = &sizes
	}
	return p
}

func (s *catalogService) Modifier(kind models.ModifierKind, name string) (models.Modifier, error) {
	var (
		m  models.Modifier
		ok bool
	)
	switch kind {
	case models.ModifierAdd:
		m, ok = s.add[name]
	case models.ModifierRemove:
		m, ok = s.remove[name]
	}
	if !ok {
		return models.Modifier{}, fmt.Errorf("%w: %s %q", ErrUnknownModifier, kind, name)
	}
	return m, nil
}

func (s *catalogService) BuildLine(req LineRequest) (models.OrderLine, error) {
	p, err := s.Product(req.ProductID)
	if err != nil {
		return models.OrderLine{}, err
	}

	mods := make([]models.Modifier, 0, len(req.Add)+len(req.Remove))
	for _, name := range req.Add {
		m, err := s.Modifier(models.ModifierAdd, name)
		if err != nil {
			return models.OrderLine{}, err
		}
		mods = append(mods, m)
	}
	for _, name := range req.Remove {
		m, err := s.Modifier(models.ModifierRemove, name)
		if err != nil {
			return models.OrderLine{}, err
		}
		mods = append(mods, m)
	}

	return pricing.NewLine(cuid.New(), p, models.Size(req.Size), mods, req.Quantity)
}
