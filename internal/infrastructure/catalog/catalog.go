// Package catalog loads the menu and restaurant list from YAML. The default
// catalog is embedded in the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type document struct {
	Menu        []domain.Product    `yaml:"menu"`
	Restaurants []domain.Restaurant `yaml:"restaurants"`
}

// Catalog is immutable after Load and safe for concurrent use.
type Catalog struct {
	menu        []domain.Product
	byID        map[int]domain.Product
	restaurants []domain.Restaurant
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		menu:        doc.Menu,
		byID:        make(map[int]domain.Product, len(doc.Menu)),
		restaurants: doc.Restaurants,
	}
	for _, p := range doc.Menu {
		if p.ID <= 0 {
			return nil, fmt.Errorf("catalog: product %q has non-positive id %d", p.Name, p.ID)
		}
		if p.Price < 0 || !finite(p.Price) {
			return nil, fmt.Errorf("catalog: product %d has invalid price %v", p.ID, p.Price)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = p
	}
	for _, r := range doc.Restaurants {
		if !finite(r.Rating) {
			return nil, fmt.Errorf("catalog: restaurant %q has invalid rating %v", r.Name, r.Rating)
		}
	}
	return c, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (c *Catalog) Menu() []domain.Product {
	return append([]domain.Product{}, c.menu...)
}

func (c *Catalog) Product(id int) (domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (c *Catalog) Restaurants() []domain.Restaurant {
	return append([]domain.Restaurant{}, c.restaurants...)
}
