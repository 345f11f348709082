package config

import (
	"fmt"

	"github.com/kilianp07/patterns/core/model"
)

// ProductConfig is a catalog entry as written in the configuration file.
// Color and Size are decoded from their case-insensitive names.
type ProductConfig struct {
	Name  string      `json:"name"`
	Color model.Color `json:"color"`
	Size  model.Size  `json:"size"`
}

// CatalogConfig lists the products offered to the filter command.
type CatalogConfig struct {
	Products []ProductConfig `json:"products"`
}

// SetDefaults fills an empty catalog with the sample products.
func (c *CatalogConfig) SetDefaults() {
	if len(c.Products) == 0 {
		c.Products = []ProductConfig{
			{Name: "Apple", Color: model.ColorGreen, Size: model.SizeSmall},
			{Name: "Tree", Color: model.ColorGreen, Size: model.SizeLarge},
			{Name: "House", Color: model.ColorBlue, Size: model.SizeLarge},
		}
	}
}

// Validate checks every product is complete.
func (c CatalogConfig) Validate() error {
	_, err := c.Build()
	return err
}

// Build converts the entries into products, keeping their order.
func (c CatalogConfig) Build() ([]model.Product, error) {
	out := make([]model.Product, 0, len(c.Products))
	for i, p := range c.Products {
		if p.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", i)
		}
		if !p.Color.Valid() {
			return nil, fmt.Errorf("product %s: color is required", p.Name)
		}
		if !p.Size.Valid() {
			return nil, fmt.Errorf("product %s: size is required", p.Name)
		}
		out = append(out, model.NewProduct(p.Name, p.Color, p.Size))
	}
	return out, nil
}
