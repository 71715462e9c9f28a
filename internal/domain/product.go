package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID         string          `json:"id"`
	Brand      string          `json:"brand"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	Sizes      []string        `json:"sizes"`
	ImagePaths []string        `json:"imagePaths"`
	LogoPath   *string         `json:"logoPath,omitempty"`
	Category   *string         `json:"category,omitempty"`
}

// ProductIndex maps products by id.
func ProductIndex(products []Product) map[string]Product {
	m := make(map[string]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}
