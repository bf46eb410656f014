package model

import "github.com/shopspring/decimal"

// DemoCatalog is the starter product set: seeded into Postgres by cmd/seed
// and into the in-memory store when the process boots degraded.
func DemoCatalog() []Product {
	seed := []struct {
		name     string
		category string
		stock    int
		price    string
	}{
		{"Intel Core i7-13700K", "CPU", 18, "12004.00"},
		{"NVIDIA RTX 4070", "GPU", 15, "0.00"},
		{"ASUS ROG B650E-F", "Motherboard", 10, "10000.00"},
		{"Corsair DDR5-5600 16GB", "RAM", 10, "6500.00"},
		{"Samsung 980 PRO 1TB", "Storage", 14, "0.00"},
		{"Corsair RM850x", "PSU", 10, "10000.00"},
	}
	products := make([]Product, 0, len(seed))
	for _, row := range seed {
		products = append(products, Product{
			Name:         row.name,
			Category:     row.category,
			CurrentStock: row.stock,
			CurrentPrice: decimal.RequireFromString(row.price),
			Specs:        map[string]string{},
		})
	}
	return products
}
