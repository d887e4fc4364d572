package statistics

import (
	"log/slog"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
)

// Cardinality is the expected average child-count per (parent, child) entity
// pair, used to scale array contributions when a child collection is embedded
// in a parent document. Entries are derived once from the statistics and never
// mutated afterwards.
type Cardinality struct {
	avg map[schema.Entity]map[schema.Entity]float64
}

// NewCardinality derives the relationship matrix from the global statistics
func NewCardinality(s *Statistics) *Cardinality {
	clients := float64(s.Clients)
	products := float64(s.Products)
	orderLines := float64(s.OrderLines)
	warehouses := float64(s.Warehouses)

	return &Cardinality{avg: map[schema.Entity]map[schema.Entity]float64{
		schema.EntityClient: {
			schema.EntityProduct:   20,
			schema.EntityOrderLine: orderLines / clients,
		},
		schema.EntityProduct: {
			schema.EntityCategory:  s.AvgCategoriesPerProduct,
			schema.EntityStock:     warehouses,
			schema.EntityWarehouse: warehouses,
			schema.EntitySupplier:  1,
			schema.EntityOrderLine: orderLines / products,
			schema.EntityClient:    clients / products,
		},
		schema.EntityOrderLine: {
			schema.EntityProduct:   1,
			schema.EntityClient:    1,
			schema.EntityWarehouse: 1,
			schema.EntityStock:     1,
		},
		schema.EntityWarehouse: {
			schema.EntityStock:     products,
			schema.EntityProduct:   products / warehouses,
			schema.EntityOrderLine: orderLines / warehouses,
		},
		schema.EntityStock: {
			schema.EntityProduct:   1,
			schema.EntityWarehouse: 1,
		},
	}}
}

// Avg returns the expected number of child instances embedded per parent
// instance. A missing pair defaults to 1 (assume one embedded instance); the
// degradation is logged but never fatal.
func (c *Cardinality) Avg(parent, child schema.Entity) float64 {
	if row, ok := c.avg[parent]; ok {
		if v, ok := row[child]; ok {
			return v
		}
	}
	slog.Debug("no cardinality data for pair, defaulting to 1",
		"parent", parent, "child", child)
	return 1
}
