package statistics

import (
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
)

// Statistics holds the global aggregate numbers every derived table is built
// from. It is constructed once (usually via Default) and passed by reference
// into the size calculator and the cost model; nothing reads ambient state.
type Statistics struct {
	Clients    int64
	Products   int64
	OrderLines int64
	Warehouses int64
	Servers    int64

	AvgCategoriesPerProduct float64

	// Distinct-value counts for non-identifier fields
	Brands       int64
	DatesPerYear int64
}

// Default returns the course statistics: 10M clients, 100k products,
// 4B order lines, 200 warehouses distributed over 1000 servers.
func Default() *Statistics {
	return &Statistics{
		Clients:                 10_000_000,
		Products:                100_000,
		OrderLines:              4_000_000_000,
		Warehouses:              200,
		Servers:                 1000,
		AvgCategoriesPerProduct: 2,
		Brands:                  5000,
		DatesPerYear:            365,
	}
}

// Population returns the expected number of documents a collection of the
// given entity holds. Stock is the cross product of products and warehouses.
// Entities without population data (Category, Supplier, Unknown) default to 1.
func (s *Statistics) Population(e schema.Entity) int64 {
	switch e {
	case schema.EntityClient:
		return s.Clients
	case schema.EntityProduct:
		return s.Products
	case schema.EntityOrderLine:
		return s.OrderLines
	case schema.EntityWarehouse:
		return s.Warehouses
	case schema.EntityStock:
		return s.Products * s.Warehouses
	}
	return 1
}

// DistinctValues returns how many distinct values the given field can take,
// when the statistics know the field. Identifier fields map to their entity
// population; brand and date fields come from the aggregate counts.
func (s *Statistics) DistinctValues(field string) (int64, bool) {
	switch field {
	case "IDP":
		return s.Products, true
	case "IDC":
		return s.Clients, true
	case "IDW":
		return s.Warehouses, true
	case "brand":
		return s.Brands, true
	case "date", "deliveryDate":
		return s.DatesPerYear, true
	}
	return 0, false
}
