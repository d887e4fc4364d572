// Package scenario holds the course catalog: the document schemas of the
// normalized and denormalized database variants, the reference queries, and
// the candidate sharding strategies. Binaries and integration tests build
// their registries from here.
package scenario

import (
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/cost"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/statistics"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/sizing"
)

// ProductSchema is the normalized product document: categories and supplier
// are embedded, stock is not.
func ProductSchema() *schema.Node {
	return schema.Object(
		schema.F("IDP", schema.Integer()),
		schema.F("name", schema.String()),
		schema.F("price", schema.Number()),
		schema.F("brand", schema.String()),
		schema.F("description", schema.String()),
		schema.F("image_url", schema.String()),
		schema.F("categories", schema.Array(categoryItem())),
		schema.F("supplier", supplierObject()),
	)
}

func StockSchema() *schema.Node {
	return schema.Object(
		schema.F("IDW", schema.Integer()),
		schema.F("IDP", schema.Integer()),
		schema.F("quantity", schema.Integer()),
		schema.F("location", schema.String()),
	)
}

func OrderLineSchema() *schema.Node {
	return schema.Object(
		schema.F("IDP", schema.Integer()),
		schema.F("IDC", schema.Integer()),
		schema.F("date", schema.Date()),
		schema.F("deliveryDate", schema.Date()),
		schema.F("quantity", schema.Integer()),
		schema.F("comment", schema.String()),
		schema.F("grade", schema.Integer()),
	)
}

func ClientSchema() *schema.Node {
	return schema.Object(
		schema.F("IDC", schema.Integer()),
		schema.F("ln", schema.String()),
		schema.F("fn", schema.String()),
		schema.F("address", schema.String()),
		schema.F("nationality", schema.String()),
		schema.F("birthDate", schema.Date()),
		schema.F("email", schema.String()),
	)
}

func WarehouseSchema() *schema.Node {
	return schema.Object(
		schema.F("IDW", schema.Integer()),
		schema.F("address", schema.String()),
		schema.F("capacity", schema.Integer()),
	)
}

// ProductWithStockSchema is the DB2 variant: stock embedded in product
func ProductWithStockSchema() *schema.Node {
	return schema.Object(
		schema.F("IDP", schema.Integer()),
		schema.F("name", schema.String()),
		schema.F("price", schema.Number()),
		schema.F("brand", schema.String()),
		schema.F("description", schema.String()),
		schema.F("image_url", schema.String()),
		schema.F("categories", schema.Array(categoryItem())),
		schema.F("supplier", supplierObject()),
		schema.F("stock", schema.Array(schema.Object(
			schema.F("IDW", schema.Integer()),
			schema.F("quantity", schema.Integer()),
			schema.F("location", schema.String()),
		))),
	)
}

// StockWithProductSchema is the DB3 variant: product embedded in stock
func StockWithProductSchema() *schema.Node {
	return schema.Object(
		schema.F("IDW", schema.Integer()),
		schema.F("quantity", schema.Integer()),
		schema.F("location", schema.String()),
		schema.F("product", ProductSchema()),
	)
}

func categoryItem() *schema.Node {
	return schema.Object(
		schema.F("title", schema.String()),
	)
}

func supplierObject() *schema.Node {
	return schema.Object(
		schema.F("IDS", schema.Integer()),
		schema.F("name", schema.String()),
		schema.F("SIRET", schema.Integer()),
		schema.F("headOffice", schema.String()),
		schema.F("revenue", schema.Number()),
	)
}

// Variant names the three database designs under comparison
type Variant string

const (
	DB1 Variant = "DB1" // fully normalized
	DB2 Variant = "DB2" // stock embedded in product
	DB3 Variant = "DB3" // product embedded in stock
)

// Setup builds a registry populated with the collections of one variant.
// Registration computes and caches every collection size up front.
func Setup(v Variant, stats *statistics.Statistics) *sizing.Registry {
	reg := sizing.NewRegistry(stats)
	switch v {
	case DB2:
		reg.Register("Prod", ProductWithStockSchema())
	case DB3:
		reg.Register("St", StockWithProductSchema())
	default:
		reg.Register("Prod", ProductSchema())
		reg.Register("St", StockSchema())
	}
	reg.Register("OL", OrderLineSchema())
	reg.Register("Cl", ClientSchema())
	reg.Register("Wa", WarehouseSchema())
	return reg
}

// Queries are the reference workload, Q1 through Q7
var Queries = map[string]string{
	"Q1": "SELECT S.quantity, S.location FROM Stock S WHERE S.IDP = $IDP AND S.IDW = $IDW;",
	"Q2": "SELECT P.name, P.price FROM Product P WHERE P.brand = $brand;",
	"Q3": "SELECT O.IDP, O.quantity FROM OrderLine O WHERE O.date = $date;",
	"Q4": "SELECT P.name, S.quantity FROM Stock S JOIN Product P ON S.IDP = P.IDP WHERE S.IDW = $IDW;",
	"Q5": "SELECT P.name, P.price, S.IDW, S.quantity FROM Product P JOIN Stock S ON P.IDP = S.IDP WHERE P.brand = 'Apple';",
	"Q6": `SELECT P.name, P.price, OL.NB FROM Product P JOIN (
	        SELECT O.IDP, SUM(O.quantity) AS NB FROM OrderLine O
	        GROUP BY O.IDP
	       ) OL ON P.IDP = O.IDP ORDER BY OL.NB DESC LIMIT 100;`,
	"Q7": `SELECT P.name, P.price, OL.NB FROM Product P JOIN (
	        SELECT O.IDP, SUM(O.quantity) AS NB FROM OrderLine O
	        WHERE O.IDC = 125 GROUP BY O.IDP
	       ) OL ON P.IDP = OL.IDP ORDER BY OL.NB DESC LIMIT 1;`,
}

// Strategies are the candidate sharding assignments per query family
var Strategies = map[string]cost.Sharding{
	"R1.1": {schema.EntityStock: "IDW"},
	"R1.2": {schema.EntityStock: "IDP"},
	"R2.1": {schema.EntityProduct: "brand"},
	"R2.2": {schema.EntityProduct: "IDP"},
	"R3.1": {schema.EntityOrderLine: "IDC"},
	"R3.2": {schema.EntityOrderLine: "IDP"},
	"R4.1": {schema.EntityStock: "IDW", schema.EntityProduct: "IDP"},
	"R4.2": {schema.EntityStock: "IDP", schema.EntityProduct: "IDP"},
	"R5.1": {schema.EntityProduct: "brand", schema.EntityStock: "IDP"},
	"R5.2": {schema.EntityProduct: "IDP", schema.EntityStock: "IDP"},
	"R6.1": {schema.EntityOrderLine: "IDC", schema.EntityProduct: "IDP"},
	"R6.2": {schema.EntityOrderLine: "IDP", schema.EntityProduct: "brand"},
	"R7.1": {schema.EntityOrderLine: "IDC", schema.EntityProduct: "IDP"},
	"R7.2": {schema.EntityOrderLine: "IDP", schema.EntityProduct: "IDP"},
}
