package sizing

import (
	"errors"
	"testing"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/statistics"
)

func stockSchema() *schema.Node {
	return schema.Object(
		schema.F("IDW", schema.Integer()),
		schema.F("IDP", schema.Integer()),
		schema.F("quantity", schema.Integer()),
		schema.F("location", schema.String()),
	)
}

func TestRegisterDefaultsDocCount(t *testing.T) {
	reg := NewRegistry(statistics.Default())
	coll := reg.Register("Stock", stockSchema())

	if coll.Entity != schema.EntityStock {
		t.Fatalf("Expected St, got %s", coll.Entity)
	}
	// stock population is products x warehouses
	if coll.DocCount != 100_000*200 {
		t.Errorf("Expected %d docs, got %d", 100_000*200, coll.DocCount)
	}
	if coll.Size.Document != 152 {
		t.Errorf("Expected document size 152, got %f", coll.Size.Document)
	}
}

func TestRegisterCachesSize(t *testing.T) {
	reg := NewRegistry(statistics.Default())
	reg.Register("Stock", stockSchema())

	first, err := reg.Get("Stock")
	if err != nil {
		t.Fatalf("Expected collection, got error: %v", err)
	}
	second, err := reg.Get("Stock")
	if err != nil {
		t.Fatalf("Expected collection, got error: %v", err)
	}
	if first != second {
		t.Errorf("Expected the same cached collection on repeated lookups")
	}
	if first.Size.Document != second.Size.Document {
		t.Errorf("Expected identical cached sizes, got %f and %f",
			first.Size.Document, second.Size.Document)
	}
}

func TestRegisterOverwrites(t *testing.T) {
	reg := NewRegistry(statistics.Default())
	reg.RegisterWithCount("Stock", stockSchema(), 100)
	reg.RegisterWithCount("Stock", stockSchema(), 500)

	coll, err := reg.Get("Stock")
	if err != nil {
		t.Fatalf("Expected collection, got error: %v", err)
	}
	if coll.DocCount != 500 {
		t.Errorf("Expected overwritten doc count 500, got %d", coll.DocCount)
	}
	if len(reg.Names()) != 1 {
		t.Errorf("Expected a single registered name, got %v", reg.Names())
	}
}

func TestGetUnknownCollection(t *testing.T) {
	reg := NewRegistry(statistics.Default())
	_, err := reg.Get("Nope")
	if err == nil {
		t.Fatal("Expected an error for an unregistered collection")
	}
	var unknown *UnknownCollectionError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownCollectionError, got %T", err)
	}
	if unknown.Name != "Nope" {
		t.Errorf("Expected error to carry the name, got %q", unknown.Name)
	}
}

func TestByEntity(t *testing.T) {
	reg := NewRegistry(statistics.Default())
	reg.Register("Stock", stockSchema())

	coll, ok := reg.ByEntity(schema.EntityStock)
	if !ok {
		t.Fatal("Expected a collection for St")
	}
	if coll.Name != "Stock" {
		t.Errorf("Expected Stock, got %s", coll.Name)
	}
	if _, ok := reg.ByEntity(schema.EntityClient); ok {
		t.Error("Expected no collection for Cl")
	}
}

func TestDatabaseSize(t *testing.T) {
	reg := NewRegistry(statistics.Default())
	reg.RegisterWithCount("Stock", stockSchema(), 10)
	reg.RegisterWithCount("Warehouse", schema.Object(
		schema.F("IDW", schema.Integer()),
		schema.F("address", schema.String()),
		schema.F("capacity", schema.Integer()),
	), 4)

	total, perCollection, err := reg.DatabaseSize()
	if err != nil {
		t.Fatalf("Expected totals, got error: %v", err)
	}
	// Stock 152 x 10, Warehouse 132 x 4
	if perCollection["Stock"] != 1520 {
		t.Errorf("Expected Stock 1520, got %f", perCollection["Stock"])
	}
	if perCollection["Warehouse"] != 528 {
		t.Errorf("Expected Warehouse 528, got %f", perCollection["Warehouse"])
	}
	if total != 2048 {
		t.Errorf("Expected total 2048, got %f", total)
	}
}

func TestShardingDistribution(t *testing.T) {
	reg := NewRegistry(statistics.Default())
	reg.RegisterWithCount("OrderLine", schema.Object(
		schema.F("IDP", schema.Integer()),
		schema.F("date", schema.Date()),
		schema.F("deliveryDate", schema.Date()),
	), 100_000_000)

	dist, err := reg.ShardingDistribution("OrderLine", "IDP", 5000, 1000)
	if err != nil {
		t.Fatalf("Expected a distribution, got error: %v", err)
	}
	if dist.AvgDocsPerServer != 100000.00 {
		t.Errorf("Expected 100000.00 docs per server, got %f", dist.AvgDocsPerServer)
	}
	if dist.AvgValuesPerServer != 5.00 {
		t.Errorf("Expected 5.00 values per server, got %f", dist.AvgValuesPerServer)
	}

	if _, err := reg.ShardingDistribution("Nope", "IDP", 1, 1); err == nil {
		t.Error("Expected an error for an unregistered collection")
	}
}
