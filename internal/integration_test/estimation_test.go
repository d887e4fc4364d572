package integration

import (
	"testing"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/statistics"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/engine"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/scenario"
)

func setupEngine(t *testing.T, v scenario.Variant) *engine.Engine {
	t.Helper()
	return engine.New(scenario.Setup(v, statistics.Default()))
}

// Q1 is a point filter on Stock; sharding the collection by the filtered key
// turns the scatter into a single-server lookup.
func TestQ1StrategyComparison(t *testing.T) {
	est := setupEngine(t, scenario.DB1)

	byWarehouse, err := est.Estimate(scenario.Queries["Q1"], scenario.Strategies["R1.1"])
	if err != nil {
		t.Fatalf("R1.1: %v", err)
	}
	byProduct, err := est.Estimate(scenario.Queries["Q1"], scenario.Strategies["R1.2"])
	if err != nil {
		t.Fatalf("R1.2: %v", err)
	}

	// message 132 B; 200 matching stock docs of 152 B each
	if byWarehouse.Total != 162_400 {
		t.Errorf("R1.1: expected Vt 162400, got %f", byWarehouse.Total)
	}
	if byProduct.Total != 30_532 {
		t.Errorf("R1.2: expected Vt 30532, got %f", byProduct.Total)
	}
	if byProduct.Total >= byWarehouse.Total {
		t.Error("Expected sharding on the filtered key to be cheaper")
	}
}

// Q4 joins Stock to Product. DB1 pays the loop cost; DB2 and DB3 embed one
// entity in the other, so the same query collapses to a single filter.
func TestQ4AcrossVariants(t *testing.T) {
	sharding := scenario.Strategies["R4.2"]

	normalized, err := setupEngine(t, scenario.DB1).Estimate(scenario.Queries["Q4"], sharding)
	if err != nil {
		t.Fatalf("DB1: %v", err)
	}
	stockInProduct, err := setupEngine(t, scenario.DB2).Estimate(scenario.Queries["Q4"], sharding)
	if err != nil {
		t.Fatalf("DB2: %v", err)
	}
	productInStock, err := setupEngine(t, scenario.DB3).Estimate(scenario.Queries["Q4"], sharding)
	if err != nil {
		t.Fatalf("DB3: %v", err)
	}

	if normalized.Shape != "join" {
		t.Errorf("DB1: expected a join, got %s", normalized.Shape)
	}
	// 20,000,000 stock docs / 200 warehouses = 100,000 lookups
	if normalized.Loops != 100_000 {
		t.Errorf("DB1: expected 100000 lookups, got %d", normalized.Loops)
	}

	for name, got := range map[string]*struct {
		shape string
		c2    float64
		loops int64
		note  string
		total float64
	}{
		"DB2": {stockInProduct.Shape, stockInProduct.C2, stockInProduct.Loops, stockInProduct.Note, stockInProduct.Total},
		"DB3": {productInStock.Shape, productInStock.C2, productInStock.Loops, productInStock.Note, productInStock.Total},
	} {
		if got.shape != "filter" {
			t.Errorf("%s: expected the join rewritten to a filter, got %s", name, got.shape)
		}
		if got.c2 != 0 || got.loops != 0 {
			t.Errorf("%s: expected no loop cost, got C2=%f loops=%d", name, got.c2, got.loops)
		}
		if got.note == "" {
			t.Errorf("%s: expected a rewrite note", name)
		}
		if got.total >= normalized.Total {
			t.Errorf("%s: expected embedding to beat the join, got %f vs %f",
				name, got.total, normalized.Total)
		}
	}
}

// Q6 aggregates 4e9 order lines before joining; sharding OrderLine by the
// grouping key removes the shuffle phase entirely.
func TestQ6ShuffleDependsOnSharding(t *testing.T) {
	est := setupEngine(t, scenario.DB1)

	shuffled, err := est.Estimate(scenario.Queries["Q6"], scenario.Strategies["R6.1"])
	if err != nil {
		t.Fatalf("R6.1: %v", err)
	}
	aligned, err := est.Estimate(scenario.Queries["Q6"], scenario.Strategies["R6.2"])
	if err != nil {
		t.Fatalf("R6.2: %v", err)
	}

	if shuffled.Shape != "aggregate_join" || aligned.Shape != "aggregate_join" {
		t.Fatalf("Expected aggregate_join shapes, got %s and %s", shuffled.Shape, aligned.Shape)
	}
	if !shuffled.NeedsShuffle || shuffled.Shuffle <= 0 {
		t.Error("R6.1: expected a shuffle when grouping off the shard key")
	}
	if aligned.NeedsShuffle || aligned.Shuffle != 0 {
		t.Error("R6.2: expected no shuffle when sharded by the grouping key")
	}
	if aligned.Total >= shuffled.Total {
		t.Errorf("Expected R6.2 cheaper than R6.1, got %f vs %f", aligned.Total, shuffled.Total)
	}
	// LIMIT 100 caps the post-join lookups
	if shuffled.Loops != 100 {
		t.Errorf("Expected 100 group lookups, got %d", shuffled.Loops)
	}
}

// Q7 filters on one client before grouping; sharding by the filter key pins
// the whole aggregation to a single server.
func TestQ7FilterPinsOneServer(t *testing.T) {
	est := setupEngine(t, scenario.DB1)

	pinned, err := est.Estimate(scenario.Queries["Q7"], scenario.Strategies["R7.1"])
	if err != nil {
		t.Fatalf("R7.1: %v", err)
	}
	broadcast, err := est.Estimate(scenario.Queries["Q7"], scenario.Strategies["R7.2"])
	if err != nil {
		t.Fatalf("R7.2: %v", err)
	}

	if pinned.NeedsShuffle || pinned.Shuffle != 0 {
		t.Error("R7.1: expected the shard-key filter to avoid the shuffle")
	}
	// record 60 B; 4e9 lines / 1e7 clients = 400 rows on 1 server, then a
	// single product lookup for the LIMIT 1 group
	if pinned.C1 != 24_060 {
		t.Errorf("R7.1: expected C1 24060, got %f", pinned.C1)
	}
	if pinned.Loops != 1 {
		t.Errorf("R7.1: expected a single lookup, got %d", pinned.Loops)
	}
	if pinned.Total != 25_172 {
		t.Errorf("R7.1: expected Vt 25172, got %f", pinned.Total)
	}
	if pinned.Total >= broadcast.Total {
		t.Errorf("Expected R7.1 cheaper than R7.2, got %f vs %f", pinned.Total, broadcast.Total)
	}
}

// The normalized database's total size is dominated by the 4e9 order lines.
func TestDatabaseTotals(t *testing.T) {
	reg := scenario.Setup(scenario.DB1, statistics.Default())

	total, perCollection, err := reg.DatabaseSize()
	if err != nil {
		t.Fatalf("Expected totals, got error: %v", err)
	}

	want := map[string]float64{
		"Prod": 980 * 100_000,
		"St":   152 * 20_000_000,
		"OL":   356 * 4_000_000_000,
		"Cl":   512 * 10_000_000,
		"Wa":   132 * 200,
	}
	sum := 0.0
	for name, size := range want {
		if perCollection[name] != size {
			t.Errorf("%s: expected %f bytes, got %f", name, size, perCollection[name])
		}
		sum += size
	}
	if total != sum {
		t.Errorf("Expected database total %f, got %f", sum, total)
	}
}
