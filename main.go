package main

import (
	"fmt"
	"os"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/statistics"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/engine"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/logging"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/report"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/scenario"
)

// The demo driver replays the course what-if analysis: collection and
// database sizes for the normalized model, sharding distributions, then the
// cost of the reference queries under each candidate sharding strategy and
// database variant.
func main() {
	logger, closeFn := logging.SetupLogger()
	defer closeFn()

	logger.Info("Starting estimator demo...")

	stats := statistics.Default()
	db1 := scenario.Setup(scenario.DB1, stats)

	fmt.Println("==== PART 1: sizes (DB1, normalized) ====")
	for _, name := range db1.Names() {
		coll, err := db1.Get(name)
		if err != nil {
			logger.Error("collection lookup failed", "name", name, "error", err)
			os.Exit(1)
		}
		report.PrintCollection(os.Stdout, coll)
		fmt.Println()
	}
	if err := report.PrintDatabase(os.Stdout, db1); err != nil {
		logger.Error("database summary failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("\n==== PART 2: sharding distributions ====")
	dist, err := db1.ShardingDistribution("Prod", "IDP", stats.Products, stats.Servers)
	if err != nil {
		logger.Error("sharding distribution failed", "error", err)
		os.Exit(1)
	}
	report.PrintDistribution(os.Stdout, dist)

	dist, err = db1.ShardingDistribution("Prod", "brand", stats.Brands, stats.Servers)
	if err != nil {
		logger.Error("sharding distribution failed", "error", err)
		os.Exit(1)
	}
	report.PrintDistribution(os.Stdout, dist)

	fmt.Println("\n==== PART 3: query costs on DB1 ====")
	est := engine.New(db1)
	est.AddObserver(engine.NewLoggingObserver())

	cases := []struct{ query, strategy string }{
		{"Q1", "R1.1"}, {"Q1", "R1.2"},
		{"Q2", "R2.1"}, {"Q2", "R2.2"},
		{"Q3", "R3.1"}, {"Q3", "R3.2"},
		{"Q4", "R4.1"}, {"Q4", "R4.2"},
		{"Q5", "R5.1"}, {"Q5", "R5.2"},
		{"Q6", "R6.1"}, {"Q6", "R6.2"},
		{"Q7", "R7.1"}, {"Q7", "R7.2"},
	}
	for _, c := range cases {
		runCase(est, c.query, c.strategy)
	}

	fmt.Println("\n==== PART 4: denormalization impact on Q4 ====")
	runCase(est, "Q4", "R4.2")
	for _, variant := range []scenario.Variant{scenario.DB2, scenario.DB3} {
		fmt.Printf("-- %s --\n", variant)
		runCase(engine.New(scenario.Setup(variant, stats)), "Q4", "R4.2")
	}
}

func runCase(est *engine.Engine, queryName, strategyName string) {
	breakdown, err := est.Estimate(scenario.Queries[queryName], scenario.Strategies[strategyName])
	if err != nil {
		fmt.Printf("%s (%s): error: %v\n", queryName, strategyName, err)
		return
	}
	report.PrintBreakdown(os.Stdout, fmt.Sprintf("%s (%s)", queryName, strategyName), breakdown)
	fmt.Println()
}
