package repl

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/cost"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/engine"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/parser"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/report"
)

// Start runs the interactive estimation shell. Anything that is not a command
// is treated as a query and priced under the current sharding assignment.
func Start(est *engine.Engine) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Welcome to the NoSQL cost estimator")
	fmt.Println("Commands: shard Coll=key ..., size <collection>, db, exit")

	sharding := cost.Sharding{}

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if line == "exit" || line == "\\q" {
			break
		}

		switch {
		case strings.HasPrefix(line, "shard "):
			sharding = parseSharding(strings.TrimPrefix(line, "shard "))
			fmt.Printf("Sharding assignment: %v\n", sharding)

		case strings.HasPrefix(line, "size "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "size "))
			coll, err := est.Registry().Get(name)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			report.PrintCollection(os.Stdout, coll)

		case line == "db":
			if err := report.PrintDatabase(os.Stdout, est.Registry()); err != nil {
				fmt.Printf("Error: %v\n", err)
			}

		default:
			breakdown, err := est.Estimate(line, sharding)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			report.PrintBreakdown(os.Stdout, "query", breakdown)
		}
	}
}

// parseSharding reads "St=IDW Prod=IDP" style assignments
func parseSharding(args string) cost.Sharding {
	sh := cost.Sharding{}
	for _, pair := range strings.Fields(args) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			fmt.Printf("Skipping malformed assignment %q (want Coll=key)\n", pair)
			continue
		}
		entity := parser.Normalize(parts[0])
		if !entity.Known() {
			fmt.Printf("Skipping unknown collection %q\n", parts[0])
			continue
		}
		sh[entity] = parts[1]
	}
	return sh
}
