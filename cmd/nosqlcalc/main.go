package main

import (
	"flag"
	"log/slog"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/statistics"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/engine"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/logging"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/repl"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/scenario"
)

func main() {
	variant := flag.String("variant", "DB1", "database variant to load (DB1, DB2, DB3)")
	flag.Parse()

	logger, closeFn := logging.SetupLogger()
	defer closeFn()
	slog.SetDefault(logger)

	stats := statistics.Default()
	reg := scenario.Setup(scenario.Variant(*variant), stats)

	repl.Start(engine.New(reg))
}
