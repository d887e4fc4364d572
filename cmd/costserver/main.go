package main

import (
	"flag"
	"log/slog"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/statistics"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/engine"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/logging"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/network"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/scenario"
)

func main() {
	port := flag.Int("port", 4321, "TCP port to listen on")
	variant := flag.String("variant", "DB1", "database variant to serve (DB1, DB2, DB3)")
	flag.Parse()

	logger, closeFn := logging.SetupLogger()
	defer closeFn()
	slog.SetDefault(logger)

	stats := statistics.Default()
	reg := scenario.Setup(scenario.Variant(*variant), stats)

	est := engine.New(reg)
	est.AddObserver(engine.NewLoggingObserver())

	slog.Info("Starting cost server", "variant", *variant, "collections", reg.Names())
	network.Start(*port, est)
}
