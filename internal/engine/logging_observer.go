package engine

import "log/slog"

// LoggingObserver logs every estimation lifecycle event using structured
// logging, so runs can be filtered by run ID.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{
		logger: slog.Default(),
	}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Info("estimation_lifecycle",
		"event", event.Type,
		"run_id", event.RunID,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
