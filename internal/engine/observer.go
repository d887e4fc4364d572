package engine

import "time"

// EventType represents the lifecycle phases of one estimation run
type EventType string

const (
	EventParseStart EventType = "parse_start"
	EventParseEnd   EventType = "parse_end"
	EventPriceStart EventType = "price_start"
	EventPriceEnd   EventType = "price_end"
)

// Event is one lifecycle event of an estimation run
type Event struct {
	Type      EventType
	RunID     string // unique ID of the estimation run, for tracing
	Timestamp time.Time
	Data      interface{} // phase-specific data (query text, shape, total Vt)
}

// Observer receives events at major estimation phases
type Observer interface {
	OnEvent(event Event)
}
