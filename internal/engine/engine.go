package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/cost"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/parser"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/sizing"
)

// Engine is the entry point for pricing query text against a registry: it
// runs parse → price and notifies observers at each phase boundary.
type Engine struct {
	reg       *sizing.Registry
	model     *cost.Model
	observers []Observer
}

// New creates an Engine over one registry (one database variant)
func New(reg *sizing.Registry) *Engine {
	return &Engine{
		reg:       reg,
		model:     cost.NewModel(reg),
		observers: make([]Observer, 0),
	}
}

// Registry returns the registry the engine prices against
func (e *Engine) Registry() *sizing.Registry {
	return e.reg
}

// AddObserver subscribes an observer to estimation lifecycle events
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// RemoveObserver unsubscribes a previously added observer
func (e *Engine) RemoveObserver(o Observer) {
	for i, existing := range e.observers {
		if existing == o {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// Estimate parses a query text and prices it under the sharding assignment
func (e *Engine) Estimate(query string, sh cost.Sharding) (*cost.Breakdown, error) {
	runID := uuid.New().String()

	e.notify(Event{Type: EventParseStart, RunID: runID, Data: query})
	q, err := parser.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	e.notify(Event{Type: EventParseEnd, RunID: runID, Data: fmt.Sprintf("%T", q)})

	e.notify(Event{Type: EventPriceStart, RunID: runID})
	breakdown, err := e.model.Price(q, sh)
	if err != nil {
		return nil, fmt.Errorf("pricing error: %w", err)
	}
	e.notify(Event{Type: EventPriceEnd, RunID: runID, Data: breakdown.Total})

	return breakdown, nil
}

// EstimateQuery prices an already-built descriptor, bypassing the parser
func (e *Engine) EstimateQuery(q cost.Query, sh cost.Sharding) (*cost.Breakdown, error) {
	return e.model.Price(q, sh)
}

func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, o := range e.observers {
		o.OnEvent(event)
	}
}
