package cost

import (
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
)

// Query is the closed set of query shapes the cost model prices. The shape is
// decided once, when the descriptor is built, so the model can switch
// exhaustively instead of probing optional fields.
type Query interface {
	EntryEntity() schema.Entity
	queryShape() string
}

// Filter is an equality filter on one collection, no join, no grouping.
type Filter struct {
	Entry     schema.Entity
	FilterKey string
	Select    []string // projected fields beyond the filter key
	// Matches overrides the derived result-count estimate. It exists for
	// the scenario-specific cases (combined equality filters, known brand
	// populations) that the general selectivity rule cannot derive.
	Matches int64
	Limit   int64
}

// Join filters the entry collection and looks up each result in the target.
type Join struct {
	Entry     schema.Entity
	Target    schema.Entity
	FilterKey string
	JoinKey   string
	Select    []string
	Matches   int64
}

// Aggregate groups the entry collection and reduces one field per group.
type Aggregate struct {
	Entry     schema.Entity
	GroupKey  string
	FilterKey string // optional equality filter applied before grouping
	AggOp     string // SUM, AVG, COUNT, MAX, MIN
	AggField  string
	Limit     int64
	Matches   int64
}

// AggregateJoin is an Aggregate whose grouped results each trigger one lookup
// into a target collection (e.g. fetching names for grouped ids).
type AggregateJoin struct {
	Aggregate
	Target  schema.Entity
	JoinKey string
	Select  []string
}

func (q *Filter) EntryEntity() schema.Entity        { return q.Entry }
func (q *Join) EntryEntity() schema.Entity          { return q.Entry }
func (q *Aggregate) EntryEntity() schema.Entity     { return q.Entry }
func (q *AggregateJoin) EntryEntity() schema.Entity { return q.Entry }

func (q *Filter) queryShape() string        { return "filter" }
func (q *Join) queryShape() string          { return "join" }
func (q *Aggregate) queryShape() string     { return "aggregate" }
func (q *AggregateJoin) queryShape() string { return "aggregate_join" }
