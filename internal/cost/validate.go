package cost

import "fmt"

// InvalidQueryError reports a descriptor that cannot be priced as built
type InvalidQueryError struct {
	Shape  string
	Field  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid %s query: %s: %s", e.Shape, e.Field, e.Reason)
}

// Validate checks the structural invariants of a descriptor before pricing.
// Descriptors come from the parser or are built by callers directly; either
// way the model only prices well-formed ones.
func Validate(q Query) error {
	if q == nil {
		return &InvalidQueryError{Shape: "nil", Field: "query", Reason: "no descriptor"}
	}
	shape := q.queryShape()
	if !q.EntryEntity().Known() {
		return &InvalidQueryError{Shape: shape, Field: "entry", Reason: "unrecognized entity"}
	}

	switch query := q.(type) {
	case *Filter:
		if query.Limit < 0 {
			return &InvalidQueryError{Shape: shape, Field: "limit", Reason: "must not be negative"}
		}
	case *Join:
		if !query.Target.Known() {
			return &InvalidQueryError{Shape: shape, Field: "target", Reason: "unrecognized entity"}
		}
		if query.JoinKey == "" {
			return &InvalidQueryError{Shape: shape, Field: "join key", Reason: "required for a join"}
		}
	case *Aggregate:
		return validateAggregate(shape, query)
	case *AggregateJoin:
		if !query.Target.Known() {
			return &InvalidQueryError{Shape: shape, Field: "target", Reason: "unrecognized entity"}
		}
		if query.JoinKey == "" {
			return &InvalidQueryError{Shape: shape, Field: "join key", Reason: "required for a post-join"}
		}
		return validateAggregate(shape, &query.Aggregate)
	}
	return nil
}

func validateAggregate(shape string, q *Aggregate) error {
	if q.GroupKey == "" {
		return &InvalidQueryError{Shape: shape, Field: "group key", Reason: "required for an aggregate"}
	}
	if q.AggOp != "" && q.AggField == "" {
		return &InvalidQueryError{Shape: shape, Field: "aggregate field", Reason: fmt.Sprintf("required for %s", q.AggOp)}
	}
	if q.Limit < 0 {
		return &InvalidQueryError{Shape: shape, Field: "limit", Reason: "must not be negative"}
	}
	return nil
}
