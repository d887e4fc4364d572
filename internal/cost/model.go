package cost

import (
	"fmt"
	"log/slog"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/sizing"
)

// Breakdown is the priced result of one query under one sharding assignment:
// per-phase network volumes in bytes, the loop count of the lookup phase, and
// a human-readable strategy label per phase. Never mutated after return.
type Breakdown struct {
	Shape   string
	C1      float64
	C2      float64
	C3      float64
	Shuffle float64
	Loops   int64
	Results float64 // estimated result count of the C1 phase
	Total   float64 // Vt

	NeedsShuffle bool
	C1Strategy   string
	C2Strategy   string
	C3Strategy   string
	Note         string
}

// Model prices queries against the collections of one registry. It reuses the
// registry's cached document sizes, the cardinality-free projection sizing,
// and the classifier-driven embedding detection. The model holds no mutable
// state; one instance can price any number of queries.
type Model struct {
	reg *sizing.Registry
}

func NewModel(reg *sizing.Registry) *Model {
	return &Model{reg: reg}
}

// Price computes the network-volume cost of one query under the given
// sharding assignment.
func (m *Model) Price(q Query, sh Sharding) (*Breakdown, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}
	switch query := q.(type) {
	case *Filter:
		return m.priceFilter(query, sh)
	case *Join:
		return m.priceJoin(query, sh)
	case *Aggregate:
		return m.priceAggregate(query, nil, sh)
	case *AggregateJoin:
		return m.priceAggregate(&query.Aggregate, query, sh)
	default:
		return nil, fmt.Errorf("unsupported query shape %T", q)
	}
}

// priceFilter prices a single-collection equality filter: one scatter (or
// targeted) request plus the matching documents coming back.
func (m *Model) priceFilter(q *Filter, sh Sharding) (*Breakdown, error) {
	coll, err := m.collectionFor(q.Entry)
	if err != nil {
		return nil, err
	}

	servers, strategy := m.servers(q.FilterKey, coll.Entity, sh)
	message := m.projectionSize(coll, append([]string{q.FilterKey}, q.Select...))
	results := m.resultCount(coll, q.FilterKey, q.Matches)
	if q.Limit > 0 && results > float64(q.Limit) {
		results = float64(q.Limit)
	}

	c1 := float64(servers)*message + results*coll.Size.Document
	return &Breakdown{
		Shape:      "filter",
		C1:         c1,
		Results:    results,
		Total:      c1,
		C1Strategy: strategy,
	}, nil
}

// priceJoin prices entry-filter plus per-result lookups into the target.
// Before charging anything it checks whether the active schema variant already
// co-locates the two entities by embedding; if so, the join collapses to a
// filter on the host collection and no loop cost is charged.
func (m *Model) priceJoin(q *Join, sh Sharding) (*Breakdown, error) {
	if host, ok := m.embeddingHost(q.Entry, q.Target); ok {
		breakdown, err := m.priceFilter(&Filter{
			Entry:     host.Entity,
			FilterKey: q.FilterKey,
			Select:    q.Select,
			Matches:   q.Matches,
		}, sh)
		if err != nil {
			return nil, err
		}
		breakdown.Note = fmt.Sprintf(
			"join rewritten: %s and %s are co-located in collection '%s'",
			q.Entry, q.Target, host.Name)
		return breakdown, nil
	}

	entry, err := m.collectionFor(q.Entry)
	if err != nil {
		return nil, err
	}
	target, err := m.collectionFor(q.Target)
	if err != nil {
		return nil, err
	}

	servers, c1Strategy := m.servers(q.FilterKey, entry.Entity, sh)
	message := m.projectionSize(entry, append([]string{q.FilterKey, q.JoinKey}, q.Select...))
	results := m.resultCount(entry, q.FilterKey, q.Matches)
	c1 := float64(servers)*message + results*entry.Size.Document

	// One lookup per C1 result, priced under the target's own shard key.
	loopServers, c2Strategy := m.servers(q.JoinKey, target.Entity, sh)
	lookupMessage := m.projectionSize(target, append([]string{q.JoinKey}, q.Select...))
	c2 := float64(loopServers)*lookupMessage + target.Size.Document

	loops := int64(results)
	if loops < 1 {
		loops = 1
	}

	return &Breakdown{
		Shape:      "join",
		C1:         c1,
		C2:         c2,
		Loops:      loops,
		Results:    results,
		Total:      c1 + float64(loops)*c2,
		C1Strategy: c1Strategy,
		C2Strategy: c2Strategy,
	}, nil
}

// priceAggregate prices the three-phase group-by plan: local scan/filter,
// optional cross-server shuffle, and collection of the aggregated groups.
// When postJoin is non-nil each group additionally triggers one lookup into
// the target collection (C3 replaces the C2 charge).
func (m *Model) priceAggregate(q *Aggregate, postJoin *AggregateJoin, sh Sharding) (*Breakdown, error) {
	entry, err := m.collectionFor(q.Entry)
	if err != nil {
		return nil, err
	}

	shardKey, _ := sh.Key(entry.Entity)
	filterOnShardKey := q.FilterKey != "" && q.FilterKey == shardKey

	servers := m.reg.Stats().Servers
	c1Strategy := fmt.Sprintf("scan: all %d servers", servers)
	if filterOnShardKey {
		servers = 1
		c1Strategy = fmt.Sprintf("targeted: filter key %s matches shard key (1 server)", q.FilterKey)
	}

	// Aggregation only moves projections of the referenced fields, never
	// whole documents.
	record := m.projectionSize(entry, []string{q.FilterKey, q.GroupKey, q.AggField})
	results := m.resultCount(entry, q.FilterKey, q.Matches)
	c1 := float64(servers)*record + results*record

	// Shuffle is needed unless the data is already partitioned by the
	// grouping key, or the filter pinned the whole computation to one server.
	needsShuffle := q.GroupKey != shardKey && !filterOnShardKey
	shuffle := 0.0
	if needsShuffle {
		shuffle = (results - 1) * float64(m.reg.Stats().Servers) * record
	}

	groups := results
	if distinct, ok := m.reg.Stats().DistinctValues(q.GroupKey); ok && groups > float64(distinct) {
		groups = float64(distinct)
	}
	if q.Limit > 0 && groups > float64(q.Limit) {
		groups = float64(q.Limit)
	}
	if groups < 1 {
		groups = 1
	}

	breakdown := &Breakdown{
		C1:           c1,
		Shuffle:      shuffle,
		Results:      results,
		NeedsShuffle: needsShuffle,
		C1Strategy:   c1Strategy,
	}

	if postJoin == nil {
		breakdown.Shape = "aggregate"
		breakdown.C2 = groups * record
		breakdown.C2Strategy = fmt.Sprintf("collect %.0f aggregated groups", groups)
		breakdown.Loops = 1
		breakdown.Total = c1 + shuffle + breakdown.C2
		return breakdown, nil
	}

	target, err := m.collectionFor(postJoin.Target)
	if err != nil {
		return nil, err
	}
	loopServers, c3Strategy := m.servers(postJoin.JoinKey, target.Entity, sh)
	lookupMessage := m.projectionSize(target, append([]string{postJoin.JoinKey}, postJoin.Select...))
	lookup := float64(loopServers)*lookupMessage + target.Size.Document

	breakdown.Shape = "aggregate_join"
	breakdown.C3 = groups * lookup
	breakdown.C3Strategy = c3Strategy
	breakdown.Loops = int64(groups)
	breakdown.Total = c1 + shuffle + breakdown.C3
	return breakdown, nil
}

// servers applies the sharded/unsharded rule: a key equal to the collection's
// shard key targets a single server, anything else broadcasts to all of them.
func (m *Model) servers(key string, entity schema.Entity, sh Sharding) (int64, string) {
	shardKey, assigned := sh.Key(entity)
	if assigned && key != "" && key == shardKey {
		return 1, fmt.Sprintf("targeted: key %s matches shard key (1 server)", key)
	}
	total := m.reg.Stats().Servers
	return total, fmt.Sprintf("broadcast: key %q vs shard key %q (%d servers)", key, shardKey, total)
}

// collectionFor resolves the collection registered for an entity. An entity
// with no registered collection is an immediate error, never a default.
func (m *Model) collectionFor(e schema.Entity) (*sizing.Collection, error) {
	coll, ok := m.reg.ByEntity(e)
	if !ok {
		return nil, &sizing.UnknownCollectionError{Name: string(e)}
	}
	return coll, nil
}

// resultCount estimates how many documents an equality filter returns: the
// collection population divided by the key's distinct-value count. A
// scenario-supplied override wins; an absent filter means a full scan; a key
// without distinct-value data is treated as a unique identifier (one match).
func (m *Model) resultCount(coll *sizing.Collection, filterKey string, override int64) float64 {
	if override > 0 {
		return float64(override)
	}
	if filterKey == "" {
		return float64(coll.DocCount)
	}
	if distinct, ok := m.reg.Stats().DistinctValues(filterKey); ok && distinct > 0 {
		return float64(coll.DocCount) / float64(distinct)
	}
	slog.Debug("no distinct-value data for filter key, assuming unique match",
		"collection", coll.Name, "key", filterKey)
	return 1
}

// projectionSize prices the field-restricted projection a query message or
// record carries: only the referenced scalar fields plus their key overhead,
// never the full document. Fields missing from the schema contribute zero,
// with a diagnostic.
func (m *Model) projectionSize(coll *sizing.Collection, fields []string) float64 {
	seen := make(map[string]bool, len(fields))
	size := 0.0
	for _, field := range fields {
		if field == "" || seen[field] {
			continue
		}
		seen[field] = true
		node := findField(coll.Schema, field)
		if node == nil || !node.IsScalar() {
			slog.Debug("projection field not found in schema, contributes 0 bytes",
				"collection", coll.Name, "field", field)
			continue
		}
		size += sizing.ScalarBytes(node.Type, field) + sizing.SizeKeyValue
	}
	return size
}

// findField returns the first scalar node declared under the given name,
// searching depth-first through nested objects and arrays.
func findField(n *schema.Node, name string) *schema.Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case schema.TypeObject:
		for _, f := range n.Fields {
			if f.Name == name && f.Node.IsScalar() {
				return f.Node
			}
		}
		for _, f := range n.Fields {
			if found := findField(f.Node, name); found != nil {
				return found
			}
		}
	case schema.TypeArray:
		return findField(n.Items, name)
	}
	return nil
}

// embeddingHost reports whether one of the two entities is structurally
// embedded in the other's registered schema. The returned collection is the
// host the rewritten filter runs on.
func (m *Model) embeddingHost(entry, target schema.Entity) (*sizing.Collection, bool) {
	if coll, ok := m.reg.ByEntity(entry); ok && embedsEntity(coll.Schema, target) {
		return coll, true
	}
	if coll, ok := m.reg.ByEntity(target); ok && embedsEntity(coll.Schema, entry) {
		return coll, true
	}
	return nil, false
}

// embedsEntity reports whether any nested object (or array of objects) below
// the root classifies to the given entity.
func embedsEntity(root *schema.Node, e schema.Entity) bool {
	var walk func(n *schema.Node, isRoot bool) bool
	walk = func(n *schema.Node, isRoot bool) bool {
		if n == nil {
			return false
		}
		switch n.Type {
		case schema.TypeObject:
			if !isRoot && schema.Classify(n) == e {
				return true
			}
			for _, f := range n.Fields {
				if walk(f.Node, false) {
					return true
				}
			}
		case schema.TypeArray:
			return walk(n.Items, false)
		}
		return false
	}
	return walk(root, true)
}
