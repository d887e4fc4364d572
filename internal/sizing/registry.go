package sizing

import (
	"log/slog"
	"math"
	"sync"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/statistics"
)

// Collection couples a developer-chosen name with its schema and expected
// document count. Immutable after registration except for the cached size.
type Collection struct {
	Name     string
	Schema   *schema.Node
	Entity   schema.Entity
	DocCount int64
	Size     SizeBreakdown
}

// Registry holds the registered collections of one database variant together
// with their eagerly computed sizes. Each what-if scenario gets its own
// registry; the size cache is write-once per collection and idempotent to
// recompute, so concurrent reads need no coordination beyond the RWMutex.
type Registry struct {
	mu          sync.RWMutex
	stats       *statistics.Statistics
	calc        *Calculator
	collections map[string]*Collection
	byEntity    map[schema.Entity]string
	order       []string
}

func NewRegistry(stats *statistics.Statistics) *Registry {
	return &Registry{
		stats:       stats,
		calc:        NewCalculator(stats),
		collections: make(map[string]*Collection),
		byEntity:    make(map[schema.Entity]string),
	}
}

// Stats returns the statistics the registry was built with
func (r *Registry) Stats() *statistics.Statistics {
	return r.stats
}

// Calculator returns the size calculator shared by the registry
func (r *Registry) Calculator() *Calculator {
	return r.calc
}

// Register adds a collection and computes its size immediately. The document
// count defaults to the detected entity's population. Registering the same
// name twice overwrites the previous entry.
func (r *Registry) Register(name string, node *schema.Node) *Collection {
	return r.RegisterWithCount(name, node, 0)
}

// RegisterWithCount is Register with an explicit document count (0 = derive)
func (r *Registry) RegisterWithCount(name string, node *schema.Node, docCount int64) *Collection {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.calc.documentSize(node, docCount)
	coll := &Collection{
		Name:     name,
		Schema:   node,
		Entity:   size.Entity,
		DocCount: size.DocCount,
		Size:     size,
	}

	if _, exists := r.collections[name]; !exists {
		r.order = append(r.order, name)
	}
	r.collections[name] = coll
	if coll.Entity.Known() {
		r.byEntity[coll.Entity] = name
	}

	slog.Debug("collection registered",
		"name", name,
		"entity", coll.Entity,
		"docs", coll.DocCount,
		"document_bytes", size.Document)
	return coll
}

// Get returns a registered collection by name
func (r *Registry) Get(name string) (*Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coll, ok := r.collections[name]
	if !ok {
		return nil, &UnknownCollectionError{Name: name}
	}
	return coll, nil
}

// ByEntity resolves the collection registered for an entity, if any
func (r *Registry) ByEntity(e schema.Entity) (*Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byEntity[e]
	if !ok {
		return nil, false
	}
	return r.collections[name], true
}

// Names returns the collection names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// CollectionSize returns the cached byte size of one collection
func (r *Registry) CollectionSize(name string) (float64, error) {
	coll, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	return coll.Size.Collection, nil
}

// DatabaseSize sums all registered collections. The per-collection map uses
// the registered names as keys.
func (r *Registry) DatabaseSize() (float64, map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0.0
	perCollection := make(map[string]float64, len(r.collections))
	for _, name := range r.order {
		coll, ok := r.collections[name]
		if !ok {
			return 0, nil, &UnknownCollectionError{Name: name}
		}
		perCollection[name] = coll.Size.Collection
		total += coll.Size.Collection
	}
	return total, perCollection, nil
}

// Distribution describes how a sharded collection spreads over the servers
type Distribution struct {
	Collection         string
	ShardKey           string
	TotalDocs          int64
	DistinctValues     int64
	Servers            int64
	AvgDocsPerServer   float64
	AvgValuesPerServer float64
}

// ShardingDistribution computes the average per-server document and distinct
// key-value counts for a sharding key choice. Pure arithmetic; the size model
// is not involved.
func (r *Registry) ShardingDistribution(name, shardKey string, distinctValues, servers int64) (Distribution, error) {
	coll, err := r.Get(name)
	if err != nil {
		return Distribution{}, err
	}
	return Distribution{
		Collection:         name,
		ShardKey:           shardKey,
		TotalDocs:          coll.DocCount,
		DistinctValues:     distinctValues,
		Servers:            servers,
		AvgDocsPerServer:   round2(float64(coll.DocCount) / float64(servers)),
		AvgValuesPerServer: round2(float64(distinctValues) / float64(servers)),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
