package sizing

import (
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/statistics"
)

// Per-type unit costs in bytes. Every size in the model is linear in these
// five constants, including array contents and query projections.
const (
	SizeNumber     = 8
	SizeString     = 80
	SizeDate       = 20
	SizeLongString = 200
	SizeKeyValue   = 12
)

// Bytes prices a scalar bucket with the unit costs
func (c TypeCounts) Bytes() float64 {
	return float64(c.Int)*SizeNumber +
		float64(c.String)*SizeString +
		float64(c.Date)*SizeDate +
		float64(c.Long)*SizeLongString
}

// ScalarBytes returns the unit cost of one scalar node, long-string promotion
// included
func ScalarBytes(t schema.NodeType, fieldName string) float64 {
	var c TypeCounts
	c.add(t, fieldName)
	return c.Bytes()
}

// SizeBreakdown is the result of pricing one document schema. It is a pure
// function output: recomputing it for the same schema yields identical values.
type SizeBreakdown struct {
	Entity       schema.Entity
	DocCount     int64
	Outside      float64 // scalar bytes outside any array
	Inside       float64 // scalar bytes inside arrays, scaled by cardinality
	Keys         float64 // key/value overhead bytes
	Merges       int
	ArrayLengths map[string]float64 // cardinality applied per array
	Document     float64
	Collection   float64
}

// Calculator prices document schemas against a fixed set of statistics
type Calculator struct {
	stats *statistics.Statistics
	cards *statistics.Cardinality
}

func NewCalculator(stats *statistics.Statistics) *Calculator {
	return &Calculator{
		stats: stats,
		cards: statistics.NewCardinality(stats),
	}
}

// Cardinality exposes the derived relationship matrix
func (c *Calculator) Cardinality() *statistics.Cardinality {
	return c.cards
}

// DocumentSize computes the full byte breakdown of one document of the given
// schema, and of the whole collection using the entity's population count.
func (c *Calculator) DocumentSize(root *schema.Node) SizeBreakdown {
	return c.documentSize(root, 0)
}

// documentSize computes the breakdown with an explicit doc count; zero means
// use the detected entity's population.
func (c *Calculator) documentSize(root *schema.Node, docCount int64) SizeBreakdown {
	entity := schema.Classify(root)
	outside, inside := CountScalars(root)
	merges := CountMerges(root)

	breakdown := SizeBreakdown{
		Entity:       entity,
		Outside:      outside.Bytes(),
		Merges:       merges,
		ArrayLengths: make(map[string]float64, len(inside)),
	}

	// Arrays contribute their item scalars scaled by the expected length,
	// looked up as (array owner, mapped child entity) in the matrix.
	keyedFields := float64(outside.Total())
	for name, bucket := range inside {
		child, ok := schema.ArrayEntity[name]
		if !ok {
			child = schema.EntityUnknown
		}
		owner := bucket.Owner
		if !owner.Known() {
			owner = entity
		}
		avg := c.cards.Avg(owner, child)
		breakdown.ArrayLengths[name] = avg
		breakdown.Inside += bucket.Counts.Bytes() * avg
		keyedFields += float64(bucket.Counts.Total()) * avg
	}

	breakdown.Keys = (keyedFields + float64(merges)) * SizeKeyValue
	breakdown.Document = breakdown.Outside + breakdown.Inside + breakdown.Keys

	if docCount <= 0 {
		docCount = c.stats.Population(entity)
	}
	breakdown.DocCount = docCount
	breakdown.Collection = breakdown.Document * float64(docCount)
	return breakdown
}
