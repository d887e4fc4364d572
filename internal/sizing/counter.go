package sizing

import (
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
)

// TypeCounts buckets scalar fields by their storage type
type TypeCounts struct {
	Int    int
	String int
	Date   int
	Long   int
}

// Total returns the number of scalar fields in the bucket
func (c TypeCounts) Total() int {
	return c.Int + c.String + c.Date + c.Long
}

func (c *TypeCounts) add(t schema.NodeType, fieldName string) {
	switch t {
	case schema.TypeInteger, schema.TypeNumber:
		c.Int++
	case schema.TypeString:
		// description/comment fields hold free text and are priced as
		// long strings regardless of their declared type
		if fieldName == "description" || fieldName == "comment" {
			c.Long++
		} else {
			c.String++
		}
	case schema.TypeLongString:
		c.Long++
	case schema.TypeDate:
		c.Date++
	}
}

// ArrayBucket collects the scalar counts of one array's item schema together
// with the entity that owned the traversal when the array was entered. The
// owner picks the cardinality row used to scale the array later on.
type ArrayBucket struct {
	Counts TypeCounts
	Owner  schema.Entity
}

// CountScalars walks a schema once and splits its scalar fields into those
// outside any array and those inside each named array. The walk carries two
// pieces of context: the current owning entity (reassigned downward whenever
// a nested object classifies to a different entity) and the enclosing array
// name, if any. A field reachable through several paths is counted once per
// occurrence: the model counts physical fields, not logical properties.
func CountScalars(root *schema.Node) (TypeCounts, map[string]*ArrayBucket) {
	var outside TypeCounts
	inside := make(map[string]*ArrayBucket)

	var walk func(n *schema.Node, owner schema.Entity, fieldName, arrayName string)
	walk = func(n *schema.Node, owner schema.Entity, fieldName, arrayName string) {
		if n == nil {
			return
		}

		switch n.Type {
		case schema.TypeArray:
			if _, ok := inside[fieldName]; !ok {
				inside[fieldName] = &ArrayBucket{Owner: owner}
			}
			walk(n.Items, owner, "", fieldName)

		case schema.TypeObject:
			if detected := schema.Classify(n); detected.Known() {
				owner = detected
			}
			for _, f := range n.Fields {
				walk(f.Node, owner, f.Name, arrayName)
			}

		default:
			if arrayName != "" {
				inside[arrayName].Counts.add(n.Type, fieldName)
			} else {
				outside.add(n.Type, fieldName)
			}
		}
	}

	walk(root, schema.Classify(root), "", "")
	return outside, inside
}

// CountMerges counts the entity-boundary crossings in a schema: every object
// (or array of objects) below the root whose classified entity differs from
// its parent's carried entity is one merge. The root itself is never a merge.
func CountMerges(root *schema.Node) int {
	return countMerges(root, schema.EntityUnknown, true)
}

func countMerges(n *schema.Node, parent schema.Entity, isRoot bool) int {
	if n == nil {
		return 0
	}

	var here schema.Entity
	switch n.Type {
	case schema.TypeObject:
		here = schema.Classify(n)
	case schema.TypeArray:
		here = schema.Classify(n.Items)
	default:
		return 0
	}

	merges := 0
	next := parent
	if !isRoot && here.Known() && here != parent {
		merges++
		next = here
	} else if !next.Known() {
		next = here
	}

	switch n.Type {
	case schema.TypeObject:
		for _, f := range n.Fields {
			merges += countMerges(f.Node, next, false)
		}
	case schema.TypeArray:
		merges += countMerges(n.Items, next, false)
	}
	return merges
}
