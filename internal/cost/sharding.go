package cost

import (
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
)

// Sharding assigns each entity's collection the single field it is
// partitioned by. It is external input, supplied per cost query and never
// owned by the model.
type Sharding map[schema.Entity]string

// Key returns the shard key chosen for an entity
func (s Sharding) Key(e schema.Entity) (string, bool) {
	key, ok := s[e]
	return key, ok && key != ""
}
