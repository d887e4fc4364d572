package schema

// Entity identifies which real-world collection type a schema (or part of a
// schema) represents. Entities are always derived from field names, never
// stored alongside the schema.
type Entity string

const (
	EntityClient    Entity = "Cl"
	EntityProduct   Entity = "Prod"
	EntityStock     Entity = "St"
	EntityWarehouse Entity = "Wa"
	EntityOrderLine Entity = "OL"
	EntityCategory  Entity = "Cat"
	EntitySupplier  Entity = "Supp"
	EntityUnknown   Entity = "Unknown"
)

// Known reports whether the entity carries cardinality/population data
func (e Entity) Known() bool {
	return e != EntityUnknown && e != ""
}

func (e Entity) String() string {
	return string(e)
}

// ArrayEntity maps the conventional array field names used in the course
// schemas to the entity their items represent. The map is fixed domain
// knowledge, not configuration.
var ArrayEntity = map[string]Entity{
	"categories": EntityCategory,
	"supplier":   EntitySupplier,
	"stock":      EntityStock,
	"orderline":  EntityOrderLine,
	"product":    EntityProduct,
	"client":     EntityClient,
	"warehouse":  EntityWarehouse,
}
