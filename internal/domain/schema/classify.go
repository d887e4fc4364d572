package schema

// classifyRule ties a required field-name set to the entity it identifies
type classifyRule struct {
	entity   Entity
	required []string
}

// classifyRules is evaluated top to bottom, first match wins. The order is
// significant: Product must be checked before Category because a product
// schema may also embed a title-bearing object.
var classifyRules = []classifyRule{
	{EntityProduct, []string{"IDP", "price"}},
	{EntityCategory, []string{"title"}},
	{EntitySupplier, []string{"IDS", "SIRET"}},
	{EntityStock, []string{"location", "quantity"}},
	{EntityClient, []string{"IDC", "email"}},
	{EntityOrderLine, []string{"date", "deliveryDate"}},
	{EntityWarehouse, []string{"IDW", "capacity"}},
}

// Classify detects the entity an object schema represents from its top-level
// field names. Non-object nodes and unmatched field sets yield EntityUnknown.
// Callers re-run Classify at every nesting level: a nested object may belong
// to a different entity than its host (denormalized embedding).
func Classify(n *Node) Entity {
	if n == nil || n.Type != TypeObject {
		return EntityUnknown
	}
	names := make(map[string]bool, len(n.Fields))
	for _, f := range n.Fields {
		names[f.Name] = true
	}
	return ClassifyFields(names)
}

// ClassifyFields applies the rule table to a top-level field-name set
func ClassifyFields(names map[string]bool) Entity {
	for _, rule := range classifyRules {
		matched := true
		for _, req := range rule.required {
			if !names[req] {
				matched = false
				break
			}
		}
		if matched {
			return rule.entity
		}
	}
	return EntityUnknown
}
