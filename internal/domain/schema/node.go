package schema

// NodeType identifies what a schema node describes
type NodeType string

const (
	TypeInteger    NodeType = "integer"
	TypeNumber     NodeType = "number"
	TypeString     NodeType = "string"
	TypeLongString NodeType = "long_string"
	TypeDate       NodeType = "date"
	TypeObject     NodeType = "object"
	TypeArray      NodeType = "array"
)

// Field is one named entry of an object node. Order matters: schemas are
// declared field by field and traversals must visit them in declaration order.
type Field struct {
	Name string
	Node *Node
}

// Node is a structural description of a document type. A node is either a
// scalar (integer/number, string, long_string, date), an object with ordered
// fields, or an array of one item schema. Nodes are immutable once built and
// owned by the collection that declares them.
type Node struct {
	Type   NodeType
	Fields []Field // object only
	Items  *Node   // array only
}

// IsScalar reports whether the node is a leaf value
func (n *Node) IsScalar() bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case TypeInteger, TypeNumber, TypeString, TypeLongString, TypeDate:
		return true
	}
	return false
}

// FieldNames returns the top-level field names of an object node.
// Non-object nodes have none.
func (n *Node) FieldNames() []string {
	if n == nil || n.Type != TypeObject {
		return nil
	}
	names := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Field returns the node declared under the given name, or nil
func (n *Node) Field(name string) *Node {
	if n == nil || n.Type != TypeObject {
		return nil
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Node
		}
	}
	return nil
}

// Constructor helpers. Schemas read best when they are declared as literals,
// e.g. schema.Object(schema.F("IDP", schema.Integer()), ...).

func Integer() *Node    { return &Node{Type: TypeInteger} }
func Number() *Node     { return &Node{Type: TypeNumber} }
func String() *Node     { return &Node{Type: TypeString} }
func LongString() *Node { return &Node{Type: TypeLongString} }
func Date() *Node       { return &Node{Type: TypeDate} }

func Object(fields ...Field) *Node {
	return &Node{Type: TypeObject, Fields: fields}
}

func Array(item *Node) *Node {
	return &Node{Type: TypeArray, Items: item}
}

func F(name string, node *Node) Field {
	return Field{Name: name, Node: node}
}
