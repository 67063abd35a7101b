// Package op implements the operator-kernel machinery of the strand runtime:
// the kernel contract, the per-call execution context, and the registry that
// maps operator types to device-specific kernel builders.
package op

// Node describes one operator invocation: the op type, tensor names and the
// attributes fixed at graph-build time. It is the configuration record a
// kernel is constructed from.
type Node struct {
	Name       string      // Node name (optional)
	OpType     string      // Operation type (e.g. "ConcatTraining")
	Inputs     []string    // Input tensor names
	Outputs    []string    // Output tensor names
	Attributes []Attribute // Operation attributes
	Domain     string      // Custom domain (empty for default)
}

// Attribute is one named attribute of a node.
type Attribute struct {
	Name    string    // Attribute name
	F       float32   // FLOAT value
	I       int64     // INT value
	S       []byte    // STRING value
	Floats  []float32 // FLOATS array
	Ints    []int64   // INTS array
	Strings [][]byte  // STRINGS array
}

// GetAttrInt returns an integer attribute and whether it was present.
func GetAttrInt(node *Node, name string) (int64, bool) {
	for i := range node.Attributes {
		if node.Attributes[i].Name == name {
			return node.Attributes[i].I, true
		}
	}
	return 0, false
}

// GetAttrInts returns an integer array attribute, or nil when absent.
func GetAttrInts(node *Node, name string) []int64 {
	for i := range node.Attributes {
		if node.Attributes[i].Name == name {
			return node.Attributes[i].Ints
		}
	}
	return nil
}
