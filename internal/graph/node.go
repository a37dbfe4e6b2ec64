// Package graph holds the node-graph data model behind the visual contract
// builder: typed nodes with input/output sockets, connections between them,
// and structural validation.
package graph

import "github.com/google/uuid"

// NodeKind identifies the behavior of a node. Dispatch is always on this tag,
// never on a display label.
type NodeKind string

const (
	// State variables
	KindUintVar    NodeKind = "uint_variable"
	KindAddressVar NodeKind = "address_variable"
	KindBoolVar    NodeKind = "bool_variable"
	KindStringVar  NodeKind = "string_variable"
	KindMappingVar NodeKind = "mapping_variable"

	// Functions
	KindConstructor NodeKind = "constructor"
	KindPublicFn    NodeKind = "public_function"
	KindPrivateFn   NodeKind = "private_function"
	KindViewFn      NodeKind = "view_function"
	KindPayableFn   NodeKind = "payable_function"

	KindEvent NodeKind = "event"

	// Templates
	KindERC20  NodeKind = "erc20_template"
	KindERC721 NodeKind = "erc721_template"

	// Logic
	KindIfStatement NodeKind = "if_statement"
	KindComparison  NodeKind = "comparison"
	KindAssignment  NodeKind = "assignment"
	KindVariableRef NodeKind = "variable_ref"
	KindMathOp      NodeKind = "math_operation"
	KindLiteral     NodeKind = "literal_value"
	KindLogicalOp   NodeKind = "logical_operation"
)

// IsVariable reports whether the kind declares a state variable.
func (k NodeKind) IsVariable() bool {
	switch k {
	case KindUintVar, KindAddressVar, KindBoolVar, KindStringVar, KindMappingVar:
		return true
	}
	return false
}

// IsFunction reports whether the kind declares a function (constructor included).
func (k NodeKind) IsFunction() bool {
	switch k {
	case KindConstructor, KindPublicFn, KindPrivateFn, KindViewFn, KindPayableFn:
		return true
	}
	return false
}

// IsTemplate reports whether the kind is a whole-contract template.
func (k NodeKind) IsTemplate() bool {
	return k == KindERC20 || k == KindERC721
}

// Socket is the flavor of a port; it decides which connections are legal.
type Socket string

const (
	SocketExecution Socket = "execution"
	SocketBoolean   Socket = "boolean"
	SocketValue     Socket = "value"
	SocketUniversal Socket = "universal"
)

// Accepts reports whether a connection from an output of flavor s may attach
// to an input of flavor other. Universal matches anything; Execution only
// matches Execution; Value and Boolean match their own flavor.
func (s Socket) Accepts(other Socket) bool {
	if s == SocketUniversal || other == SocketUniversal {
		return true
	}
	return s == other
}

// Port is a named, flavored connection point on a node.
type Port struct {
	Name   string `json:"name"`
	Flavor Socket `json:"flavor"`
}

// Node is one element on the builder canvas. Controls are the user-editable
// text fields (name, value, operator, ...). Port order is fixed by the
// factory and preserved through serialization.
type Node struct {
	ID       string            `json:"id"`
	Kind     NodeKind          `json:"kind"`
	Controls map[string]string `json:"controls"`
	Inputs   []Port            `json:"inputs"`
	Outputs  []Port            `json:"outputs"`
}

// Control returns the value of a named control, or "" when unset.
func (n *Node) Control(name string) string {
	if n == nil || n.Controls == nil {
		return ""
	}
	return n.Controls[name]
}

// SetControl sets a named control value.
func (n *Node) SetControl(name, value string) {
	if n.Controls == nil {
		n.Controls = make(map[string]string)
	}
	n.Controls[name] = value
}

// InputPort looks up an input port by name.
func (n *Node) InputPort(name string) (Port, bool) {
	for _, p := range n.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// OutputPort looks up an output port by name.
func (n *Node) OutputPort(name string) (Port, bool) {
	for _, p := range n.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// kindLayouts is the closed table mapping each node kind to the controls and
// ports it is created with. Adding a kind means adding a row here.
var kindLayouts = map[NodeKind]struct {
	controls []string
	inputs   []Port
	outputs  []Port
}{
	KindUintVar: {
		controls: []string{"name", "value", "visibility"},
		outputs:  []Port{{Name: "value", Flavor: SocketValue}},
	},
	KindAddressVar: {
		controls: []string{"name", "value", "visibility"},
		outputs:  []Port{{Name: "value", Flavor: SocketValue}},
	},
	KindBoolVar: {
		controls: []string{"name", "value", "visibility"},
		outputs:  []Port{{Name: "value", Flavor: SocketBoolean}},
	},
	KindStringVar: {
		controls: []string{"name", "value", "visibility"},
		outputs:  []Port{{Name: "value", Flavor: SocketValue}},
	},
	KindMappingVar: {
		controls: []string{"name", "key_type", "value_type", "visibility"},
		outputs:  []Port{{Name: "value", Flavor: SocketValue}},
	},
	KindConstructor: {
		controls: []string{"parameters"},
		outputs:  []Port{{Name: "execution", Flavor: SocketExecution}},
	},
	KindPublicFn: {
		controls: []string{"name", "parameters", "returns", "modifiers"},
		outputs:  []Port{{Name: "execution", Flavor: SocketExecution}},
	},
	KindPrivateFn: {
		controls: []string{"name", "parameters", "returns", "modifiers"},
		outputs:  []Port{{Name: "execution", Flavor: SocketExecution}},
	},
	KindViewFn: {
		controls: []string{"name", "parameters", "returns", "modifiers"},
		outputs:  []Port{{Name: "execution", Flavor: SocketExecution}},
	},
	KindPayableFn: {
		controls: []string{"name", "parameters", "returns", "modifiers"},
		outputs:  []Port{{Name: "execution", Flavor: SocketExecution}},
	},
	KindEvent: {
		controls: []string{"name", "parameters"},
	},
	KindERC20: {
		controls: []string{"name", "symbol", "total_supply"},
	},
	KindERC721: {
		controls: []string{"name", "symbol", "base_uri"},
	},
	KindIfStatement: {
		inputs: []Port{
			{Name: "exec_in", Flavor: SocketExecution},
			{Name: "condition", Flavor: SocketBoolean},
		},
		outputs: []Port{
			{Name: "exec_true", Flavor: SocketExecution},
			{Name: "exec_false", Flavor: SocketExecution},
			{Name: "exec_out", Flavor: SocketExecution},
		},
	},
	KindComparison: {
		controls: []string{"operator"},
		inputs: []Port{
			{Name: "left", Flavor: SocketUniversal},
			{Name: "right", Flavor: SocketUniversal},
		},
		outputs: []Port{{Name: "result", Flavor: SocketBoolean}},
	},
	KindAssignment: {
		controls: []string{"variable"},
		inputs: []Port{
			{Name: "exec_in", Flavor: SocketExecution},
			{Name: "value", Flavor: SocketUniversal},
		},
		outputs: []Port{{Name: "exec_out", Flavor: SocketExecution}},
	},
	KindVariableRef: {
		controls: []string{"variable"},
		outputs:  []Port{{Name: "value", Flavor: SocketUniversal}},
	},
	KindMathOp: {
		controls: []string{"operator"},
		inputs: []Port{
			{Name: "left", Flavor: SocketValue},
			{Name: "right", Flavor: SocketValue},
		},
		outputs: []Port{{Name: "result", Flavor: SocketValue}},
	},
	KindLiteral: {
		controls: []string{"value", "type"},
		outputs:  []Port{{Name: "value", Flavor: SocketUniversal}},
	},
	KindLogicalOp: {
		controls: []string{"operator"},
		inputs: []Port{
			{Name: "left", Flavor: SocketBoolean},
			{Name: "right", Flavor: SocketBoolean},
		},
		outputs: []Port{{Name: "result", Flavor: SocketBoolean}},
	},
}

// KnownKinds returns every node kind the factory can build.
func KnownKinds() []NodeKind {
	kinds := make([]NodeKind, 0, len(kindLayouts))
	for k := range kindLayouts {
		kinds = append(kinds, k)
	}
	return kinds
}

// NewNode builds a node of the given kind with a fresh ID and the kind's fixed
// control/port layout. Unknown kinds return nil.
func NewNode(kind NodeKind) *Node {
	layout, ok := kindLayouts[kind]
	if !ok {
		return nil
	}

	n := &Node{
		ID:       uuid.NewString(),
		Kind:     kind,
		Controls: make(map[string]string),
	}
	for _, c := range layout.controls {
		n.Controls[c] = ""
	}
	n.Inputs = append(n.Inputs, layout.inputs...)
	n.Outputs = append(n.Outputs, layout.outputs...)
	return n
}
