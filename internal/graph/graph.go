package graph

import (
	"encoding/json"
	"fmt"
)

// Connection is a directed edge from one node's output port to another
// node's input port.
type Connection struct {
	Source       string `json:"source"`
	SourceOutput string `json:"source_output"`
	Target       string `json:"target"`
	TargetInput  string `json:"target_input"`
}

// Graph is the full canvas state: nodes in insertion order plus the
// connections between their ports. It is a plain in-memory value; callers own
// snapshotting and persistence.
type Graph struct {
	nodes       []*Node
	byID        map[string]*Node
	connections []Connection
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{byID: make(map[string]*Node)}
}

// AddNode appends a node to the graph. A node with a duplicate ID replaces
// the original in the index but keeps the original's position in iteration
// order.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("cannot add nil node")
	}
	if n.ID == "" {
		return fmt.Errorf("node has no ID")
	}
	if _, exists := g.byID[n.ID]; !exists {
		g.nodes = append(g.nodes, n)
	} else {
		for i, existing := range g.nodes {
			if existing.ID == n.ID {
				g.nodes[i] = n
				break
			}
		}
	}
	g.byID[n.ID] = n
	return nil
}

// RemoveNode deletes a node and every connection touching it, so no
// connection can ever reference a missing node.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.byID[id]; !ok {
		return
	}
	delete(g.byID, id)
	for i, n := range g.nodes {
		if n.ID == id {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.Source != id && c.Target != id {
			kept = append(kept, c)
		}
	}
	g.connections = kept
}

// NodeByID returns the node with the given ID, if present.
func (g *Graph) NodeByID(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Nodes returns the nodes in insertion order. The slice must not be mutated.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Connections returns all connections. The slice must not be mutated.
func (g *Graph) Connections() []Connection {
	return g.connections
}

// Connect wires an output port to an input port. Both ports must exist and
// their socket flavors must be compatible. An input port holds at most one
// connection; wiring into an occupied input replaces the previous edge.
func (g *Graph) Connect(sourceID, sourceOutput, targetID, targetInput string) error {
	src, ok := g.byID[sourceID]
	if !ok {
		return fmt.Errorf("source node %s not found", sourceID)
	}
	tgt, ok := g.byID[targetID]
	if !ok {
		return fmt.Errorf("target node %s not found", targetID)
	}

	out, ok := src.OutputPort(sourceOutput)
	if !ok {
		return fmt.Errorf("node %s has no output port %q", sourceID, sourceOutput)
	}
	in, ok := tgt.InputPort(targetInput)
	if !ok {
		return fmt.Errorf("node %s has no input port %q", targetID, targetInput)
	}

	if !out.Flavor.Accepts(in.Flavor) {
		return fmt.Errorf("socket mismatch: %s output cannot feed %s input", out.Flavor, in.Flavor)
	}

	// Last-wins on the target input.
	kept := g.connections[:0]
	for _, c := range g.connections {
		if !(c.Target == targetID && c.TargetInput == targetInput) {
			kept = append(kept, c)
		}
	}
	g.connections = append(kept, Connection{
		Source:       sourceID,
		SourceOutput: sourceOutput,
		Target:       targetID,
		TargetInput:  targetInput,
	})
	return nil
}

// Disconnect removes the connection feeding the given input port, if any.
func (g *Graph) Disconnect(targetID, targetInput string) {
	kept := g.connections[:0]
	for _, c := range g.connections {
		if !(c.Target == targetID && c.TargetInput == targetInput) {
			kept = append(kept, c)
		}
	}
	g.connections = kept
}

// ConnectionInto returns the single connection feeding an input port.
func (g *Graph) ConnectionInto(nodeID, input string) (Connection, bool) {
	for _, c := range g.connections {
		if c.Target == nodeID && c.TargetInput == input {
			return c, true
		}
	}
	return Connection{}, false
}

// ConnectionsOutOf returns every connection leaving an output port.
func (g *Graph) ConnectionsOutOf(nodeID, output string) []Connection {
	var out []Connection
	for _, c := range g.connections {
		if c.Source == nodeID && c.SourceOutput == output {
			out = append(out, c)
		}
	}
	return out
}

// graphJSON is the serialized layout stored by the project store and shipped
// over the HTTP API.
type graphJSON struct {
	Nodes       []*Node      `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// MarshalJSON serializes the graph preserving node insertion order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphJSON{
		Nodes:       g.nodes,
		Connections: g.connections,
	})
}

// UnmarshalJSON rebuilds a graph from its serialized form. Connections that
// reference missing nodes or ports are dropped rather than resurrected, which
// keeps the no-dangling-connection invariant across deserialization.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var raw graphJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse graph: %w", err)
	}

	g.nodes = nil
	g.connections = nil
	g.byID = make(map[string]*Node)
	for _, n := range raw.Nodes {
		if n == nil || n.ID == "" {
			continue
		}
		if err := g.AddNode(n); err != nil {
			return err
		}
	}
	for _, c := range raw.Connections {
		src, ok := g.byID[c.Source]
		if !ok {
			continue
		}
		tgt, ok := g.byID[c.Target]
		if !ok {
			continue
		}
		if _, ok := src.OutputPort(c.SourceOutput); !ok {
			continue
		}
		if _, ok := tgt.InputPort(c.TargetInput); !ok {
			continue
		}
		g.connections = append(g.connections, c)
	}
	return nil
}
