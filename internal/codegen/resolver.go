// Package codegen turns a builder graph into Solidity source text. The
// Resolver flattens the value-socket graph into nested expressions and
// linearizes the execution-socket graph into statement sequences; the Emitter
// assembles those into a complete source file.
package codegen

import (
	"fmt"
	"strings"

	"solgraph/internal/graph"
)

const indentUnit = "    "

// Resolver walks a graph snapshot. It holds no state of its own; visited sets
// travel as explicit parameters so one Resolver is safe to reuse across
// functions.
type Resolver struct {
	g *graph.Graph
}

// NewResolver creates a resolver over a graph snapshot. The snapshot must not
// be mutated while the resolver is in use.
func NewResolver(g *graph.Graph) *Resolver {
	return &Resolver{g: g}
}

// Expression resolves the expression feeding the named input port of node.
// When nothing is connected, or the producing node is unrecognized, or a
// cycle is hit, the given fallback literal is returned instead; expression
// resolution never fails.
func (r *Resolver) Expression(node *graph.Node, input, fallback string, visited map[string]bool) string {
	conn, ok := r.g.ConnectionInto(node.ID, input)
	if !ok {
		return fallback
	}
	src, ok := r.g.NodeByID(conn.Source)
	if !ok {
		return fallback
	}
	if visited[src.ID] {
		// Value cycle; substitute the fallback rather than recursing forever.
		return fallback
	}
	visited[src.ID] = true
	defer delete(visited, src.ID)

	switch src.Kind {
	case graph.KindComparison, graph.KindMathOp:
		// Operands are value context regardless of what the outer port
		// wanted, so an unconnected operand reads "0", never "true".
		left := r.Expression(src, "left", "0", visited)
		right := r.Expression(src, "right", "0", visited)
		return fmt.Sprintf("%s %s %s", left, src.Control("operator"), right)
	case graph.KindLogicalOp:
		left := r.Expression(src, "left", "true", visited)
		right := r.Expression(src, "right", "true", visited)
		return fmt.Sprintf("%s %s %s", left, src.Control("operator"), right)
	case graph.KindVariableRef:
		return src.Control("variable")
	case graph.KindLiteral:
		value := src.Control("value")
		if src.Control("type") == "string" {
			return `"` + value + `"`
		}
		return value
	default:
		return fallback
	}
}

// Statements linearizes the execution flow reachable from the named output
// port of the node with ID entryID, at the given indent level. The visited
// set makes traversal idempotent: a node reachable through both branches of
// an if is emitted once, at its first visit, and guards against execution
// cycles.
func (r *Resolver) Statements(entryID, entryPort string, indent int, visited map[string]bool) []string {
	conns := r.g.ConnectionsOutOf(entryID, entryPort)
	if len(conns) == 0 {
		return nil
	}
	node, ok := r.g.NodeByID(conns[0].Target)
	if !ok {
		return nil
	}
	if visited[node.ID] {
		return nil
	}
	visited[node.ID] = true

	pad := strings.Repeat(indentUnit, indent)

	switch node.Kind {
	case graph.KindIfStatement:
		cond := r.Expression(node, "condition", "true", map[string]bool{})
		lines := []string{pad + "if (" + cond + ") {"}
		lines = append(lines, r.Statements(node.ID, "exec_true", indent+1, visited)...)
		if _, hasElse := firstTarget(r.g, node.ID, "exec_false"); hasElse {
			lines = append(lines, pad+"} else {")
			lines = append(lines, r.Statements(node.ID, "exec_false", indent+1, visited)...)
		}
		lines = append(lines, pad+"}")
		// The statement after the if/else continues from the node's own
		// exec_out, not from inside the branches, and at the outer indent.
		lines = append(lines, r.Statements(node.ID, "exec_out", indent, visited)...)
		return lines

	case graph.KindAssignment:
		value := r.Expression(node, "value", "0", map[string]bool{})
		lines := []string{fmt.Sprintf("%s%s = %s;", pad, node.Control("variable"), value)}
		lines = append(lines, r.Statements(node.ID, "exec_out", indent, visited)...)
		return lines

	default:
		// A non-statement node in the execution chain ends this path. The
		// graph editor should not produce this, so it is tolerated silently.
		return nil
	}
}

func firstTarget(g *graph.Graph, nodeID, port string) (string, bool) {
	conns := g.ConnectionsOutOf(nodeID, port)
	if len(conns) == 0 {
		return "", false
	}
	return conns[0].Target, true
}
