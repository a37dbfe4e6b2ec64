package graph

import "fmt"

// Operator is the closed set of operator spellings a logic node may carry.
// Operator controls are free text in the UI; validation parses them into this
// set so arbitrary strings never reach emitted source unchecked.
type Operator string

var comparisonOps = map[Operator]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

var mathOps = map[Operator]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
}

var logicalOps = map[Operator]bool{
	"&&": true, "||": true,
}

// ValidOperator reports whether raw is a legal operator for the given node
// kind.
func ValidOperator(kind NodeKind, raw string) bool {
	op := Operator(raw)
	switch kind {
	case KindComparison:
		return comparisonOps[op]
	case KindMathOp:
		return mathOps[op]
	case KindLogicalOp:
		return logicalOps[op]
	default:
		return false
	}
}

// Report is the outcome of structural validation. Validation is advisory:
// nothing stops a caller from emitting source for an invalid graph, the
// report exists for editor feedback.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate runs every structural check over the graph and collects all
// findings; it never stops at the first error.
func Validate(g *Graph) Report {
	var errs []string

	// Duplicate names: first occurrence wins, every later node carrying the
	// same name is reported.
	seen := make(map[string]bool)
	for _, n := range g.Nodes() {
		name := n.Control("name")
		if name == "" {
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Sprintf("duplicate name %q on %s node", name, n.Kind))
			continue
		}
		seen[name] = true
	}

	// Required fields: declarations without a name cannot be emitted.
	for _, n := range g.Nodes() {
		needsName := n.Kind.IsVariable() || n.Kind == KindEvent ||
			(n.Kind.IsFunction() && n.Kind != KindConstructor)
		if needsName && n.Control("name") == "" {
			errs = append(errs, fmt.Sprintf("%s node %s is missing a name", n.Kind, n.ID))
		}
	}

	// Operator controls must parse into the closed operator set.
	for _, n := range g.Nodes() {
		switch n.Kind {
		case KindComparison, KindMathOp, KindLogicalOp:
			if op := n.Control("operator"); !ValidOperator(n.Kind, op) {
				errs = append(errs, fmt.Sprintf("%s node %s has unrecognized operator %q", n.Kind, n.ID, op))
			}
		}
	}

	// At most one constructor. Emission would silently use the first, which
	// loses authored data, so surface it here instead.
	constructors := 0
	for _, n := range g.Nodes() {
		if n.Kind == KindConstructor {
			constructors++
		}
	}
	if constructors > 1 {
		errs = append(errs, fmt.Sprintf("graph has %d constructor nodes, expected at most one", constructors))
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}
