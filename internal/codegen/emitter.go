package codegen

import (
	"fmt"
	"strings"

	"solgraph/internal/graph"
	"solgraph/internal/soltype"
)

// Options configure one emission run.
type Options struct {
	ContractName    string `json:"contract_name"`
	SolidityVersion string `json:"solidity_version"`
	License         string `json:"license"`
	IncludeComments bool   `json:"include_comments"`
}

// Emitter produces a single Solidity source file from a graph snapshot. The
// output is always a syntactically balanced skeleton: nodes with missing
// names are skipped rather than emitted as fragments. Whether the result
// type-checks is the compiler service's verdict, not the emitter's.
type Emitter struct {
	g        *graph.Graph
	opts     Options
	resolver *Resolver
	b        strings.Builder
}

// NewEmitter creates an emitter for a graph snapshot.
func NewEmitter(g *graph.Graph, opts Options) *Emitter {
	return &Emitter{g: g, opts: opts, resolver: NewResolver(g)}
}

// Emit renders the complete source file. Calling it twice on an unchanged
// graph produces byte-identical output.
func (e *Emitter) Emit() string {
	e.b.Reset()

	e.line("// SPDX-License-Identifier: " + e.opts.License)
	e.line("pragma solidity ^" + e.opts.SolidityVersion + ";")
	e.line("")
	if e.opts.IncludeComments {
		e.line("// Generated by solgraph from a visual contract graph.")
		e.line("")
	}

	e.emitImports()
	e.emitContractOpen()
	e.emitStateVariables()
	e.emitEvents()
	e.emitConstructor()
	e.emitFunctions()
	e.emitTemplateTail()
	e.line("}")

	return e.b.String()
}

func (e *Emitter) line(s string) {
	e.b.WriteString(s)
	e.b.WriteByte('\n')
}

func (e *Emitter) firstOfKind(kind graph.NodeKind) *graph.Node {
	for _, n := range e.g.Nodes() {
		if n.Kind == kind {
			return n
		}
	}
	return nil
}

// Imports and inheritance share one ordering rule: the fungible-token
// template always precedes the non-fungible one, so output stays stable no
// matter the node insertion order.
func (e *Emitter) templateBases() []string {
	var bases []string
	if e.firstOfKind(graph.KindERC20) != nil {
		bases = append(bases, "ERC20")
	}
	if e.firstOfKind(graph.KindERC721) != nil {
		bases = append(bases, "ERC721")
	}
	return bases
}

func (e *Emitter) emitImports() {
	bases := e.templateBases()
	if len(bases) == 0 {
		return
	}
	for _, base := range bases {
		e.line(fmt.Sprintf("import \"@openzeppelin/contracts/token/%s/%s.sol\";", base, base))
	}
	e.line("")
}

func (e *Emitter) emitContractOpen() {
	decl := "contract " + e.opts.ContractName
	if bases := e.templateBases(); len(bases) > 0 {
		decl += " is " + strings.Join(bases, ", ")
	}
	e.line(decl + " {")
}

// variableType maps a variable node to its Solidity type string.
func variableType(n *graph.Node) string {
	switch n.Kind {
	case graph.KindUintVar:
		return "uint256"
	case graph.KindAddressVar:
		return "address"
	case graph.KindBoolVar:
		return "bool"
	case graph.KindStringVar:
		return "string"
	case graph.KindMappingVar:
		key := n.Control("key_type")
		if key == "" {
			key = "address"
		}
		value := n.Control("value_type")
		if value == "" {
			value = "uint256"
		}
		return fmt.Sprintf("mapping(%s => %s)", key, value)
	default:
		return ""
	}
}

func (e *Emitter) emitStateVariables() {
	emitted := false
	for _, n := range e.g.Nodes() {
		if !n.Kind.IsVariable() {
			continue
		}
		name := n.Control("name")
		if name == "" {
			continue
		}

		parts := []string{variableType(n)}
		if vis := n.Control("visibility"); vis != "" {
			parts = append(parts, vis)
		}
		parts = append(parts, name)
		decl := strings.Join(parts, " ")

		// The zero value of the type is suppressed as an initializer;
		// mappings never take one.
		if n.Kind != graph.KindMappingVar {
			value := n.Control("value")
			if value != "" && value != soltype.Parse(variableType(n)).DefaultValue() {
				decl += " = " + value
			}
		}
		e.line(indentUnit + decl + ";")
		emitted = true
	}
	if emitted {
		e.line("")
	}
}

func (e *Emitter) emitEvents() {
	emitted := false
	for _, n := range e.g.Nodes() {
		if n.Kind != graph.KindEvent {
			continue
		}
		name := n.Control("name")
		if name == "" {
			continue
		}
		e.line(fmt.Sprintf("%sevent %s(%s);", indentUnit, name, n.Control("parameters")))
		emitted = true
	}
	if emitted {
		e.line("")
	}
}

// emitConstructor renders at most one constructor. A template node forces a
// constructor even without an authored constructor node, because the base
// contract call and initial mint have to live somewhere. Template wiring is
// name-based: the ERC20 init is emitted whenever the template node exists,
// whether or not the constructor references it.
func (e *Emitter) emitConstructor() {
	ctor := e.firstOfKind(graph.KindConstructor)
	erc20 := e.firstOfKind(graph.KindERC20)
	erc721 := e.firstOfKind(graph.KindERC721)
	if ctor == nil && erc20 == nil && erc721 == nil {
		return
	}

	params := ""
	if ctor != nil {
		params = ctor.Control("parameters")
	}

	sig := fmt.Sprintf("constructor(%s)", params)
	if erc20 != nil {
		sig += fmt.Sprintf(" ERC20(%q, %q)", erc20.Control("name"), erc20.Control("symbol"))
	}
	if erc721 != nil {
		sig += fmt.Sprintf(" ERC721(%q, %q)", erc721.Control("name"), erc721.Control("symbol"))
	}
	e.line(indentUnit + sig + " {")

	if erc20 != nil {
		supply := erc20.Control("total_supply")
		if supply == "" {
			supply = "0"
		}
		e.line(fmt.Sprintf("%s_mint(msg.sender, %s * 10**decimals());", indentUnit+indentUnit, supply))
	}
	if ctor != nil {
		body := e.resolver.Statements(ctor.ID, "execution", 2, map[string]bool{})
		for _, l := range body {
			e.line(l)
		}
	}
	e.line(indentUnit + "}")
	e.line("")
}

// functionHeader maps a function node kind to its visibility and state
// mutability keywords.
func functionHeader(kind graph.NodeKind) (visibility, mutability string) {
	switch kind {
	case graph.KindPublicFn:
		return "public", ""
	case graph.KindPrivateFn:
		return "private", ""
	case graph.KindViewFn:
		return "public", "view"
	case graph.KindPayableFn:
		return "public", "payable"
	default:
		return "", ""
	}
}

func (e *Emitter) emitFunctions() {
	for _, n := range e.g.Nodes() {
		if !n.Kind.IsFunction() || n.Kind == graph.KindConstructor {
			continue
		}
		name := n.Control("name")
		if name == "" {
			continue
		}

		visibility, mutability := functionHeader(n.Kind)
		parts := []string{fmt.Sprintf("function %s(%s)", name, n.Control("parameters")), visibility}
		if mutability != "" {
			parts = append(parts, mutability)
		}
		if mods := n.Control("modifiers"); mods != "" {
			parts = append(parts, mods)
		}
		if ret := n.Control("returns"); ret != "" {
			parts = append(parts, fmt.Sprintf("returns (%s)", ret))
		}
		e.line(indentUnit + strings.Join(parts, " ") + " {")

		body := e.resolver.Statements(n.ID, "execution", 2, map[string]bool{})
		if len(body) == 0 {
			e.line(indentUnit + indentUnit + "// TODO: connect execution nodes to build this body")
		}
		for _, l := range body {
			e.line(l)
		}
		e.line(indentUnit + "}")
		e.line("")
	}
}

// emitTemplateTail renders the ERC721 support functions: the _baseURI
// override when a base URI was authored, and a mint helper so freshly
// generated collections are usable without hand-written code.
func (e *Emitter) emitTemplateTail() {
	erc721 := e.firstOfKind(graph.KindERC721)
	if erc721 == nil {
		return
	}

	if uri := erc721.Control("base_uri"); uri != "" {
		e.line(indentUnit + "function _baseURI() internal view override returns (string memory) {")
		e.line(fmt.Sprintf("%sreturn %q;", indentUnit+indentUnit, uri))
		e.line(indentUnit + "}")
		e.line("")
	}

	e.line(indentUnit + "function mint(address to, uint256 tokenId) public {")
	e.line(indentUnit + indentUnit + "_safeMint(to, tokenId);")
	e.line(indentUnit + "}")
	e.line("")
}
