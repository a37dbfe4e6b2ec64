// Package builder is the façade the IDE surface talks to: it owns the
// working graph snapshot and generation options, and runs the
// emit-compile-attach cycle against the compiler service.
package builder

import (
	"context"
	"encoding/json"
	"fmt"

	"solgraph/internal/codegen"
	"solgraph/internal/graph"
	"solgraph/internal/solc"
	"solgraph/internal/telemetry"
)

// GeneratedContract is the artifact of one compile cycle. It is rebuilt from
// scratch on every generation request and never mutated in place. A nil ABI
// is the signal that compilation did not succeed; Errors says why.
type GeneratedContract struct {
	Name         string          `json:"name"`
	SourceCode   string          `json:"source_code"`
	ABI          []solc.ABIEntry `json:"abi,omitempty"`
	Bytecode     string          `json:"bytecode,omitempty"`
	GasEstimates json.RawMessage `json:"gas_estimates,omitempty"`
	Metadata     string          `json:"metadata,omitempty"`
	Errors       []string        `json:"errors"`
	Warnings     []string        `json:"warnings"`
}

// Session holds one in-memory editing session. It is not safe for concurrent
// mutation; the embedding application must hand GenerateContract a stable
// snapshot, e.g. by not editing the graph while a generation is in flight.
type Session struct {
	graph    *graph.Graph
	opts     codegen.Options
	compiler *solc.Client

	Optimize      bool
	OptimizerRuns int
}

// NewSession creates a session with an empty graph and sensible defaults.
func NewSession(compiler *solc.Client) *Session {
	return &Session{
		graph:    graph.New(),
		compiler: compiler,
		opts: codegen.Options{
			ContractName:    "MyContract",
			SolidityVersion: "0.8.19",
			License:         "MIT",
		},
		OptimizerRuns: 200,
	}
}

// UpdateGraph replaces the working graph snapshot.
func (s *Session) UpdateGraph(g *graph.Graph) {
	if g == nil {
		g = graph.New()
	}
	s.graph = g
}

// Graph returns the current working graph.
func (s *Session) Graph() *graph.Graph {
	return s.graph
}

// Options returns the current generation options.
func (s *Session) Options() codegen.Options {
	return s.opts
}

// SetOptions replaces the generation options. Empty name, version and license
// keep their previous values so a partial update cannot blank the pragma.
func (s *Session) SetOptions(opts codegen.Options) {
	if opts.ContractName == "" {
		opts.ContractName = s.opts.ContractName
	}
	if opts.SolidityVersion == "" {
		opts.SolidityVersion = s.opts.SolidityVersion
	}
	if opts.License == "" {
		opts.License = s.opts.License
	}
	s.opts = opts
}

// ValidateGraph runs structural validation over the working graph.
func (s *Session) ValidateGraph() graph.Report {
	return graph.Validate(s.graph)
}

// GenerateContract emits source for the working graph, submits it to the
// compiler service and attaches the results. It never returns an error and
// never panics across this boundary: any failure is folded into the result's
// Errors list alongside the best-effort source text.
func (s *Session) GenerateContract(ctx context.Context) (result *GeneratedContract) {
	result = &GeneratedContract{Name: s.opts.ContractName}

	defer func() {
		if r := recover(); r != nil {
			telemetry.LogError("contract generation panicked", fmt.Errorf("%v", r), "contract", s.opts.ContractName)
			result.Errors = append(result.Errors, fmt.Sprintf("contract generation failed: %v", r))
		}
	}()

	result.SourceCode = codegen.NewEmitter(s.graph, s.opts).Emit()

	filename := s.opts.ContractName + ".sol"
	input := solc.DefaultInput(filename, result.SourceCode, s.Optimize, s.OptimizerRuns)

	output, err := s.compiler.Compile(ctx, input)
	if err != nil {
		telemetry.LogError("compiler service call failed", err, "contract", s.opts.ContractName)
		result.Errors = append(result.Errors, fmt.Sprintf("compilation failed: %v", err))
		return result
	}

	for _, diag := range output.Errors {
		msg := diag.FormattedMessage
		if msg == "" {
			msg = diag.Message
		}
		if diag.Severity == "error" {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Warnings = append(result.Warnings, msg)
		}
	}

	// Success is signalled by artifacts, not by an empty error list; a
	// response that omits our contract leaves ABI nil without adding an
	// error of its own.
	if len(result.Errors) == 0 {
		if contract, ok := findContract(output, s.opts.ContractName); ok {
			result.ABI = contract.ABI
			result.Bytecode = contract.EVM.Bytecode.Object
			result.GasEstimates = contract.EVM.GasEstimates
			result.Metadata = contract.Metadata
		}
	}

	return result
}

func findContract(output *solc.Output, name string) (solc.Contract, bool) {
	for _, file := range output.Contracts {
		if contract, ok := file[name]; ok {
			return contract, true
		}
	}
	return solc.Contract{}, false
}
