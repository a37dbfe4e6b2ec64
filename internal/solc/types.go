// Package solc is the client for the external Solidity compiler service. The
// service speaks the compiler's standard JSON interface; this package only
// models the request/response shapes and moves bytes, it has no opinion on
// the source being compiled.
package solc

import "encoding/json"

// Input is the standard-JSON compile request.
type Input struct {
	Language string            `json:"language"`
	Sources  map[string]Source `json:"sources"`
	Settings Settings          `json:"settings"`
}

// Source is one source file in the request.
type Source struct {
	Content string `json:"content"`
}

// Settings carries optimizer configuration and artifact selection.
type Settings struct {
	Optimizer       Optimizer                      `json:"optimizer"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

// Optimizer mirrors the compiler's optimizer block.
type Optimizer struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

// DefaultInput builds a compile request for a single in-memory source file,
// selecting the artifact set the builder needs: ABI, bytecode, deployed
// bytecode, gas estimates and metadata.
func DefaultInput(filename, source string, optimize bool, runs int) Input {
	return Input{
		Language: "Solidity",
		Sources: map[string]Source{
			filename: {Content: source},
		},
		Settings: Settings{
			Optimizer: Optimizer{Enabled: optimize, Runs: runs},
			OutputSelection: map[string]map[string][]string{
				"*": {
					"*": {
						"abi",
						"evm.bytecode.object",
						"evm.deployedBytecode.object",
						"evm.gasEstimates",
						"metadata",
					},
				},
			},
		},
	}
}

// Output is the standard-JSON compile response.
type Output struct {
	Contracts map[string]map[string]Contract `json:"contracts"`
	Errors    []Diagnostic                   `json:"errors"`
}

// Contract is one compiled contract's artifact set.
type Contract struct {
	ABI      []ABIEntry `json:"abi"`
	Metadata string     `json:"metadata"`
	EVM      EVM        `json:"evm"`
}

// EVM groups the EVM-level artifacts.
type EVM struct {
	Bytecode         Bytecode        `json:"bytecode"`
	DeployedBytecode Bytecode        `json:"deployedBytecode"`
	GasEstimates     json.RawMessage `json:"gasEstimates"`
}

// Bytecode holds a hex-encoded code object.
type Bytecode struct {
	Object string `json:"object"`
}

// ABIEntry is one entry of a contract's ABI.
type ABIEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          []ABIParam `json:"inputs,omitempty"`
	Outputs         []ABIParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Anonymous       bool       `json:"anonymous,omitempty"`
}

// ABIParam is a parameter within an ABI entry.
type ABIParam struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// Diagnostic is one compiler message.
type Diagnostic struct {
	Severity         string `json:"severity"` // "error" or "warning"
	Type             string `json:"type,omitempty"`
	Message          string `json:"message"`
	FormattedMessage string `json:"formattedMessage,omitempty"`
}
