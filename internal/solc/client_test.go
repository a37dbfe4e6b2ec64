package solc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInput(t *testing.T) {
	in := DefaultInput("Demo.sol", "contract Demo {}", true, 200)
	assert.Equal(t, "Solidity", in.Language)
	require.Contains(t, in.Sources, "Demo.sol")
	assert.Equal(t, "contract Demo {}", in.Sources["Demo.sol"].Content)
	assert.True(t, in.Settings.Optimizer.Enabled)
	assert.Equal(t, 200, in.Settings.Optimizer.Runs)
	assert.Contains(t, in.Settings.OutputSelection["*"]["*"], "abi")
	assert.Contains(t, in.Settings.OutputSelection["*"]["*"], "evm.bytecode.object")
}

func TestCompile_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in Input
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Solidity", in.Language)

		resp := Output{
			Contracts: map[string]map[string]Contract{
				"Demo.sol": {
					"Demo": {
						ABI: []ABIEntry{{Type: "function", Name: "total", StateMutability: "view"}},
						EVM: EVM{Bytecode: Bytecode{Object: "6080"}},
					},
				},
			},
			Errors: []Diagnostic{
				{Severity: "warning", Message: "unused variable"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	out, err := c.Compile(context.Background(), DefaultInput("Demo.sol", "contract Demo {}", false, 0))
	require.NoError(t, err)
	require.Contains(t, out.Contracts, "Demo.sol")
	assert.Equal(t, "6080", out.Contracts["Demo.sol"]["Demo"].EVM.Bytecode.Object)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "warning", out.Errors[0].Severity)
}

func TestCompile_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	_, err := c.Compile(context.Background(), DefaultInput("Demo.sol", "x", false, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCompile_NoURL(t *testing.T) {
	c := &Client{}
	_, err := c.Compile(context.Background(), Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestCompile_MockResponder(t *testing.T) {
	c := &Client{
		MockResponder: func(in Input) (*Output, error) {
			return &Output{}, nil
		},
	}
	out, err := c.Compile(context.Background(), Input{})
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestCompile_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(server.URL, 5*time.Second)
	_, err := c.Compile(ctx, Input{})
	assert.Error(t, err)
}
