package soltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Elementary(t *testing.T) {
	tests := []struct {
		in     string
		kind   Kind
		bits   int
		signed bool
	}{
		{"uint256", KindInteger, 256, false},
		{"uint8", KindInteger, 8, false},
		{"uint", KindInteger, 256, false},
		{"int128", KindInteger, 128, true},
		{"int", KindInteger, 256, true},
	}
	for _, tt := range tests {
		got := Parse(tt.in)
		assert.Equal(t, tt.kind, got.Kind, tt.in)
		assert.Equal(t, tt.bits, got.Bits, tt.in)
		assert.Equal(t, tt.signed, got.Signed, tt.in)
	}

	assert.Equal(t, KindAddress, Parse("address").Kind)
	assert.Equal(t, KindBool, Parse("bool").Kind)
	assert.Equal(t, KindString, Parse("string").Kind)
}

func TestParse_Bytes(t *testing.T) {
	dynamic := Parse("bytes")
	assert.Equal(t, KindBytes, dynamic.Kind)
	assert.Equal(t, 0, dynamic.Size)

	fixed := Parse("bytes32")
	assert.Equal(t, KindBytes, fixed.Kind)
	assert.Equal(t, 32, fixed.Size)
}

func TestParse_Array(t *testing.T) {
	dyn := Parse("uint256[]")
	require.Equal(t, KindArray, dyn.Kind)
	assert.Equal(t, KindInteger, dyn.Elem.Kind)
	assert.False(t, dyn.HasLen)

	fixed := Parse("address[5]")
	require.Equal(t, KindArray, fixed.Kind)
	assert.Equal(t, KindAddress, fixed.Elem.Kind)
	assert.True(t, fixed.HasLen)
	assert.Equal(t, 5, fixed.ArrayLen)
}

func TestParse_Mapping(t *testing.T) {
	m := Parse("mapping(address => uint256)")
	require.Equal(t, KindMapping, m.Kind)
	assert.Equal(t, KindAddress, m.Key.Kind)
	assert.Equal(t, KindInteger, m.Value.Kind)

	nested := Parse("mapping(address => mapping(address => bool))")
	require.Equal(t, KindMapping, nested.Kind)
	require.Equal(t, KindMapping, nested.Value.Kind)
	assert.Equal(t, KindBool, nested.Value.Value.Kind)
}

func TestParse_UnknownFallsBackToContract(t *testing.T) {
	got := Parse("MyToken")
	assert.Equal(t, KindContract, got.Kind)
	assert.Equal(t, "MyToken", got.Name)
}

func TestString_RoundTrip(t *testing.T) {
	canonical := []string{
		"uint256",
		"uint8",
		"int64",
		"address",
		"bool",
		"string",
		"bytes",
		"bytes32",
		"uint256[]",
		"uint256[4]",
		"mapping(address => uint256)",
		"mapping(address => mapping(address => bool))",
		"MyToken",
	}
	for _, s := range canonical {
		assert.Equal(t, s, Parse(s).String())
	}
}

func TestCompatible_Widening(t *testing.T) {
	assert.True(t, Compatible(Parse("uint8"), Parse("uint256")))
	assert.False(t, Compatible(Parse("uint256"), Parse("uint8")))
	assert.True(t, Compatible(Parse("uint256"), Parse("uint256")))
	assert.True(t, Compatible(Parse("address"), Parse("address")))
	assert.False(t, Compatible(Parse("address"), Parse("uint256")))
	assert.False(t, Compatible(Parse("int8"), Parse("uint256"))) // sign change needs a cast
	assert.False(t, Compatible(Parse("bool"), Parse("string")))
}

func TestDefaultValue(t *testing.T) {
	assert.Equal(t, "0", Parse("uint256").DefaultValue())
	assert.Equal(t, "false", Parse("bool").DefaultValue())
	assert.Equal(t, `""`, Parse("string").DefaultValue())
	assert.Equal(t, "address(0)", Parse("address").DefaultValue())
	assert.Equal(t, `""`, Parse("bytes").DefaultValue())
	assert.Equal(t, "bytes32(0)", Parse("bytes32").DefaultValue())
}
