package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode_Layouts(t *testing.T) {
	v := NewNode(KindUintVar)
	require.NotNil(t, v)
	assert.NotEmpty(t, v.ID)
	assert.Contains(t, v.Controls, "name")
	assert.Contains(t, v.Controls, "value")
	assert.Contains(t, v.Controls, "visibility")
	_, ok := v.OutputPort("value")
	assert.True(t, ok)

	ifNode := NewNode(KindIfStatement)
	require.NotNil(t, ifNode)
	cond, ok := ifNode.InputPort("condition")
	require.True(t, ok)
	assert.Equal(t, SocketBoolean, cond.Flavor)
	for _, port := range []string{"exec_true", "exec_false", "exec_out"} {
		p, ok := ifNode.OutputPort(port)
		require.True(t, ok, port)
		assert.Equal(t, SocketExecution, p.Flavor)
	}

	assert.Nil(t, NewNode(NodeKind("no_such_kind")))
}

func TestNewNode_AllKindsHaveLayouts(t *testing.T) {
	for _, kind := range KnownKinds() {
		n := NewNode(kind)
		require.NotNil(t, n, string(kind))
		assert.Equal(t, kind, n.Kind)
	}
}

func TestSocket_Accepts(t *testing.T) {
	assert.True(t, SocketExecution.Accepts(SocketExecution))
	assert.False(t, SocketExecution.Accepts(SocketValue))
	assert.False(t, SocketValue.Accepts(SocketBoolean))
	assert.True(t, SocketValue.Accepts(SocketValue))
	assert.True(t, SocketUniversal.Accepts(SocketBoolean))
	assert.True(t, SocketBoolean.Accepts(SocketUniversal))
}

func TestGraph_ConnectRejectsFlavorMismatch(t *testing.T) {
	g := New()
	lit := NewNode(KindLiteral)
	ifNode := NewNode(KindIfStatement)
	cmp := NewNode(KindComparison)
	require.NoError(t, g.AddNode(lit))
	require.NoError(t, g.AddNode(ifNode))
	require.NoError(t, g.AddNode(cmp))

	// Boolean result into boolean condition: fine.
	require.NoError(t, g.Connect(cmp.ID, "result", ifNode.ID, "condition"))

	// Boolean result into an execution input: rejected.
	err := g.Connect(cmp.ID, "result", ifNode.ID, "exec_in")
	assert.Error(t, err)

	// Universal literal into anything: fine.
	require.NoError(t, g.Connect(lit.ID, "value", cmp.ID, "left"))
}

func TestGraph_ConnectLastWins(t *testing.T) {
	g := New()
	a := NewNode(KindLiteral)
	b := NewNode(KindLiteral)
	cmp := NewNode(KindComparison)
	require.NoError(t, g.AddNode(a))
	require.NoError(t, g.AddNode(b))
	require.NoError(t, g.AddNode(cmp))

	require.NoError(t, g.Connect(a.ID, "value", cmp.ID, "left"))
	require.NoError(t, g.Connect(b.ID, "value", cmp.ID, "left"))

	c, ok := g.ConnectionInto(cmp.ID, "left")
	require.True(t, ok)
	assert.Equal(t, b.ID, c.Source)

	// Only one edge into the port survives.
	count := 0
	for _, conn := range g.Connections() {
		if conn.Target == cmp.ID && conn.TargetInput == "left" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGraph_OutputFanOut(t *testing.T) {
	g := New()
	lit := NewNode(KindLiteral)
	c1 := NewNode(KindComparison)
	c2 := NewNode(KindComparison)
	require.NoError(t, g.AddNode(lit))
	require.NoError(t, g.AddNode(c1))
	require.NoError(t, g.AddNode(c2))

	require.NoError(t, g.Connect(lit.ID, "value", c1.ID, "left"))
	require.NoError(t, g.Connect(lit.ID, "value", c2.ID, "left"))

	assert.Len(t, g.ConnectionsOutOf(lit.ID, "value"), 2)
}

func TestGraph_RemoveNodeCascades(t *testing.T) {
	g := New()
	lit := NewNode(KindLiteral)
	cmp := NewNode(KindComparison)
	require.NoError(t, g.AddNode(lit))
	require.NoError(t, g.AddNode(cmp))
	require.NoError(t, g.Connect(lit.ID, "value", cmp.ID, "left"))

	g.RemoveNode(lit.ID)

	_, ok := g.NodeByID(lit.ID)
	assert.False(t, ok)
	assert.Empty(t, g.Connections())
}

func TestGraph_JSONRoundTrip(t *testing.T) {
	g := New()
	v := NewNode(KindUintVar)
	v.SetControl("name", "total")
	v.SetControl("visibility", "public")
	cmp := NewNode(KindComparison)
	cmp.SetControl("operator", "==")
	require.NoError(t, g.AddNode(v))
	require.NoError(t, g.AddNode(cmp))
	require.NoError(t, g.Connect(v.ID, "value", cmp.ID, "left"))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var decoded Graph
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Nodes(), 2)
	assert.Equal(t, v.ID, decoded.Nodes()[0].ID) // insertion order kept
	got, ok := decoded.NodeByID(v.ID)
	require.True(t, ok)
	assert.Equal(t, "total", got.Control("name"))
	require.Len(t, decoded.Connections(), 1)
}

func TestGraph_UnmarshalDropsDanglingConnections(t *testing.T) {
	raw := `{
		"nodes": [{"id": "a", "kind": "literal_value", "controls": {}, "outputs": [{"name": "value", "flavor": "universal"}]}],
		"connections": [
			{"source": "a", "source_output": "value", "target": "ghost", "target_input": "left"},
			{"source": "a", "source_output": "no_such_port", "target": "a", "target_input": "left"}
		]
	}`
	var g Graph
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	assert.Empty(t, g.Connections())
}
