package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTool(id int) ToolSpec {
	return ToolSpec{
		ID:          id,
		Name:        "Sample",
		Description: "sample tool",
		Script:      "sample",
		Fields: []FieldSpec{
			{Name: "path", Prompt: "Path: ", Type: FieldString},
			{Name: "count", Prompt: "Count: ", Type: FieldInt},
		},
	}
}

func TestDefaultRegistry(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	tools := r.List()
	require.Len(t, tools, 5)
	for i, tool := range tools {
		assert.Equal(t, i+1, tool.ID)
		assert.NotEmpty(t, tool.Fields, "tool %s has no inputs", tool.Name)
	}
	assert.Equal(t, 5, r.MaxID())

	fp, err := r.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "File Batch Processor", fp.Name)
	assert.Equal(t, "file_processor", fp.Script)

	var names []string
	for _, f := range fp.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"source_folder", "output_folder", "operation", "pattern", "recursive"}, names)
	assert.Equal(t, FieldBool, fp.Fields[4].Type)

	mon, err := r.Lookup(4)
	require.NoError(t, err)
	threshold, ok := mon.Field("threshold")
	require.True(t, ok)
	assert.Equal(t, FieldFloat, threshold.Type)
	duration, ok := mon.Field("duration")
	require.True(t, ok)
	assert.Equal(t, FieldInt, duration.Type)
}

func TestLookupUnknownIDs(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	for _, id := range []int{0, -1, 6, 99, 1 << 30} {
		_, err := r.Lookup(id)
		assert.ErrorIs(t, err, ErrNotFound, "id %d", id)
	}
}

func TestListReturnsCopies(t *testing.T) {
	r, err := New(sampleTool(1))
	require.NoError(t, err)

	tools := r.List()
	tools[0].Name = "mutated"
	tools[0].Fields[0].Name = "mutated"

	again, err := r.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "Sample", again.Name)
	assert.Equal(t, "path", again.Fields[0].Name)
}

func TestNewOrdersByID(t *testing.T) {
	r, err := New(sampleTool(3), sampleTool(1), sampleTool(2))
	require.NoError(t, err)

	var ids []int
	for _, tool := range r.List() {
		ids = append(ids, tool.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
	assert.Equal(t, 3, r.Len())
}

func TestNewRejectsInvalidSpecs(t *testing.T) {
	dupField := sampleTool(1)
	dupField.Fields = append(dupField.Fields, FieldSpec{Name: "path", Prompt: "Again: ", Type: FieldString})

	noType := sampleTool(1)
	noType.Fields[0].Type = fieldTypeUnknown

	noScript := sampleTool(1)
	noScript.Script = ""

	tests := []struct {
		name  string
		specs []ToolSpec
	}{
		{"zero id", []ToolSpec{sampleTool(0)}},
		{"negative id", []ToolSpec{sampleTool(-2)}},
		{"duplicate id", []ToolSpec{sampleTool(1), sampleTool(1)}},
		{"duplicate field", []ToolSpec{dupField}},
		{"missing type", []ToolSpec{noType}},
		{"missing script", []ToolSpec{noScript}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.specs...)
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsUnknownTypeTag(t *testing.T) {
	doc := []byte(`
tools:
  - id: 1
    name: Broken
    script: broken
    inputs:
      - {name: when, prompt: "When: ", type: date}
`)
	_, err := Load(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field type")
}

func TestCheck(t *testing.T) {
	tool := sampleTool(1)

	good := NewInputMap()
	good.Set("path", "/tmp")
	good.Set("count", int64(3))
	assert.NoError(t, tool.Check(good))

	missing := NewInputMap()
	missing.Set("path", "/tmp")
	assert.ErrorIs(t, tool.Check(missing), ErrInvalidValue)

	wrongType := NewInputMap()
	wrongType.Set("path", "/tmp")
	wrongType.Set("count", "3")
	assert.ErrorIs(t, tool.Check(wrongType), ErrInvalidValue)

	extra := NewInputMap()
	extra.Set("path", "/tmp")
	extra.Set("count", int64(3))
	extra.Set("force", true)
	assert.ErrorIs(t, tool.Check(extra), ErrInvalidValue)

	assert.ErrorIs(t, tool.Check(nil), ErrInvalidValue)
}

func TestInputMapPreservesOrder(t *testing.T) {
	m := NewInputMap()
	m.Set("source_folder", "/tmp/in")
	m.Set("output_folder", "/tmp/out")
	m.Set("operation", "rename")
	m.Set("pattern", "*.txt")
	m.Set("recursive", false)

	assert.Equal(t, []string{"source_folder", "output_folder", "operation", "pattern", "recursive"}, m.Keys())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t,
		`{"source_folder":"/tmp/in","output_folder":"/tmp/out","operation":"rename","pattern":"*.txt","recursive":false}`,
		string(data))
}

func TestInputMapNumbersEncode(t *testing.T) {
	m := NewInputMap()
	m.Set("threshold", 85.5)
	m.Set("duration", int64(10))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"threshold":85.5,"duration":10}`, string(data))
}
