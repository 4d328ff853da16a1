package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestObjectOrder(t *testing.T) {
	o := NewObject(0)
	o.Set("word", "alright")
	o.Set("frequency", 47.0)
	o.Set("pos", "adjective")
	o.Set("word", "loyalty")

	assert.Equal(t, []string{"word", "frequency", "pos"}, o.Keys())
	v, ok := o.Get("word")
	require.True(t, ok)
	assert.Equal(t, "loyalty", v)
	assert.Equal(t, 3, o.Len())

	o.Delete("frequency")
	o.Delete("missing")
	assert.Equal(t, []string{"word", "pos"}, o.Keys())
	assert.False(t, o.Has("frequency"))
}

func TestObjectZeroAndNil(t *testing.T) {
	var zero Object
	zero.Set("a", 1.0)
	assert.Equal(t, 1, zero.Len())

	var nilObj *Object
	assert.Equal(t, 0, nilObj.Len())
	assert.Nil(t, nilObj.Keys())
	assert.False(t, nilObj.Has("a"))
	nilObj.Delete("a")
	for range nilObj.All() {
		t.Fatal("nil object must not yield")
	}
}

func TestObjectKeysIsCopy(t *testing.T) {
	o := ObjectOf("a", 1.0, "b", 2.0)
	keys := o.Keys()
	keys[0] = "z"
	assert.Equal(t, []string{"a", "b"}, o.Keys())
}

func TestObjectAllStopsEarly(t *testing.T) {
	o := ObjectOf("a", 1.0, "b", 2.0, "c", 3.0)
	var seen []string
	for k := range o.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestObjectJSONRoundTripKeepsOrder(t *testing.T) {
	src := `{"zeta":1,"alpha":{"y":[true,null,"s"],"x":2.5},"mid":"m"}`
	var o Object
	require.NoError(t, json.Unmarshal([]byte(src), &o))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, o.Keys())

	out, err := json.Marshal(&o)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestObjectUnmarshalNonObject(t *testing.T) {
	var o Object
	err := json.Unmarshal([]byte(`[1,2]`), &o)
	require.Error(t, err)
}

func TestObjectMarshalYAML(t *testing.T) {
	o := ObjectOf("word", "humble", "frequency", 12.0, "score", 0.25, "tags", []any{"a", nil}, "slang", true)
	out, err := yaml.Marshal(o)
	require.NoError(t, err)
	assert.Contains(t, string(out), "frequency: 12\n")

	back, err := DecodeYAML(out)
	require.NoError(t, err)
	assert.Equal(t, o.Keys(), back.(*Object).Keys())
	assert.True(t, Equal(o, back))
}

func TestObjectMap(t *testing.T) {
	o := ObjectOf("a", ObjectOf("b", []any{ObjectOf("c", 1.0)}))
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": []any{map[string]any{"c": 1.0}}},
	}, o.Map())
}

func TestKind(t *testing.T) {
	tests := []struct {
		value any
		kind  string
	}{
		{nil, KindNull},
		{true, KindBoolean},
		{1.5, KindNumber},
		{"s", KindString},
		{[]any{}, KindArray},
		{NewObject(0), KindObject},
		{42, ""},
		{map[string]any{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, Kind(tt.value), "%#v", tt.value)
	}
	assert.True(t, IsContainer([]any{}))
	assert.True(t, IsContainer(NewObject(0)))
	assert.False(t, IsContainer("x"))
}
