package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordgrain/wgtools/schema"
)

func TestHandleSchema_Text(t *testing.T) {
	env, stdout, _ := newTestEnv(t, "", nil)

	require.NoError(t, HandleSchema(env, nil))

	out := stdout.String()
	for _, name := range []string{"Meta", "Grain", "Context", "Collocation"} {
		assert.Contains(t, out, name+"\n")
	}
	assert.Contains(t, out, "generated_at")
	assert.Contains(t, out, "yes")
}

func TestHandleSchema_Definition(t *testing.T) {
	env, stdout, _ := newTestEnv(t, "", nil)

	require.NoError(t, HandleSchema(env, []string{"--definition", "Collocation", "--format", "json"}))

	var defs []schema.Definition
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &defs))
	require.Len(t, defs, 1)
	assert.Equal(t, "Collocation", defs[0].Name)
	require.NotEmpty(t, defs[0].Rows)
	assert.Equal(t, "word", defs[0].Rows[0].Name)
}

func TestHandleSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown definition", []string{"--definition", "Verse"}, `unknown definition "Verse"; valid values: Meta, Grain, Context, Collocation`},
		{"positional argument", []string{"Grain"}, "takes no arguments"},
		{"missing schema file", []string{"--schema", "absent.json"}, "loading schema"},
		{"bad format", []string{"--format", "toml"}, "invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _, _ := newTestEnv(t, "", nil)
			assert.ErrorContains(t, HandleSchema(env, tt.args), tt.wantErr)
		})
	}
}
