package wordgrain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordgrain/wgtools/differ"
	"github.com/wordgrain/wgtools/parser"
	"github.com/wordgrain/wgtools/wordgrain"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name string
		elem any
		want string
	}{
		{"grain", parser.ObjectOf("word", "Hustle", "frequency", 1.0), "Hustle"},
		{"non-string word", parser.ObjectOf("word", 1.0), `{"word":1}`},
		{"string", "hustle", `"hustle"`},
		{"number", 2.0, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordgrain.Identity(tt.elem))
		})
	}
}

func TestNormalizedIdentity(t *testing.T) {
	tests := []struct {
		name string
		elem any
		want string
	}{
		{"word folded", parser.ObjectOf("word", "Hustle"), "hustle"},
		{"normalized preferred", parser.ObjectOf("word", "Compton", "normalized", "COMPTON"), "compton"},
		{"empty normalized falls back", parser.ObjectOf("word", "Pain", "normalized", ""), "pain"},
		{"decomposed accent", parser.ObjectOf("word", "Cafe\u0301"), "caf\u00e9"},
		{"sharp s", parser.ObjectOf("word", "Straße"), "strasse"},
		{"no word", parser.ObjectOf("line", "x"), `{"line":"x"}`},
		{"scalar", "Word", `"Word"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordgrain.NormalizedIdentity(tt.elem))
		})
	}
}

func TestNormalizedIdentityPairsCaseVariants(t *testing.T) {
	a := []any{parser.ObjectOf("word", "Hustle", "frequency", 1.0)}
	b := []any{parser.ObjectOf("word", "hustle", "frequency", 1.0)}

	delta, err := differ.Diff(a, b)
	require.NoError(t, err)
	arr := delta.(*differ.ArrayDelta)
	_, deleted := arr.Get(differ.OldKey(0))
	assert.True(t, deleted, "word identity treats the variants as different grains")

	d := differ.New()
	d.Identity = wordgrain.NormalizedIdentity
	delta, err = d.Diff(a, b)
	require.NoError(t, err)
	assert.Equal(t, `{"_t":"a","0":{"word":["Hustle","hustle"]}}`, marshal(t, delta))
}
