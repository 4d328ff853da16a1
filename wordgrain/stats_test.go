package wordgrain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordgrain/wgtools/internal/testutil"
	"github.com/wordgrain/wgtools/wordgrain"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return string(out)
}

func decodeFixture(t *testing.T, name string) *wordgrain.Document {
	t.Helper()
	doc, err := wordgrain.Decode(testutil.ReadFixture(t, name))
	require.NoError(t, err)
	return doc
}

func TestComputeStats(t *testing.T) {
	stats := wordgrain.ComputeStats(decodeFixture(t, testutil.KendrickFixture))

	assert.Equal(t, 6, stats.GrainCount)
	require.NotNil(t, stats.AvgFrequency)
	assert.InDelta(t, float64(47+31+22+18+9)/5, *stats.AvgFrequency, 1e-9)
	require.NotNil(t, stats.AvgTFIDF)
	assert.InDelta(t, (0.82+0.77+0.69+0.91)/4, *stats.AvgTFIDF, 1e-9)
	assert.Equal(t, wordgrain.SentimentCounts{Positive: 2, Negative: 1, Neutral: 2, Mixed: 1}, stats.Sentiment)
}

func TestComputeStatsWithoutMeasures(t *testing.T) {
	stats := wordgrain.ComputeStats(decodeFixture(t, testutil.MinimalFixture))
	assert.Equal(t, 1, stats.GrainCount)
	assert.Nil(t, stats.AvgFrequency)
	assert.Nil(t, stats.AvgTFIDF)
	assert.Equal(t, wordgrain.SentimentCounts{}, stats.Sentiment)

	assert.JSONEq(t, `{
		"grain_count": 1,
		"avg_frequency": null,
		"avg_tfidf": null,
		"sentiment": {"positive": 0, "negative": 0, "neutral": 0, "mixed": 0}
	}`, marshal(t, stats))

	assert.Equal(t, wordgrain.Stats{}, wordgrain.ComputeStats(nil))
}

func TestCommonWords(t *testing.T) {
	left := decodeFixture(t, testutil.KendrickFixture)
	right := decodeFixture(t, testutil.RevisedFixture)

	common := wordgrain.CommonWords(left, right)
	words := make([]string, len(common))
	for i, c := range common {
		words[i] = c.Word
	}
	assert.Equal(t, []string{"hustle", "loyalty", "humble", "Compton", "pain"}, words)

	assert.Equal(t, int64(99), common[0].CombinedFrequency())
	assert.Equal(t, int64(47), *common[0].LeftFrequency)
	assert.Equal(t, int64(52), *common[0].RightFrequency)
	assert.Equal(t, int64(0), common[4].CombinedFrequency())
	assert.Nil(t, common[4].LeftFrequency)
}

func TestCommonWordsMatching(t *testing.T) {
	freq := func(n int64) *int64 { return &n }
	left := &wordgrain.Document{Grains: []wordgrain.Grain{
		{Word: "Hustle", Frequency: freq(1)},
		{Word: "b", Frequency: freq(5)},
		{Word: "a", Frequency: freq(5)},
		{Word: "solo"},
	}}
	right := &wordgrain.Document{Grains: []wordgrain.Grain{
		{Word: "x", Normalized: "HUSTLE", Frequency: freq(2)},
		{Word: "a"},
		{Word: "b"},
	}}

	common := wordgrain.CommonWords(left, right)
	require.Len(t, common, 3)
	assert.Equal(t, "a", common[0].Word, "ties ordered by word")
	assert.Equal(t, "b", common[1].Word)
	assert.Equal(t, "Hustle", common[2].Word)
	assert.Equal(t, int64(3), common[2].CombinedFrequency())

	assert.Nil(t, wordgrain.CommonWords(nil, right))
	assert.Empty(t, wordgrain.CommonWords(left, &wordgrain.Document{}))
}
