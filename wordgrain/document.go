package wordgrain

import (
	"encoding/json"
	"fmt"

	"github.com/wordgrain/wgtools/parser"
)

// Document is a WordGrain document.
type Document struct {
	Schema string  `json:"$schema" yaml:"$schema"`
	Meta   Meta    `json:"meta" yaml:"meta"`
	Grains []Grain `json:"grains" yaml:"grains"`
}

// Meta describes where a document's data came from.
type Meta struct {
	Source      string   `json:"source" yaml:"source"`
	Artist      string   `json:"artist" yaml:"artist"`
	Artists     []string `json:"artists,omitempty" yaml:"artists,omitempty"`
	CorpusSize  *int64   `json:"corpus_size,omitempty" yaml:"corpus_size,omitempty"`
	TotalWords  *int64   `json:"total_words,omitempty" yaml:"total_words,omitempty"`
	GeneratedAt string   `json:"generated_at" yaml:"generated_at"`
	Generator   string   `json:"generator,omitempty" yaml:"generator,omitempty"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Part-of-speech values allowed for Grain.POS.
const (
	POSNoun         = "noun"
	POSVerb         = "verb"
	POSAdjective    = "adjective"
	POSAdverb       = "adverb"
	POSPronoun      = "pronoun"
	POSPreposition  = "preposition"
	POSConjunction  = "conjunction"
	POSInterjection = "interjection"
	POSDeterminer   = "determiner"
	POSParticle     = "particle"
	POSOther        = "other"
)

// Sentiment values allowed for Grain.Sentiment.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

// Grain is a single word record.
type Grain struct {
	Word                string         `json:"word" yaml:"word"`
	Normalized          string         `json:"normalized,omitempty" yaml:"normalized,omitempty"`
	POS                 string         `json:"pos,omitempty" yaml:"pos,omitempty"`
	Frequency           *int64         `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	FrequencyNormalized *float64       `json:"frequency_normalized,omitempty" yaml:"frequency_normalized,omitempty"`
	TFIDF               *float64       `json:"tfidf,omitempty" yaml:"tfidf,omitempty"`
	Sentiment           string         `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	SentimentScore      *float64       `json:"sentiment_score,omitempty" yaml:"sentiment_score,omitempty"`
	Categories          []string       `json:"categories,omitempty" yaml:"categories,omitempty"`
	IsSlang             *bool          `json:"is_slang,omitempty" yaml:"is_slang,omitempty"`
	Etymology           string         `json:"etymology,omitempty" yaml:"etymology,omitempty"`
	Definition          string         `json:"definition,omitempty" yaml:"definition,omitempty"`
	Contexts            []Context      `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	FirstSeen           string         `json:"first_seen,omitempty" yaml:"first_seen,omitempty"`
	Collocations        []Collocation  `json:"collocations,omitempty" yaml:"collocations,omitempty"`
	Extensions          map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Key returns the grain's matching key: Normalized when set, else Word.
func (g Grain) Key() string {
	if g.Normalized != "" {
		return g.Normalized
	}
	return g.Word
}

// Context is a lyric line in which a grain appears.
type Context struct {
	Line      string   `json:"line" yaml:"line"`
	Track     string   `json:"track,omitempty" yaml:"track,omitempty"`
	Album     string   `json:"album,omitempty" yaml:"album,omitempty"`
	Year      *int     `json:"year,omitempty" yaml:"year,omitempty"`
	Featuring []string `json:"featuring,omitempty" yaml:"featuring,omitempty"`
	Timestamp string   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Collocation positions.
const (
	PositionBefore = "before"
	PositionAfter  = "after"
	PositionEither = "either"
)

// Collocation is a word that co-occurs with a grain.
type Collocation struct {
	Word     string  `json:"word" yaml:"word"`
	Score    float64 `json:"score" yaml:"score"`
	Position string  `json:"position,omitempty" yaml:"position,omitempty"`
}

// EffectivePosition returns Position, or "either" when it is unset.
func (c Collocation) EffectivePosition() string {
	if c.Position == "" {
		return PositionEither
	}
	return c.Position
}

// Decode converts a value (a *parser.Object tree, a native map, or raw JSON
// bytes) into a Document. It does not validate; run the validator first when
// the input is untrusted.
func Decode(value any) (*Document, error) {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		n, err := parser.Normalize(value)
		if err != nil {
			return nil, fmt.Errorf("wordgrain: %w", err)
		}
		if _, ok := n.(*parser.Object); !ok {
			return nil, fmt.Errorf("wordgrain: document must be an object, got %s", parser.Kind(n))
		}
		data, err = json.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("wordgrain: %w", err)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("wordgrain: decoding document: %w", err)
	}
	return &doc, nil
}
