package wordgrain

import (
	"cmp"
	"slices"
)

// SentimentCounts tallies grains by sentiment.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Mixed    int `json:"mixed"`
}

// Stats summarizes a document.
type Stats struct {
	GrainCount int `json:"grain_count"`
	// AvgFrequency is the mean over grains that carry a frequency; nil when none do
	AvgFrequency *float64 `json:"avg_frequency"`
	// AvgTFIDF is the mean over grains that carry a tf-idf; nil when none do
	AvgTFIDF  *float64        `json:"avg_tfidf"`
	Sentiment SentimentCounts `json:"sentiment"`
}

// ComputeStats summarizes doc.
func ComputeStats(doc *Document) Stats {
	var s Stats
	if doc == nil {
		return s
	}
	s.GrainCount = len(doc.Grains)

	var freqSum, tfidfSum float64
	var freqN, tfidfN int
	for _, g := range doc.Grains {
		if g.Frequency != nil {
			freqSum += float64(*g.Frequency)
			freqN++
		}
		if g.TFIDF != nil {
			tfidfSum += *g.TFIDF
			tfidfN++
		}
		switch g.Sentiment {
		case SentimentPositive:
			s.Sentiment.Positive++
		case SentimentNegative:
			s.Sentiment.Negative++
		case SentimentNeutral:
			s.Sentiment.Neutral++
		case SentimentMixed:
			s.Sentiment.Mixed++
		}
	}
	if freqN > 0 {
		avg := freqSum / float64(freqN)
		s.AvgFrequency = &avg
	}
	if tfidfN > 0 {
		avg := tfidfSum / float64(tfidfN)
		s.AvgTFIDF = &avg
	}
	return s
}

// CommonWord is a word found in both documents.
type CommonWord struct {
	// Word is the word as spelled in the left document
	Word           string   `json:"word"`
	LeftFrequency  *int64   `json:"left_frequency,omitempty"`
	RightFrequency *int64   `json:"right_frequency,omitempty"`
	LeftTFIDF      *float64 `json:"left_tfidf,omitempty"`
	RightTFIDF     *float64 `json:"right_tfidf,omitempty"`
}

// CombinedFrequency returns the sum of both frequencies, counting missing ones as zero.
func (c CommonWord) CombinedFrequency() int64 {
	var n int64
	if c.LeftFrequency != nil {
		n += *c.LeftFrequency
	}
	if c.RightFrequency != nil {
		n += *c.RightFrequency
	}
	return n
}

// CommonWords returns the words present in both documents, matched by the
// folded Grain.Key, sorted by combined frequency descending and then by word.
// When the right document repeats a key, its last grain wins.
func CommonWords(left, right *Document) []CommonWord {
	if left == nil || right == nil {
		return nil
	}
	index := make(map[string]*Grain, len(right.Grains))
	for i := range right.Grains {
		index[FoldWord(right.Grains[i].Key())] = &right.Grains[i]
	}

	var out []CommonWord
	for _, g := range left.Grains {
		match, ok := index[FoldWord(g.Key())]
		if !ok {
			continue
		}
		out = append(out, CommonWord{
			Word:           g.Word,
			LeftFrequency:  g.Frequency,
			RightFrequency: match.Frequency,
			LeftTFIDF:      g.TFIDF,
			RightTFIDF:     match.TFIDF,
		})
	}

	slices.SortStableFunc(out, func(a, b CommonWord) int {
		if c := cmp.Compare(b.CombinedFrequency(), a.CombinedFrequency()); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return out
}
