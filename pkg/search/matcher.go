package search

import (
	"context"

	"github.com/soundprediction/semagraph/pkg/embedding"
)

// Candidate is one scorable entity: its graph id plus the text whose
// embedding represents it. Candidates with empty text cannot match and are
// skipped.
type Candidate struct {
	ID   string
	Text string
}

// Matcher scores a query embedding against candidate embeddings by dot
// product and keeps the single best score above a threshold.
type Matcher struct {
	cache *embedding.Cache
}

// NewMatcher creates a Matcher over the given embedding cache.
func NewMatcher(cache *embedding.Cache) *Matcher {
	return &Matcher{cache: cache}
}

// FindBest returns the id of the best-matching candidate and its score.
//
// A candidate becomes the new best only if its score is strictly greater
// than both the current best and the threshold, so on ties the
// earliest-seen best wins. When no candidate clears the threshold the
// result is ("", 0): callers never see a raw score that was below the
// threshold. Candidates whose embedding is absent or of a different length
// than the query's are skipped, they cannot match.
//
// A provider failure fails the whole call rather than returning a
// silently-degraded result.
func (m *Matcher) FindBest(ctx context.Context, queryText string, candidates []Candidate, threshold float64) (string, float64, error) {
	queryVec, err := m.cache.GetOrComputeText(ctx, queryText)
	if err != nil {
		return "", 0, err
	}
	if len(queryVec) == 0 {
		return "", 0, nil
	}

	bestID := ""
	highest := -1.0

	for _, cand := range candidates {
		if cand.Text == "" {
			continue
		}
		candVec, err := m.cache.GetOrComputeText(ctx, cand.Text)
		if err != nil {
			return "", 0, err
		}
		if len(candVec) != len(queryVec) || len(candVec) == 0 {
			continue
		}

		score := DotProduct(queryVec, candVec)
		if score > highest && score > threshold {
			highest = score
			bestID = cand.ID
		}
	}

	if bestID == "" {
		return "", 0, nil
	}
	return bestID, highest, nil
}
