package usecase

import (
	"context"
	"log"
	"sort"

	"github.com/pricecart/backend/internal/domain"
)

// DefaultMinSimilarity is the canonical acceptance threshold. A single
// configured value is used at every call site.
const DefaultMinSimilarity = 60.0

// MatcherConfig holds configuration for the cross-platform matcher
type MatcherConfig struct {
	MinSimilarity      float64
	EnableDebugLogging bool
}

// Matcher finds same-category listings on other platforms that denote
// the same physical product as a given listing
type Matcher struct {
	scorer             *SimilarityScorer
	minSimilarity      float64
	enableDebugLogging bool
}

// NewMatcher creates a matcher with the given configuration
func NewMatcher(scorer *SimilarityScorer, config MatcherConfig) *Matcher {
	threshold := config.MinSimilarity
	if threshold <= 0 {
		threshold = DefaultMinSimilarity
	}

	return &Matcher{
		scorer:             scorer,
		minSimilarity:      threshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// MinSimilarity returns the configured acceptance threshold
func (m *Matcher) MinSimilarity() float64 {
	return m.minSimilarity
}

// FindMatches returns the accepted candidates for a listing, ordered by
// descending similarity. Candidates must share the listing's category,
// come from a different platform, and score at or above the threshold.
// Ties keep input order (stable sort).
func (m *Matcher) FindMatches(ctx context.Context, listing domain.RawListing, all []domain.RawListing) ([]domain.MatchCandidate, error) {
	var accepted []domain.MatchCandidate

	for _, candidate := range all {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if candidate.Category != listing.Category {
			continue
		}
		if candidate.Platform == listing.Platform {
			continue
		}
		if candidate.ID == listing.ID {
			continue
		}

		similarity := m.scorer.Score(listing, candidate)

		if m.enableDebugLogging {
			log.Printf("[MATCH] %q vs %q (%s) | score: %.1f", listing.Name, candidate.Name, candidate.Platform, similarity)
		}

		if similarity >= m.minSimilarity {
			accepted = append(accepted, domain.MatchCandidate{Listing: candidate, Similarity: similarity})
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Similarity > accepted[j].Similarity
	})

	return accepted, nil
}

// BestMatchPerPlatform reduces the accepted candidates to the single
// highest-scoring one from each platform
func (m *Matcher) BestMatchPerPlatform(ctx context.Context, listing domain.RawListing, all []domain.RawListing) (map[domain.Platform]domain.MatchCandidate, error) {
	matches, err := m.FindMatches(ctx, listing, all)
	if err != nil {
		return nil, err
	}

	best := make(map[domain.Platform]domain.MatchCandidate)
	for _, match := range matches {
		// Matches arrive in descending order; the first per platform wins
		if _, seen := best[match.Listing.Platform]; !seen {
			best[match.Listing.Platform] = match
		}
	}

	return best, nil
}
