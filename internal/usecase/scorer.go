package usecase

import "github.com/pricecart/backend/internal/domain"

// Scoring contributions. The scale is additive and capped at 100; it is
// not a normalized metric.
const (
	typeMatchBonus     = 50.0 // same non-empty product type
	categoryMatchBonus = 20.0 // same source category
	quantityMatchBonus = 10.0 // same canonical quantity
	overlapWeight      = 0.5  // token-overlap ratio contributes up to 50
	maxScore           = 100.0
)

// SimilarityScorer computes a 0-100 similarity between two listings
// based on their extracted descriptors
type SimilarityScorer struct {
	extractor *DescriptorExtractor
}

// NewSimilarityScorer creates a scorer over the given extractor
func NewSimilarityScorer(extractor *DescriptorExtractor) *SimilarityScorer {
	return &SimilarityScorer{extractor: extractor}
}

// Score computes the similarity between two listings. Both descriptors
// are derived independently of argument order, so Score(a, b) == Score(b, a).
func (s *SimilarityScorer) Score(a, b domain.RawListing) float64 {
	descA := s.extractor.Extract(a.Name, a.Category)
	descB := s.extractor.Extract(b.Name, b.Category)

	score := 0.0

	if descA.ProductType != "" && descA.ProductType == descB.ProductType {
		score += typeMatchBonus
	}

	score += tokenOverlapRatio(descA.Tokens, descB.Tokens) * overlapWeight

	if a.Category == b.Category {
		score += categoryMatchBonus
	}

	if descA.Quantity != "" && descA.Quantity == descB.Quantity {
		score += quantityMatchBonus
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// tokenOverlapRatio returns min(shared/|A|, shared/|B|) * 100 over the
// two token sets, or 0 when either set is empty
func tokenOverlapRatio(tokensA, tokensB []string) float64 {
	setA := toSet(tokensA)
	setB := toSet(tokensB)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for token := range setA {
		if setB[token] {
			shared++
		}
	}

	ratioA := float64(shared) / float64(len(setA))
	ratioB := float64(shared) / float64(len(setB))
	if ratioB < ratioA {
		ratioA = ratioB
	}
	return ratioA * 100
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
