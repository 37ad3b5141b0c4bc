package usecase

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/pricecart/backend/internal/domain"
)

// Defaults for synthetic pricing
const (
	defaultPriceVariance    = 0.1 // synthetic factor drawn from [1-v, 1+v]
	defaultAvailabilityProb = 0.8
)

// PriceSource supplies the randomness used for synthetic entries.
// *math/rand.Rand satisfies it; tests inject a seeded source to replay
// synthesis deterministically.
type PriceSource interface {
	Float64() float64
}

// AggregatorConfig holds configuration for the price aggregator
type AggregatorConfig struct {
	PriceVariance           float64
	AvailabilityProbability float64
}

// PriceAggregator resolves one price/availability entry per platform for
// a listing: the listing's own entry is always real, matched platforms
// reuse the best match's price, and unmatched platforms get a bounded
// synthetic entry.
type PriceAggregator struct {
	matcher   *Matcher
	rng       PriceSource
	variance  float64
	availProb float64
}

// NewPriceAggregator creates an aggregator. A nil rng falls back to a
// time-seeded source.
func NewPriceAggregator(matcher *Matcher, rng PriceSource, config AggregatorConfig) *PriceAggregator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	variance := config.PriceVariance
	if variance <= 0 {
		variance = defaultPriceVariance
	}

	availProb := config.AvailabilityProbability
	if availProb <= 0 {
		availProb = defaultAvailabilityProb
	}

	return &PriceAggregator{
		matcher:   matcher,
		rng:       rng,
		variance:  variance,
		availProb: availProb,
	}
}

// Aggregate produces exactly one PlatformPrice per known platform, in
// canonical platform order.
func (a *PriceAggregator) Aggregate(ctx context.Context, listing domain.RawListing, all []domain.RawListing) ([]domain.PlatformPrice, error) {
	best, err := a.matcher.BestMatchPerPlatform(ctx, listing, all)
	if err != nil {
		return nil, err
	}

	platforms := domain.AllPlatforms()
	prices := make([]domain.PlatformPrice, 0, len(platforms))

	for _, platform := range platforms {
		switch {
		case platform.ID == listing.Platform:
			// Origin entry: always the listing's own price, never synthesized
			prices = append(prices, domain.PlatformPrice{
				Platform:     platform.ID,
				Price:        listing.Price,
				Available:    true,
				DeliveryTime: platform.DeliveryTime,
			})

		default:
			if match, ok := best[platform.ID]; ok {
				prices = append(prices, domain.PlatformPrice{
					Platform:     platform.ID,
					Price:        match.Listing.Price,
					Available:    true,
					DeliveryTime: platform.DeliveryTime,
				})
				continue
			}
			prices = append(prices, a.synthesize(listing, platform))
		}
	}

	return prices, nil
}

// synthesize fabricates an entry for a platform with no accepted match.
// Price is the listing price scaled by a uniform factor from
// [1-variance, 1+variance]; availability is an independent draw.
// A zero listing price stays zero.
func (a *PriceAggregator) synthesize(listing domain.RawListing, platform domain.PlatformInfo) domain.PlatformPrice {
	factor := 1 - a.variance + a.rng.Float64()*2*a.variance
	price := roundPrice(listing.Price * factor)
	available := a.rng.Float64() < a.availProb

	return domain.PlatformPrice{
		Platform:     platform.ID,
		Price:        price,
		Available:    available,
		DeliveryTime: platform.DeliveryTime,
	}
}

// roundPrice rounds to currency precision (2 decimals)
func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
