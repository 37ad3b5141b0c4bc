package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pricecart/backend/internal/domain"
)

// EnrichmentReport summarizes one batch run
type EnrichmentReport struct {
	RunID    string        `json:"runId"`
	Total    int           `json:"total"`
	Enriched int           `json:"enriched"`
	Skipped  int           `json:"skipped"`
	Elapsed  time.Duration `json:"elapsedNs"`
}

// EnrichmentServiceConfig holds configuration for the enrichment service
type EnrichmentServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// EnrichmentService orchestrates a batch run: load raw listings, enrich
// each one into a canonical product, and write the results back. Reads
// on the HTTP path go through the cache.
type EnrichmentService struct {
	listings           domain.ListingRepository
	products           domain.ProductRepository
	cache              domain.ProductCache
	extractor          *DescriptorExtractor
	matcher            *Matcher
	aggregator         *PriceAggregator
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewEnrichmentService creates an enrichment service with its dependencies
func NewEnrichmentService(
	listings domain.ListingRepository,
	products domain.ProductRepository,
	cache domain.ProductCache,
	extractor *DescriptorExtractor,
	matcher *Matcher,
	aggregator *PriceAggregator,
	config EnrichmentServiceConfig,
) *EnrichmentService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &EnrichmentService{
		listings:           listings,
		products:           products,
		cache:              cache,
		extractor:          extractor,
		matcher:            matcher,
		aggregator:         aggregator,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// EnrichAll runs the batch: every structurally valid listing yields one
// canonical product keyed by the listing's own id. Malformed records are
// skipped with a diagnostic; they never abort the batch.
func (s *EnrichmentService) EnrichAll(ctx context.Context) (*EnrichmentReport, error) {
	started := time.Now()
	report := &EnrichmentReport{RunID: uuid.NewString()}

	all, err := s.listings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading listings: %w", err)
	}
	report.Total = len(all)

	for _, listing := range all {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := listing.Validate(); err != nil {
			report.Skipped++
			log.Printf("[ENRICH] run %s: skipping record: %v", report.RunID, err)
			continue
		}

		product, err := s.enrichOne(ctx, listing, all)
		if err != nil {
			return nil, err
		}

		if err := s.products.Save(ctx, product); err != nil {
			return nil, fmt.Errorf("saving product %s: %w", product.ID, err)
		}
		// Drop any stale cached copy from a previous run
		if s.cache != nil {
			_ = s.cache.Delete(ctx, product.ID)
		}
		report.Enriched++
	}

	report.Elapsed = time.Since(started)
	log.Printf("[ENRICH] run %s: %d listings, %d enriched, %d skipped in %s",
		report.RunID, report.Total, report.Enriched, report.Skipped, report.Elapsed)

	return report, nil
}

// enrichOne aggregates per-platform prices for a single listing and
// backfills the display fields
func (s *EnrichmentService) enrichOne(ctx context.Context, listing domain.RawListing, all []domain.RawListing) (*domain.CanonicalProduct, error) {
	prices, err := s.aggregator.Aggregate(ctx, listing, all)
	if err != nil {
		return nil, fmt.Errorf("aggregating listing %s: %w", listing.ID, err)
	}

	descriptor := s.extractor.Extract(listing.Name, listing.Category)

	if s.enableDebugLogging {
		log.Printf("[ENRICH] %s: tokens=%v quantity=%q type=%q", listing.ID,
			descriptor.Tokens, descriptor.Quantity, descriptor.ProductType)
	}

	return &domain.CanonicalProduct{
		ID:          listing.ID,
		Name:        listing.Name,
		Category:    listing.Category,
		Unit:        backfillUnit(listing, descriptor),
		Description: backfillDescription(listing),
		Prices:      prices,
	}, nil
}

// ProductByID returns a canonical product, cache-first
func (s *EnrichmentService) ProductByID(ctx context.Context, id string) (*domain.CanonicalProduct, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, id, product, s.cacheTTL)
	}

	return product, nil
}

// MatchesFor returns the accepted cross-platform matches for a listing
func (s *EnrichmentService) MatchesFor(ctx context.Context, id string) ([]domain.MatchCandidate, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	all, err := s.listings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading listings: %w", err)
	}

	return s.matcher.FindMatches(ctx, *listing, all)
}

// backfillUnit prefers the listing's own unit, then the extracted
// quantity, then a generic default
func backfillUnit(listing domain.RawListing, descriptor domain.ProductDescriptor) string {
	if listing.Unit != "" {
		return listing.Unit
	}
	if descriptor.Quantity != "" {
		return descriptor.Quantity
	}
	return "1 unit"
}

func backfillDescription(listing domain.RawListing) string {
	return fmt.Sprintf("%s - compare prices across delivery platforms", listing.Name)
}
