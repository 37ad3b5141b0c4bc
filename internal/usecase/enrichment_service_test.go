package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/pricecart/backend/internal/domain"
)

type fakeListingRepo struct {
	listings []domain.RawListing
}

func (r *fakeListingRepo) All(ctx context.Context) ([]domain.RawListing, error) {
	return r.listings, nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*domain.RawListing, error) {
	for _, l := range r.listings {
		if l.ID == id {
			listing := l
			return &listing, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, id)
}

type fakeProductRepo struct {
	saved map[string]*domain.CanonicalProduct
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{saved: make(map[string]*domain.CanonicalProduct)}
}

func (r *fakeProductRepo) Save(ctx context.Context, product *domain.CanonicalProduct) error {
	r.saved[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.CanonicalProduct, error) {
	product, ok := r.saved[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return product, nil
}

type fakeCache struct {
	data map[string]*domain.CanonicalProduct
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]*domain.CanonicalProduct)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*domain.CanonicalProduct, error) {
	if p, ok := c.data[key]; ok {
		return p, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *fakeCache) Set(ctx context.Context, key string, product *domain.CanonicalProduct, ttl time.Duration) error {
	c.data[key] = product
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func newTestService(listings []domain.RawListing, products *fakeProductRepo, cache *fakeCache) *EnrichmentService {
	extractor := NewDescriptorExtractor(DefaultLexicon())
	matcher := NewMatcher(NewSimilarityScorer(extractor), MatcherConfig{MinSimilarity: 60})
	aggregator := NewPriceAggregator(matcher, rand.New(rand.NewSource(1)), AggregatorConfig{})

	var productCache domain.ProductCache
	if cache != nil {
		productCache = cache
	}

	return NewEnrichmentService(
		&fakeListingRepo{listings: listings},
		products,
		productCache,
		extractor,
		matcher,
		aggregator,
		EnrichmentServiceConfig{},
	)
}

func TestEnrichAll(t *testing.T) {
	ctx := context.Background()

	t.Run("enriches every valid listing", func(t *testing.T) {
		products := newFakeProductRepo()
		service := newTestService(testCatalog(), products, nil)

		report, err := service.EnrichAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Total != len(testCatalog()) {
			t.Errorf("Total = %d, want %d", report.Total, len(testCatalog()))
		}
		if report.Enriched != len(testCatalog()) {
			t.Errorf("Enriched = %d, want %d", report.Enriched, len(testCatalog()))
		}
		if report.Skipped != 0 {
			t.Errorf("Skipped = %d, want 0", report.Skipped)
		}
		if report.RunID == "" {
			t.Error("expected a run id")
		}

		for _, product := range products.saved {
			if len(product.Prices) != 5 {
				t.Errorf("product %s has %d prices, want 5", product.ID, len(product.Prices))
			}
		}
	})

	t.Run("skips malformed records without aborting the batch", func(t *testing.T) {
		listings := append(testCatalog(),
			domain.RawListing{ID: "bad-1", Category: "Fruits", Platform: domain.PlatformZepto},          // no name
			domain.RawListing{ID: "bad-2", Name: "Ghost Apple", Platform: domain.PlatformZepto},         // no category
			domain.RawListing{ID: "bad-3", Name: "Ghost Apple", Category: "Fruits", Platform: "rapido"}, // unknown platform
		)
		products := newFakeProductRepo()
		service := newTestService(listings, products, nil)

		report, err := service.EnrichAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Skipped != 3 {
			t.Errorf("Skipped = %d, want 3", report.Skipped)
		}
		if report.Enriched != len(testCatalog()) {
			t.Errorf("Enriched = %d, want %d", report.Enriched, len(testCatalog()))
		}
		if _, ok := products.saved["bad-1"]; ok {
			t.Error("malformed record was persisted")
		}
	})

	t.Run("backfills unit from listing or extracted quantity", func(t *testing.T) {
		listings := []domain.RawListing{
			{ID: "u-1", Name: "Paneer 200 g", Category: "Dairy & Milk", Platform: domain.PlatformZepto, Price: 89, Unit: "200 g"},
			{ID: "u-2", Name: "Paneer 200 g", Category: "Dairy & Milk", Platform: domain.PlatformBlinkit, Price: 92},
			{ID: "u-3", Name: "Paneer Block", Category: "Dairy & Milk", Platform: domain.PlatformJioMart, Price: 85},
		}
		products := newFakeProductRepo()
		service := newTestService(listings, products, nil)

		if _, err := service.EnrichAll(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := products.saved["u-1"].Unit; got != "200 g" {
			t.Errorf("u-1 unit = %q, want listing unit", got)
		}
		if got := products.saved["u-2"].Unit; got != "200g" {
			t.Errorf("u-2 unit = %q, want extracted quantity 200g", got)
		}
		if got := products.saved["u-3"].Unit; got != "1 unit" {
			t.Errorf("u-3 unit = %q, want default", got)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		service := newTestService(testCatalog(), newFakeProductRepo(), nil)
		if _, err := service.EnrichAll(cancelled); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestProductByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns repository data and fills the cache", func(t *testing.T) {
		products := newFakeProductRepo()
		cache := newFakeCache()
		service := newTestService(testCatalog(), products, cache)

		if _, err := service.EnrichAll(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		product, err := service.ProductByID(ctx, "bk-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if product.ID != "bk-1" {
			t.Errorf("ID = %s, want bk-1", product.ID)
		}
		if _, ok := cache.data["bk-1"]; !ok {
			t.Error("expected product to be cached after first read")
		}
	})

	t.Run("serves repeated reads from cache", func(t *testing.T) {
		products := newFakeProductRepo()
		cache := newFakeCache()
		service := newTestService(testCatalog(), products, cache)

		if _, err := service.EnrichAll(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		first, err := service.ProductByID(ctx, "bk-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		delete(products.saved, "bk-1") // cache must now be the only source

		second, err := service.ProductByID(ctx, "bk-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("cached read returned %s, want %s", second.ID, first.ID)
		}
	})

	t.Run("unknown id returns ErrProductNotFound", func(t *testing.T) {
		service := newTestService(testCatalog(), newFakeProductRepo(), newFakeCache())
		if _, err := service.ProductByID(ctx, "nope"); !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		service := newTestService(testCatalog(), newFakeProductRepo(), newFakeCache())
		if _, err := service.ProductByID(ctx, ""); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestMatchesFor(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the accepted matches for a listing", func(t *testing.T) {
		service := newTestService(testCatalog(), newFakeProductRepo(), nil)

		matches, err := service.MatchesFor(ctx, "bk-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(matches) == 0 {
			t.Fatal("expected matches for the banana listing")
		}
		for _, m := range matches {
			if m.Listing.Platform == domain.PlatformBlinkit {
				t.Errorf("match %s from the source platform", m.Listing.ID)
			}
		}
	})

	t.Run("unknown listing returns ErrListingNotFound", func(t *testing.T) {
		service := newTestService(testCatalog(), newFakeProductRepo(), nil)
		if _, err := service.MatchesFor(ctx, "nope"); !errors.Is(err, domain.ErrListingNotFound) {
			t.Errorf("error = %v, want ErrListingNotFound", err)
		}
	})
}
