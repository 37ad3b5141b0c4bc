package domain

import (
	"context"
	"time"
)

// ListingRepository reads the raw listings captured by the scrapers.
// The engine never writes listings.
type ListingRepository interface {
	All(ctx context.Context) ([]RawListing, error)
	GetByID(ctx context.Context, id string) (*RawListing, error)
}

// ProductRepository persists enriched canonical products, keyed by the
// source listing's id
type ProductRepository interface {
	Save(ctx context.Context, product *CanonicalProduct) error
	GetByID(ctx context.Context, id string) (*CanonicalProduct, error)
}

// ProductCache caches canonical products for the read path
type ProductCache interface {
	Get(ctx context.Context, key string) (*CanonicalProduct, error)
	Set(ctx context.Context, key string, product *CanonicalProduct, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
