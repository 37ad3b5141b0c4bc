package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricecart/backend/internal/domain"
)

func openTestDB(t *testing.T) (*ListingRepo, *ProductRepo) {
	t.Helper()

	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewListingRepo(db), NewProductRepo(db)
}

func TestOpenDB_SeedsDemoCatalog(t *testing.T) {
	listings, _ := openTestDB(t)

	all, err := listings.All(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, all, "fresh database should be seeded")

	for _, l := range all {
		assert.NoError(t, l.Validate(), "seed listing %s should be valid", l.ID)
	}
}

func TestListingRepo_GetByID(t *testing.T) {
	listings, _ := openTestDB(t)
	ctx := context.Background()

	listing, err := listings.GetByID(ctx, "bk-001")
	require.NoError(t, err)
	assert.Equal(t, "Fresho! Banana 12 pcs", listing.Name)
	assert.Equal(t, domain.PlatformBlinkit, listing.Platform)

	_, err = listings.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestProductRepo_SaveAndGet(t *testing.T) {
	_, products := openTestDB(t)
	ctx := context.Background()

	product := &domain.CanonicalProduct{
		ID:          "bk-001",
		Name:        "Fresho! Banana 12 pcs",
		Category:    "Fruits",
		Unit:        "12 pcs",
		Description: "Fresho! Banana 12 pcs - compare prices across delivery platforms",
	}
	for _, platform := range domain.AllPlatforms() {
		product.Prices = append(product.Prices, domain.PlatformPrice{
			Platform:     platform.ID,
			Price:        60,
			Available:    true,
			DeliveryTime: platform.DeliveryTime,
		})
	}

	require.NoError(t, products.Save(ctx, product))

	got, err := products.GetByID(ctx, "bk-001")
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, product.Name, got.Name)
	require.Len(t, got.Prices, 5)

	// Canonical platform order must survive the round trip
	for i, platform := range domain.AllPlatforms() {
		assert.Equal(t, platform.ID, got.Prices[i].Platform)
		assert.Equal(t, platform.DeliveryTime, got.Prices[i].DeliveryTime)
	}
}

func TestProductRepo_SaveReplacesPrices(t *testing.T) {
	_, products := openTestDB(t)
	ctx := context.Background()

	product := &domain.CanonicalProduct{ID: "bk-001", Name: "Banana", Category: "Fruits"}
	for _, platform := range domain.AllPlatforms() {
		product.Prices = append(product.Prices, domain.PlatformPrice{
			Platform:     platform.ID,
			Price:        60,
			Available:    true,
			DeliveryTime: platform.DeliveryTime,
		})
	}
	require.NoError(t, products.Save(ctx, product))

	// Second run with new prices must replace, not accumulate
	for i := range product.Prices {
		product.Prices[i].Price = 55
	}
	require.NoError(t, products.Save(ctx, product))

	got, err := products.GetByID(ctx, "bk-001")
	require.NoError(t, err)
	require.Len(t, got.Prices, 5)
	for _, entry := range got.Prices {
		assert.Equal(t, 55.0, entry.Price)
	}
}

func TestProductRepo_GetMissing(t *testing.T) {
	_, products := openTestDB(t)

	_, err := products.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
