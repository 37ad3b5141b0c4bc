package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pricecart/backend/internal/domain"
)

// ListingRepo reads raw listings from sqlite
type ListingRepo struct{ db *sqlx.DB }

// NewListingRepo creates a listing repository
func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

// All returns every captured listing
func (r *ListingRepo) All(ctx context.Context) ([]domain.RawListing, error) {
	var out []domain.RawListing
	err := r.db.SelectContext(ctx, &out, `
  SELECT id, name, category, price, platform, unit
  FROM listings
  ORDER BY id
`)
	return out, err
}

// GetByID returns a single listing
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*domain.RawListing, error) {
	var l domain.RawListing
	err := r.db.GetContext(ctx, &l, `
  SELECT id, name, category, price, platform, unit
  FROM listings
  WHERE id = ?
`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
