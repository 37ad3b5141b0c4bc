package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pricecart/backend/internal/domain"
)

// ProductRepo persists canonical products in sqlite
type ProductRepo struct{ db *sqlx.DB }

// NewProductRepo creates a product repository
func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// Save upserts the product row and replaces its price rows in one
// transaction. The ord column preserves canonical platform order.
func (r *ProductRepo) Save(ctx context.Context, product *domain.CanonicalProduct) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
  INSERT INTO products(id, name, category, unit, description, enriched_at)
  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
  ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    category = excluded.category,
    unit = excluded.unit,
    description = excluded.description,
    enriched_at = CURRENT_TIMESTAMP
`, product.ID, product.Name, product.Category, product.Unit, product.Description)
	if err != nil {
		tx.Rollback()
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM product_prices WHERE product_id = ?`, product.ID); err != nil {
		tx.Rollback()
		return err
	}

	for ord, entry := range product.Prices {
		if _, err = tx.ExecContext(ctx, `
  INSERT INTO product_prices(product_id, platform, price, available, delivery_time, ord)
  VALUES(?, ?, ?, ?, ?, ?)
`, product.ID, string(entry.Platform), entry.Price, entry.Available, entry.DeliveryTime, ord); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

type productRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Unit        string `db:"unit"`
	Description string `db:"description"`
}

type priceRow struct {
	Platform     string  `db:"platform"`
	Price        float64 `db:"price"`
	Available    bool    `db:"available"`
	DeliveryTime string  `db:"delivery_time"`
}

// GetByID reassembles a canonical product with its price entries in
// canonical platform order
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*domain.CanonicalProduct, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `
  SELECT id, name, category, unit, description
  FROM products
  WHERE id = ?
`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var rows []priceRow
	err = r.db.SelectContext(ctx, &rows, `
  SELECT platform, price, available, delivery_time
  FROM product_prices
  WHERE product_id = ?
  ORDER BY ord
`, id)
	if err != nil {
		return nil, err
	}

	prices := make([]domain.PlatformPrice, 0, len(rows))
	for _, p := range rows {
		prices = append(prices, domain.PlatformPrice{
			Platform:     domain.Platform(p.Platform),
			Price:        p.Price,
			Available:    p.Available,
			DeliveryTime: p.DeliveryTime,
		})
	}

	return &domain.CanonicalProduct{
		ID:          row.ID,
		Name:        row.Name,
		Category:    row.Category,
		Unit:        row.Unit,
		Description: row.Description,
		Prices:      prices,
	}, nil
}
