package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mirrow/internal/formatter"
	"mirrow/internal/model"
)

var ErrNotFound = errors.New("formatted product not found")

type FormattedRepository struct {
	DB *pgxpool.Pool
}

// Save stores the formatted record for a product, replacing any earlier one.
func (r *FormattedRepository) Save(ctx context.Context, productID, title string, data formatter.FormattedProductData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding formatted product %s: %w", productID, err)
	}

	_, err = r.DB.Exec(ctx, `
		INSERT INTO product_formatted (id, product_id, title, clean_description, data, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id) DO UPDATE
		SET title = EXCLUDED.title,
		    clean_description = EXCLUDED.clean_description,
		    data = EXCLUDED.data,
		    updated_at = now()
	`, uuid.New(), productID, title, data.CleanDescription, payload)
	if err != nil {
		return fmt.Errorf("saving formatted product %s: %w", productID, err)
	}
	return nil
}

func (r *FormattedRepository) Get(ctx context.Context, productID string) (model.FormattedProduct, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, product_id, title, data, updated_at
		FROM product_formatted
		WHERE product_id = $1
	`, productID)

	p, err := scanFormatted(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.FormattedProduct{}, ErrNotFound
	}
	return p, err
}

// List returns every formatted product, oldest update first.
func (r *FormattedRepository) List(ctx context.Context) ([]model.FormattedProduct, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, product_id, title, data, updated_at
		FROM product_formatted
		ORDER BY updated_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing formatted products: %w", err)
	}
	defer rows.Close()

	var list []model.FormattedProduct
	for rows.Next() {
		p, err := scanFormatted(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanFormatted(row pgx.Row) (model.FormattedProduct, error) {
	var (
		p       model.FormattedProduct
		id      uuid.UUID
		payload []byte
	)
	if err := row.Scan(&id, &p.ProductID, &p.Title, &payload, &p.UpdatedAt); err != nil {
		return model.FormattedProduct{}, err
	}
	p.ID = id.String()
	if err := json.Unmarshal(payload, &p.Data); err != nil {
		return model.FormattedProduct{}, fmt.Errorf("decoding formatted product %s: %w", p.ProductID, err)
	}
	return p, nil
}
