package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mirrow/internal/model"
)

type RawRepository struct {
	DB *sql.DB
}

// Save upserts a raw product by its catalog id and flags it for formatting.
func (r *RawRepository) Save(ctx context.Context, p model.RawProduct) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM product_raw_description WHERE product_id = $1)", p.ProductID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking raw product %s: %w", p.ProductID, err)
	}

	if exists {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE product_raw_description
			SET handle = $1, title = $2, source_url = $3, raw_description = $4, sync_status = 'S'
			WHERE product_id = $5
		`, p.Handle, p.Title, p.SourceURL, p.Description, p.ProductID)
	} else {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err = r.DB.ExecContext(ctx, `
			INSERT INTO product_raw_description
			(id, product_id, handle, title, source_url, raw_description, sync_status)
			VALUES ($1, $2, $3, $4, $5, $6, 'S')
		`, p.ID, p.ProductID, p.Handle, p.Title, p.SourceURL, p.Description)
	}
	if err != nil {
		return fmt.Errorf("saving raw product %s: %w", p.ProductID, err)
	}
	return nil
}

// List returns the products still waiting to be formatted.
func (r *RawRepository) List(ctx context.Context) ([]model.RawProduct, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, handle, title, source_url, raw_description
		FROM product_raw_description
		WHERE sync_status = 'S'
	`)
	if err != nil {
		return nil, fmt.Errorf("listing raw products: %w", err)
	}
	defer rows.Close()

	var list []model.RawProduct
	for rows.Next() {
		var p model.RawProduct
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Handle, &p.Title, &p.SourceURL, &p.Description); err != nil {
			return nil, fmt.Errorf("scanning raw product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *RawRepository) MarkAsProcessed(ctx context.Context, productID string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE product_raw_description
		SET sync_status = 'N'
		WHERE product_id = $1
	`, productID)
	return err
}
