package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VectorRepository struct {
	DB *pgxpool.Pool
}

// Replace swaps every stored chunk of a product for the given ones.
func (r *VectorRepository) Replace(ctx context.Context, productID, title string, chunks []string, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("product %s: %d chunks but %d embeddings", productID, len(chunks), len(embeddings))
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM product_knowledge WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clearing vectors for %s: %w", productID, err)
	}

	for i, c := range chunks {
		// postgres rejects invalid UTF-8 ("invalid byte sequence for encoding UTF8")
		content := strings.ToValidUTF8(c, "")
		_, err := tx.Exec(ctx, `
			INSERT INTO product_knowledge (id, product_id, title, content, embedding)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), productID, title, content, vectorLiteral(embeddings[i]))
		if err != nil {
			return fmt.Errorf("saving vector for %s: %w", productID, err)
		}
	}
	return tx.Commit(ctx)
}

// vectorLiteral renders an embedding the way pgvector parses it: "[v1,v2,...]".
func vectorLiteral(embedding []float32) string {
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
