package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/embedkit/sqlite-embed/vector"
)

// DefaultLimit is the number of entries a similarity query returns when the
// caller asks for a non-positive number.
const DefaultLimit = 10

// Entry is a single similarity search result. It is never persisted.
type Entry struct {
	ID       string
	Score    float64
	Content  string
	Metadata map[string]any
}

// SimilarByVector finds the number most similar items to the query vector,
// ordered by descending cosine similarity. Scoring happens inside the query
// engine: every stored embedding in the collection is decoded and scored by
// the vec_cosine scalar function, so each call is a full scan of the
// collection. Ties are broken by the storage engine's natural row order.
func (c *Collection) SimilarByVector(ctx context.Context, query []float32, number int) ([]Entry, error) {
	return c.similarByVector(ctx, query, number, "")
}

// SimilarByID finds the number most similar items to the one stored under
// id. The pivot item itself is excluded from the results. Fails with
// ErrNotFound, before any scan, when the id is not in the collection.
func (c *Collection) SimilarByID(ctx context.Context, id string, number int) ([]Entry, error) {
	collectionID, err := c.ID(ctx)
	if err != nil {
		return nil, err
	}
	var blob []byte
	err = c.db.QueryRowContext(ctx,
		`SELECT embedding FROM embeddings WHERE collection_id = ? AND id = ?`,
		collectionID, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	pivot, err := vector.Decode(blob)
	if err != nil {
		return nil, err
	}
	return c.similarByVector(ctx, pivot, number, id)
}

// Similar embeds text via the collection's model and finds the number most
// similar stored items. A free-text query is not itself a stored item, so
// nothing is excluded from the results.
func (c *Collection) Similar(ctx context.Context, text string, number int) ([]Entry, error) {
	if _, err := c.ID(ctx); err != nil {
		return nil, err
	}
	m, err := c.Model()
	if err != nil {
		return nil, err
	}
	query, err := m.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return c.SimilarByVector(ctx, query, number)
}

func (c *Collection) similarByVector(ctx context.Context, query []float32, number int, skipID string) ([]Entry, error) {
	collectionID, err := c.ID(ctx)
	if err != nil {
		return nil, err
	}
	if number <= 0 {
		number = DefaultLimit
	}

	q := `SELECT id, content, metadata, vec_cosine(embedding, ?) AS score
FROM embeddings WHERE collection_id = ?`
	args := []any{vector.Encode(query), collectionID}
	if skipID != "" {
		q += ` AND id != ?`
		args = append(args, skipID)
	}
	q += ` ORDER BY score DESC LIMIT ?`
	args = append(args, number)

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e             Entry
			content, meta sql.NullString
		)
		if err := rows.Scan(&e.ID, &content, &meta, &e.Score); err != nil {
			return nil, err
		}
		e.Content = content.String
		if meta.Valid {
			if err := json.Unmarshal([]byte(meta.String), &e.Metadata); err != nil {
				return nil, fmt.Errorf("collection: unmarshal metadata for %q: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
