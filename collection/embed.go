package collection

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/embedkit/sqlite-embed/embedding"
	"github.com/embedkit/sqlite-embed/vector"
)

// Item is one unit of text to embed: a caller-supplied id unique within the
// collection, the text itself, and optional structured metadata.
type Item struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// Re-embedding an existing id replaces the stored row. The upsert keeps
// repeated embed runs idempotent instead of failing on the composite key.
const upsertSQL = `
INSERT INTO embeddings(collection_id, id, embedding, content, metadata)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(collection_id, id) DO UPDATE SET
  embedding = excluded.embedding,
  content   = excluded.content,
  metadata  = excluded.metadata`

// Embed computes the vector for text via the collection's model and stores
// it under id. The original text is persisted in the content column only
// when store is true; metadata, when non-nil, is serialized to JSON. Inserts
// exactly one row and resolves the collection first if needed.
func (c *Collection) Embed(ctx context.Context, id, text string, metadata map[string]any, store bool) error {
	// Resolve first: an opened collection adopts its stored model id here.
	collectionID, err := c.ID(ctx)
	if err != nil {
		return err
	}
	m, err := c.Model()
	if err != nil {
		return err
	}
	vec, err := m.Embed(ctx, text)
	if err != nil {
		return err
	}
	content, meta, err := rowColumns(text, metadata, store)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, upsertSQL, collectionID, id, vector.Encode(vec), content, meta)
	return err
}

// EmbedMulti embeds many items in model-sized batches. It is the plain
// (id, text) form of EmbedMultiWithMetadata and shares its semantics; any
// Metadata set on the items is stored as well.
func (c *Collection) EmbedMulti(ctx context.Context, items []Item, store bool) error {
	return c.EmbedMultiWithMetadata(ctx, items, store)
}

// EmbedMultiWithMetadata embeds items in chunks of at most
// min(MaxBatchSize, model preference) texts, one model call and one write
// transaction per chunk. Vectors returned by the model are zipped back
// against the items by position, which is why Model.EmbedBatch must preserve
// input order.
//
// Each chunk either lands completely or not at all. A failure mid-stream
// leaves earlier chunks committed and abandons the rest; there is no
// cross-chunk atomicity and no retry.
func (c *Collection) EmbedMultiWithMetadata(ctx context.Context, items []Item, store bool) error {
	if len(items) == 0 {
		return nil
	}
	collectionID, err := c.ID(ctx)
	if err != nil {
		return err
	}
	m, err := c.Model()
	if err != nil {
		return err
	}
	batchSize := MaxBatchSize
	if preferred := m.BatchSize(); preferred > 0 && preferred < batchSize {
		batchSize = preferred
	}
	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))
		if err := c.embedBatch(ctx, m, collectionID, items[start:end], store); err != nil {
			return err
		}
	}
	return nil
}

// embedBatch embeds one chunk with a single model call and lands all its
// rows in one transaction.
func (c *Collection) embedBatch(ctx context.Context, m embedding.Model, collectionID int64, batch []Item, store bool) error {
	texts := make([]string, len(batch))
	for i, item := range batch {
		texts[i] = item.Text
	}
	vecs, err := m.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(vecs) != len(batch) {
		return fmt.Errorf("collection: model %q returned %d vectors for %d texts",
			m.ModelID(), len(vecs), len(batch))
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, item := range batch {
		content, meta, err := rowColumns(item.Text, item.Metadata, store)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, collectionID, item.ID, vector.Encode(vecs[i]), content, meta); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.logger.Debug("batch stored", "collection", c.name, "items", len(batch))
	return nil
}

// rowColumns produces the nullable content and metadata column values for
// one row.
func rowColumns(text string, metadata map[string]any, store bool) (content, meta any, err error) {
	if store {
		content = text
	}
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return nil, nil, fmt.Errorf("collection: marshal metadata: %w", err)
		}
		meta = string(b)
	}
	return content, meta, nil
}
