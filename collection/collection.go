package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/embedkit/sqlite-embed/embedding"
	"github.com/embedkit/sqlite-embed/engine"
)

// MaxBatchSize caps how many texts are embedded and inserted per batch,
// regardless of the model's own preference.
const MaxBatchSize = 100

// Collection is a named bucket of embedded items sharing one embedding
// model. The value can exist before any row does; the surrogate key is
// resolved lazily by the first operation that needs it and never changes
// afterwards. Resolution is guarded by a mutex, so a single Collection is
// safe to share between goroutines as long as the underlying *sql.DB is.
type Collection struct {
	db     *sql.DB
	name   string
	model  embedding.Model
	lookup embedding.Lookup
	logger *slog.Logger

	mu       sync.Mutex
	modelID  string
	resolved bool
	id       int64
}

// Option configures a Collection at construction time.
type Option func(*Collection)

// WithModel supplies the embedding model directly. It takes precedence over
// any id-based lookup.
func WithModel(m embedding.Model) Option {
	return func(c *Collection) { c.model = m }
}

// WithModelID names the embedding model by identifier; resolution goes
// through the Lookup supplied with WithLookup. When the collection already
// exists in storage, the identifier recorded there wins over none at all: a
// collection opened without any model configuration adopts the stored one.
func WithModelID(id string) Option {
	return func(c *Collection) { c.modelID = id }
}

// WithLookup injects the registry used to resolve model identifiers.
func WithLookup(l embedding.Lookup) Option {
	return func(c *Collection) { c.lookup = l }
}

// WithLogger attaches a structured logger. Logging is off by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collection) { c.logger = l }
}

// New returns a Collection bound to db under the given name. No storage
// access happens here; the backing row is resolved or created lazily.
//
// db should come from engine.Open (or RegisterVectorFunctions must have been
// called before the pool opened its connections) so the vec_cosine SQL
// function is available to the similarity queries.
//
// Supplying both a model and a model id whose identifiers disagree is a
// configuration error: the id cannot silently override the model, or vice
// versa.
func New(db *sql.DB, name string, opts ...Option) (*Collection, error) {
	c := &Collection{db: db, name: name, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(c)
	}
	if c.db == nil {
		return nil, fmt.Errorf("%w: db is nil", ErrConfig)
	}
	if c.name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrConfig)
	}
	if c.model != nil && c.modelID != "" && c.model.ModelID() != c.modelID {
		return nil, fmt.Errorf("%w: model_id %q does not match model %q",
			ErrConfig, c.modelID, c.model.ModelID())
	}
	engine.RegisterVectorFunctions()
	return c, nil
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Model returns the embedding model for this collection. A model supplied
// via WithModel is returned as-is; otherwise the model id (given explicitly
// or adopted from storage during resolution) is resolved through the
// injected Lookup on every call.
func (c *Collection) Model() (embedding.Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelLocked()
}

func (c *Collection) modelLocked() (embedding.Model, error) {
	if c.model != nil {
		return c.model, nil
	}
	if c.modelID == "" {
		return nil, fmt.Errorf("%w: no embedding model specified", ErrConfig)
	}
	if c.lookup == nil {
		return nil, fmt.Errorf("%w: model %q needs a lookup, see WithLookup", ErrConfig, c.modelID)
	}
	m, err := c.lookup.Lookup(c.modelID)
	if err != nil {
		return nil, fmt.Errorf("%w: model %q not found: %w", ErrConfig, c.modelID, err)
	}
	return m, nil
}

// ID returns the collection's surrogate key, resolving it on first use:
// either the stored row with this name is read, or a new row is created with
// the resolved model's identifier. The result is cached for the lifetime of
// the Collection; at most one insert into collections happens no matter how
// often ID is called. When an existing row is found and no model id was
// configured, the stored identifier is adopted, so an opened collection
// defers to its recorded history rather than the caller's guess.
func (c *Collection) ID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved {
		return c.id, nil
	}
	if err := EnsureSchema(ctx, c.db); err != nil {
		return 0, err
	}

	var (
		id    int64
		model sql.NullString
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT id, model FROM collections WHERE name = ?`, c.name).Scan(&id, &model)
	switch {
	case err == nil:
		if c.modelID == "" && model.Valid {
			c.modelID = model.String
		}
		c.id, c.resolved = id, true
		c.logger.Debug("collection resolved", "name", c.name, "id", id)
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		// fall through and create it
	default:
		return 0, err
	}

	m, err := c.modelLocked()
	if err != nil {
		return 0, err
	}
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO collections(name, model) VALUES(?, ?)`, c.name, m.ModelID())
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}
	c.id, c.resolved = id, true
	c.modelID = m.ModelID()
	c.logger.Debug("collection created", "name", c.name, "id", id, "model", m.ModelID())
	return id, nil
}

// Exists reports whether a collection row with this name is present in
// storage. It never creates anything; on a database where the schema has not
// been set up yet it simply reports false.
func (c *Collection) Exists(ctx context.Context) (bool, error) {
	var one int
	err := c.db.QueryRowContext(ctx,
		`SELECT 1 FROM collections WHERE name = ?`, c.name).Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows), isMissingTable(err):
		return false, nil
	default:
		return false, err
	}
}

// Count returns the number of items stored under this collection's name. The
// count goes through a subquery on the live name rather than the cached id,
// so it reflects current storage state.
func (c *Collection) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM embeddings WHERE collection_id = (
    SELECT id FROM collections WHERE name = ?
)`
	var n int64
	if err := c.db.QueryRowContext(ctx, q, c.name).Scan(&n); err != nil {
		if isMissingTable(err) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
