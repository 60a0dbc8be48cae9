package embedding

import "context"

// Model converts text into fixed-length float vectors. All items stored in
// one collection are embedded with the same model, identified by ModelID.
type Model interface {
	// ModelID returns the stable identifier recorded alongside a collection.
	ModelID() string

	// Embed returns the embedding of a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds many texts in one call. Implementations MUST return
	// exactly one vector per input text, positionally aligned with the input
	// order; callers zip the result back against their inputs by position.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// BatchSize reports the model's preferred number of texts per EmbedBatch
	// call, or 0 when the model has no preference. Callers may batch more
	// conservatively but should not exceed it.
	BatchSize() int
}

// Lookup resolves a model identifier to a Model. It is injected into
// collections so that opening a stored collection can recover the model it
// was created with.
type Lookup interface {
	Lookup(id string) (Model, error)
}
