package collection

import "errors"

var (
	// ErrConfig marks collection configuration mistakes: a supplied model and
	// model id that disagree, or no way to resolve a model at all. Returned
	// before any storage access.
	ErrConfig = errors.New("collection: invalid configuration")

	// ErrNotFound is returned by SimilarByID when the pivot id is not stored
	// in the collection.
	ErrNotFound = errors.New("collection: id not found")
)
