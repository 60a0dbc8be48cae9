// Package embedding defines the embedding-model contract consumed by the
// collection store, plus a small in-process registry for resolving models by
// identifier. The store itself never talks to a provider directly; anything
// that can turn text into float32 vectors (OpenAI, a local model, a test
// fake) plugs in behind the Model interface.
package embedding
