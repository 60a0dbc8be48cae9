// Package vector holds the embedding codec and similarity primitives shared
// by the rest of the module:
//   - Encode/Decode: packed little-endian float32 BLOB representation
//   - CosineSimilarity and L2Distance over float32 vectors
package vector
