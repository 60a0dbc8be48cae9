// Package collection implements a small embedding store over two SQLite
// tables. A Collection is a named bucket of (id, vector) records sharing one
// embedding model: texts go in through the embed operations, which compute
// vectors via the model and persist them in per-batch transactions, and
// nearest neighbors come back out through the similarity queries, which score
// every stored vector against the query with the vec_cosine SQL function and
// order by score.
//
// The collection row itself is created lazily: a Collection value can exist
// before anything is stored, and the first operation that needs the surrogate
// key resolves or creates the row.
//
// Search is intentionally exhaustive: every row in the collection is decoded
// and scored per query. There is no index.
package collection
