package engine

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver and makes
// the vec_cosine/vec_l2 scalar functions available on its connections.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:".
//
// The connection pool is pinned to a single connection: with this driver
// every new connection to an in-memory DSN would see its own fresh database,
// and SQLite allows only one writer at a time regardless.
func Open(dsn string) (*sql.DB, error) {
	RegisterVectorFunctions()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
