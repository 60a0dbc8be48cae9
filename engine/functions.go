package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/embedkit/sqlite-embed/vector"
)

var registerOnce sync.Once

// RegisterVectorFunctions registers vec_cosine and vec_l2 with the driver so
// they are available inside SQL, including ORDER BY expressions:
//
//	SELECT id, vec_cosine(embedding, ?) AS score FROM embeddings
//	ORDER BY score DESC LIMIT 10
//
// Both take two embedding BLOBs; the query vector is passed as a bound
// argument, so one process-wide registration serves every query. Only
// connections opened after this call see the functions; Open takes care of
// the ordering.
func RegisterVectorFunctions() {
	registerOnce.Do(func() {
		_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosineImpl)
		_ = sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, vecL2Impl)
	})
}

func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.Decode(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := twoEmbeddings("vec_cosine", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	return vector.CosineSimilarity(a, b)
}

func vecL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := twoEmbeddings("vec_l2", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	return vector.L2Distance(a, b)
}

func twoEmbeddings(fn string, args []driver.Value) ([]float32, []float32, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", fn, len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
