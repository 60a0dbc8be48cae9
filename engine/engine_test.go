package engine

import "testing"

func TestOpenInMemory(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE t(x INTEGER)`); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO t(x) VALUES(1)`); err != nil {
		t.Fatalf("INSERT failed: %v", err)
	}
	var x int
	if err := db.QueryRow(`SELECT x FROM t`).Scan(&x); err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if x != 1 {
		t.Fatalf("x = %d, want 1", x)
	}
}
