package stringutils

import "testing"

func TestInClause(t *testing.T) {
	placeholders, args := InClause([]string{"a", "b", "c"})
	if placeholders != "?, ?, ?" {
		t.Fatalf("unexpected placeholders %q", placeholders)
	}
	if len(args) != 3 || args[0] != "a" || args[2] != "c" {
		t.Fatalf("unexpected args %v", args)
	}

	placeholders, args = InClause([]int64{})
	if placeholders != "" || len(args) != 0 {
		t.Fatalf("expected empty clause, got %q %v", placeholders, args)
	}
}
