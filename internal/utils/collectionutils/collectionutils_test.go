package collectionutils

import (
	"reflect"
	"testing"
)

type pair struct {
	key   string
	value int
}

func TestGroupBy(t *testing.T) {
	items := []pair{{"a", 1}, {"b", 2}, {"a", 3}}
	got := GroupBy(items, func(p pair) string { return p.key })

	if len(got["a"]) != 2 || got["a"][1].value != 3 {
		t.Fatalf("unexpected group a: %v", got["a"])
	}
	if len(got["b"]) != 1 {
		t.Fatalf("unexpected group b: %v", got["b"])
	}
}

func TestGetOrDefault(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}

	if GetOrDefault(m, "b", 0) != 2 {
		t.Fatalf("expected 2 for b")
	}
	if GetOrDefault(m, "z", -1) != -1 {
		t.Fatalf("expected default for missing key")
	}
}

func TestDistinctBy(t *testing.T) {
	items := []pair{{"a", 1}, {"b", 2}, {"a", 3}, {"c", 4}, {"b", 5}}
	got := DistinctBy(items, func(p pair) string { return p.key })

	want := []pair{{"a", 1}, {"b", 2}, {"c", 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
