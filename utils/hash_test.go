package utils

import "testing"

func TestHashString(t *testing.T) {
	first := HashString([]byte("payload"))
	second := HashString([]byte("payload"))
	if first != second {
		t.Fatal("hash is not deterministic")
	}
	if len(first) != 64 {
		t.Fatalf("unexpected hash length: %d", len(first))
	}
	if HashString([]byte("other")) == first {
		t.Fatal("different inputs hashed equal")
	}
}
