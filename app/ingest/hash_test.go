package ingest

import (
	"testing"
)

func TestDedupHashStable(t *testing.T) {
	a := DedupHash("https://x/1", "Title")
	b := DedupHash("https://x/1", "Title")
	if a != b {
		t.Error("same input should hash identically")
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256, got %d chars", len(a))
	}
}

func TestDedupHashDistinguishesItems(t *testing.T) {
	a := DedupHash("https://x/1", "Title")
	b := DedupHash("https://x/2", "Title")
	c := DedupHash("https://x/1", "Other")
	if a == b || a == c {
		t.Error("different link or title should change the hash")
	}
}

func TestDedupHashNormalizes(t *testing.T) {
	a := DedupHash("https://x/1", "Breaking  News")
	b := DedupHash("https://x/1", " breaking news ")
	if a != b {
		t.Error("case and whitespace variants should hash identically")
	}
}
