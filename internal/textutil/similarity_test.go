package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"polc", "polc", 0},
		{"tányér", "tanyer", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "Levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("shelf", "shelf"), 1e-9)
	assert.InDelta(t, 0.8, Similarity("shelf", "shelv"), 1e-9)
	assert.Less(t, Similarity("plate", "image"), 0.7)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "tányér szám", Fold("  TÁNYÉR SZÁM "))
	assert.Equal(t, "", Fold("   "))
	assert.Equal(t, "a b c", CollapseSpace("  a \t b\n c "))
}
