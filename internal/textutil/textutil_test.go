package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	a := Hash([]byte("// brush 0"))
	b := Hash([]byte("// brush 0"))
	c := Hash([]byte("// brush 1"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	// Known vector: sha256 of the empty input.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Hash(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))

	long := strings.Repeat("maps/", 50) + "e1m1.map"
	got := Truncate(long, 120)
	assert.Len(t, got, 123)
	assert.True(t, strings.HasSuffix(got, "..."))
}
