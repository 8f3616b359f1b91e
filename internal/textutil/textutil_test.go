package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageKey(t *testing.T) {
	assert.Equal(t, "menu\x04Foo", MessageKey("menu", "Foo"))
	assert.NotEqual(t, MessageKey("", "a\x04b"), MessageKey("a", "b"))
}

func TestHash(t *testing.T) {
	assert.Len(t, Hash("Foo"), 64)
	assert.Equal(t, Hash("Foo"), Hash("Foo"))
	assert.NotEqual(t, Hash("Foo"), Hash("Bar"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "lon...", Truncate("long enough", 3))
}
