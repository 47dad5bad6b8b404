package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheAddAndLookup(t *testing.T) {
	c := NewCache(t.TempDir())

	_, ok := c.Lookup("Was bedeutet Wal?")
	assert.False(t, ok)

	c.Add("Was bedeutet Wal?", "Der Wal ist ein Meeressäuger.")

	got, ok := c.Lookup("Was bedeutet Wal?")
	require.True(t, ok)
	assert.Equal(t, "Der Wal ist ein Meeressäuger.", got)

	_, ok = c.Lookup("Was bedeutet Hund?")
	assert.False(t, ok)
}

func TestCachePicksUpExistingFiles(t *testing.T) {
	dir := t.TempDir()

	c := NewCache(dir)
	c.Add("Was ist der Dativ?", "Der Dativ markiert das indirekte Objekt.")

	reopened := NewCache(dir)
	got, ok := reopened.Lookup("Was ist der Dativ?")
	require.True(t, ok)
	assert.Equal(t, "Der Dativ markiert das indirekte Objekt.", got)
}
