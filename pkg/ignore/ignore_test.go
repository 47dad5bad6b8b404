package ignore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "ignore.yaml"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore.yaml")

	ignored := Ignored{}
	ignored.Update("der Wal")
	ignored.Update("wissen")
	require.NoError(t, ignored.Write(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, got.Contains("der Wal"))
	assert.True(t, got.Contains("wissen"))
	assert.False(t, got.Contains("das Meer"))
}
