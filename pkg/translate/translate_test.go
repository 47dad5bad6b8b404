package translate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "translations.yaml"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.yaml")

	dict := Translations{}
	dict.Update("der Wal", "whale")
	dict.Update("wissen", "to know")
	require.NoError(t, dict.Write(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dict, got)

	translation, ok := got.Lookup("der Wal")
	require.True(t, ok)
	assert.Equal(t, "whale", translation)

	_, ok = got.Lookup("das Meer")
	assert.False(t, ok)
}
