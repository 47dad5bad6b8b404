package gemini

import (
	"os"
	"path/filepath"

	"github.com/fbngrm/de-anki/pkg/hash"
	"golang.org/x/exp/slog"
)

// Cache stores raw model responses on disk, keyed by the sha1 of the
// question, so repeating a question does not hit the api again.
type Cache struct {
	dir   string
	index map[string]struct{}
}

func NewCache(dir string) *Cache {
	return &Cache{
		dir:   dir,
		index: read(dir),
	}
}

func (c *Cache) Lookup(key string) (string, bool) {
	filename := hash.Sha1(key) + ".md"
	if _, ok := c.index[filename]; !ok {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(c.dir, filename))
	if err != nil {
		slog.Error("read cache file", "file", filename, "error", err)
		return "", false
	}
	return string(data), true
}

func (c *Cache) Add(key, val string) {
	filename := hash.Sha1(key) + ".md"
	if err := os.MkdirAll(c.dir, os.ModePerm); err != nil {
		slog.Error("create cache dir", "dir", c.dir, "error", err)
		return
	}
	if err := os.WriteFile(filepath.Join(c.dir, filename), []byte(val), 0644); err != nil {
		slog.Error("write cache file", "file", filename, "error", err)
		return
	}
	c.index[filename] = struct{}{}
}

func read(dir string) map[string]struct{} {
	filenames := make(map[string]struct{})
	files, err := os.ReadDir(dir)
	if err != nil {
		return filenames
	}
	for _, file := range files {
		filenames[file.Name()] = struct{}{}
	}
	return filenames
}
