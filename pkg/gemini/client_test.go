package gemini

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		endpoint: srv.URL,
		apiKey:   "test-key",
		model:    "gemini-2.5-flash",
		cache:    NewCache(t.TempDir()),
	}
}

func TestAsk(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "Was bedeutet Wal?", req.Contents[0].Parts[0].Text)
		assert.NotEmpty(t, req.SystemInstruction.Parts[0].Text)

		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]string{
							{"text": "A whale. "},
							{"text": "Der Wal ist ein Meeressäuger."},
						},
					},
				},
			},
		}))
	})

	got, err := c.Ask("Was bedeutet Wal?")
	require.NoError(t, err)
	assert.Equal(t, "A whale. Der Wal ist ein Meeressäuger.", got)

	// the answer is cached, a repeated question must not hit the api again
	got, err = c.Ask("Was bedeutet Wal?")
	require.NoError(t, err)
	assert.Equal(t, "A whale. Der Wal ist ein Meeressäuger.", got)
	assert.Equal(t, 1, calls)
}

func TestFetchAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    429,
				"message": "quota exceeded",
			},
		}))
	})

	_, err := c.fetch("Was bedeutet Wal?", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestFetchEmptyCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []interface{}{},
		}))
	})

	_, err := c.fetch("Was bedeutet Wal?", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestNewClientRequiresCache(t *testing.T) {
	_, err := NewClient("key", nil)
	require.Error(t, err)
}
