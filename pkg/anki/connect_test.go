package anki

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConnect serves a canned AnkiConnect response and records the request.
func fakeConnect(t *testing.T, result interface{}, errMsg string) (*ConnectClient, *connectRequest) {
	t.Helper()
	var got connectRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"result": result,
			"error":  errMsg,
		}))
	}))
	t.Cleanup(srv.Close)
	return NewConnectClient(srv.URL), &got
}

func TestDeckNames(t *testing.T) {
	c, req := fakeConnect(t, []string{"Default", "German"}, "")

	names, err := c.DeckNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "German"}, names)
	assert.Equal(t, "deckNames", req.Action)
	assert.Equal(t, 6, req.Version)
}

func TestCreateDeck(t *testing.T) {
	c, req := fakeConnect(t, nil, "")

	require.NoError(t, c.CreateDeck("German"))
	assert.Equal(t, "createDeck", req.Action)
	assert.Equal(t, map[string]interface{}{"deck": "German"}, req.Params)
}

func TestFindNotes(t *testing.T) {
	c, req := fakeConnect(t, []int64{1501, 1502}, "")

	ids, err := c.FindNotes(`deck:"German"`)
	require.NoError(t, err)
	assert.Equal(t, []int64{1501, 1502}, ids)
	assert.Equal(t, "findNotes", req.Action)
	assert.Equal(t, map[string]interface{}{"query": `deck:"German"`}, req.Params)
}

func TestNotesInfo(t *testing.T) {
	c, _ := fakeConnect(t, []map[string]interface{}{
		{
			"noteId": 1501,
			"fields": map[string]interface{}{
				"Front": map[string]interface{}{"value": "der Wal"},
				"Back":  map[string]interface{}{"value": "(masc.): whale"},
			},
		},
	}, "")

	notes, err := c.NotesInfo([]int64{1501})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1501), notes[0].NoteID)
	assert.Equal(t, "der Wal", notes[0].Fields["Front"].Value)
}

func TestAddNote(t *testing.T) {
	c, req := fakeConnect(t, 1503, "")

	id, err := c.AddNote("German", "Basic", "wissen", "to know", []string{"german_tutor"})
	require.NoError(t, err)
	assert.Equal(t, int64(1503), id)
	assert.Equal(t, "addNote", req.Action)

	note := req.Params.(map[string]interface{})["note"].(map[string]interface{})
	assert.Equal(t, "German", note["deckName"])
	assert.Equal(t, "Basic", note["modelName"])
}

func TestUpdateNoteFields(t *testing.T) {
	c, req := fakeConnect(t, nil, "")

	require.NoError(t, c.UpdateNoteFields(1501, "der Wal", "(masc.): whale"))
	assert.Equal(t, "updateNoteFields", req.Action)
}

func TestConnectErrorIsSurfaced(t *testing.T) {
	c, _ := fakeConnect(t, nil, "deck was not found")

	err := c.CreateDeck("Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deck was not found")
}
