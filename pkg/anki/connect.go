package anki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const DefaultConnectURL = "http://127.0.0.1:8765"

// ConnectClient talks to the AnkiConnect add-on of a locally running Anki.
type ConnectClient struct {
	URL string
}

// connectRequest represents the request body for AnkiConnect.
type connectRequest struct {
	Action  string      `json:"action"`
	Version int         `json:"version"`
	Params  interface{} `json:"params,omitempty"`
}

// connectResponse represents the response body from AnkiConnect.
type connectResponse struct {
	Result interface{} `json:"result"`
	Error  string      `json:"error"`
}

// NoteInfo is the subset of notesInfo data needed for duplicate handling.
type NoteInfo struct {
	NoteID int64 `json:"noteId"`
	Fields map[string]struct {
		Value string `json:"value"`
	} `json:"fields"`
}

// CardInfo is the subset of cardsInfo data needed for review listings.
type CardInfo struct {
	CardID    int64  `json:"cardId"`
	ModelName string `json:"modelName"`
	Fields    map[string]struct {
		Value string `json:"value"`
	} `json:"fields"`
}

// DeckStats is the per-deck counter set returned by getDeckStats.
type DeckStats struct {
	Name        string `json:"name"`
	NewCount    int    `json:"new_count"`
	LearnCount  int    `json:"learn_count"`
	ReviewCount int    `json:"review_count"`
	TotalInDeck int    `json:"total_in_deck"`
}

func NewConnectClient(url string) *ConnectClient {
	if url == "" {
		url = DefaultConnectURL
	}
	return &ConnectClient{URL: url}
}

func (c *ConnectClient) DeckNames() ([]string, error) {
	result, err := c.invoke("deckNames", nil)
	if err != nil {
		return nil, err
	}
	raw, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format for deckNames: %v", result)
	}
	var names []string
	for _, n := range raw {
		names = append(names, n.(string))
	}
	return names, nil
}

func (c *ConnectClient) CreateDeck(name string) error {
	_, err := c.invoke("createDeck", map[string]string{"deck": name})
	return err
}

func (c *ConnectClient) FindNotes(query string) ([]int64, error) {
	result, err := c.invoke("findNotes", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	raw, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format for findNotes: %v", result)
	}
	var ids []int64
	for _, id := range raw {
		ids = append(ids, int64(id.(float64)))
	}
	return ids, nil
}

func (c *ConnectClient) FindCards(query string) ([]int64, error) {
	result, err := c.invoke("findCards", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	raw, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format for findCards: %v", result)
	}
	var ids []int64
	for _, id := range raw {
		ids = append(ids, int64(id.(float64)))
	}
	return ids, nil
}

func (c *ConnectClient) CardsInfo(ids []int64) ([]CardInfo, error) {
	result, err := c.invoke("cardsInfo", map[string][]int64{"cards": ids})
	if err != nil {
		return nil, err
	}
	raw, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format for cardsInfo: %v", result)
	}
	var cards []CardInfo
	for _, r := range raw {
		var card CardInfo
		data, _ := json.Marshal(r)
		if err := json.Unmarshal(data, &card); err != nil {
			return nil, fmt.Errorf("unmarshal card info: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// GetDeckStats returns the counters for the given decks, keyed by deck name.
func (c *ConnectClient) GetDeckStats(decks []string) (map[string]DeckStats, error) {
	result, err := c.invoke("getDeckStats", map[string][]string{"decks": decks})
	if err != nil {
		return nil, err
	}
	raw, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format for getDeckStats: %v", result)
	}
	stats := make(map[string]DeckStats, len(raw))
	for _, r := range raw {
		var s DeckStats
		data, _ := json.Marshal(r)
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("unmarshal deck stats: %w", err)
		}
		stats[s.Name] = s
	}
	return stats, nil
}

func (c *ConnectClient) NotesInfo(ids []int64) ([]NoteInfo, error) {
	result, err := c.invoke("notesInfo", map[string][]int64{"notes": ids})
	if err != nil {
		return nil, err
	}
	raw, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format for notesInfo: %v", result)
	}
	var notes []NoteInfo
	for _, r := range raw {
		var n NoteInfo
		data, _ := json.Marshal(r)
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("unmarshal note info: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (c *ConnectClient) AddNote(deck, model, front, back string, tags []string) (int64, error) {
	params := map[string]interface{}{
		"note": map[string]interface{}{
			"deckName":  deck,
			"modelName": model,
			"fields":    map[string]string{"Front": front, "Back": back},
			"options":   map[string]bool{"allowDuplicate": false},
			"tags":      tags,
		},
	}
	result, err := c.invoke("addNote", params)
	if err != nil {
		return 0, err
	}
	id, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected result format for addNote: %v", result)
	}
	return int64(id), nil
}

func (c *ConnectClient) UpdateNoteFields(id int64, front, back string) error {
	params := map[string]interface{}{
		"note": map[string]interface{}{
			"id":     id,
			"fields": map[string]string{"Front": front, "Back": back},
		},
	}
	_, err := c.invoke("updateNoteFields", params)
	return err
}

// invoke sends an HTTP POST request to AnkiConnect and unwraps the result.
func (c *ConnectClient) invoke(action string, params interface{}) (interface{}, error) {
	body := connectRequest{
		Action:  action,
		Version: 6,
		Params:  params,
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", action, err)
	}

	resp, err := http.Post(c.URL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("send %s request to AnkiConnect: %w", action, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", action, err)
	}

	var response connectResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", action, err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("AnkiConnect %s: %s", action, response.Error)
	}
	return response.Result, nil
}
