package gemini

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

const tutorInstruction = `You are a helpful German Language Tutor. Your primary goal is to help me learn
and expand my personal German notes knowledge base. You have to explain all
grammar and vocabulary in English.

When I ask a question:
1.  Use your own general knowledge to answer me in English.
2.  **CRITICAL:** After your complete answer, identify ALL new vocabulary words.
    - Proposals MUST appear at the END of your response, after your answer.
    - Add Präsens, Präteritum and Partizip II for verbs
    - Add gender, and plural for nouns
    - If any explanation is needed, add before examples
    - Add examples for each item
    - **CONSTRAINT**: You MUST NOT prepare a proposal for grammar rules, only make explanations for grammar rules in the answer.
3.  You MUST create a separate proposal for EACH new item.
4.  You MUST format EACH proposal on its OWN new line, starting
    with the exact tag "[PROPOSED_NOTE]:".
5.  **IMPORTANT:** All proposals MUST be formatted in proper Markdown syntax:
    - Use ` + "`**bold**`" + ` for German words and grammar terms
    - Use ` + "`*italic*`" + ` for examples and emphasis
    - Use proper markdown lists with ` + "`-`" + ` or ` + "`*`" + `

Example of a correct response with multiple proposals in Markdown:
<The answer to the user's question>

[PROPOSED_NOTE]:
- **die Ankunft** (fem.): arrival
- Example: *Die Ankunft des Zuges ist um 14:30 Uhr.*

[PROPOSED_NOTE]:
- **wissen** (reg. verb): to know
- Conjugation (present tense):
    - ich weiß
    - du weißt
    - er/sie/es weiß
    - wir wissen
    - ihr wisst
    - sie/Sie wissen
- Past tense (Präteritum): wusste
- Partizip II: gewusst
- Example: *Ich weiß die Antwort.*
`

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type request struct {
	SystemInstruction content   `json:"system_instruction"`
	Contents          []content `json:"contents"`
}

type response struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	endpoint string
	apiKey   string
	model    string
	cache    *Cache
}

func NewClient(apiKey string, cache *Cache) (*Client, error) {
	if cache == nil {
		return nil, errors.New("cache must not be nil")
	}
	return &Client{
		endpoint: "https://generativelanguage.googleapis.com/v1beta/models",
		apiKey:   apiKey,
		model:    "gemini-2.5-flash",
		cache:    cache,
	}, nil
}

// Ask sends a question to the tutor model and returns the raw answer text,
// which may embed note proposals behind the proposal marker.
func (c *Client) Ask(question string) (string, error) {
	return c.fetch(question, 3)
}

// implements a very simple retry. the api sometimes is unavailable or
// returns an empty candidate list; sub-sequent requests might succeed so we
// naively try `retryCount` times with exponential backoff.
func (c *Client) fetch(query string, retryCount int) (string, error) {
	slog.Info("lookup", "query", query)

	if text, ok := c.cache.Lookup(query); ok {
		slog.Debug("found in cache", "query", query)
		return text, nil
	}
	slog.Debug("not found in cache", "query", query)

	payload := request{
		SystemInstruction: content{
			Parts: []part{{Text: tutorInstruction}},
		},
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: query}},
			},
		},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("could not marshal request payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= retryCount; attempt++ {
		text, err := c.send(jsonPayload)
		if err == nil {
			c.cache.Add(query, text)
			return text, nil
		}
		lastErr = err
		wait := time.Duration(1<<attempt) * time.Second
		slog.Error("fetch from gemini api", "attempt", attempt, "wait", wait, "error", err)
		if attempt < retryCount {
			time.Sleep(wait)
		}
	}
	return "", fmt.Errorf("exceeded retries for query %q: %w", query, lastErr)
}

func (c *Client) send(jsonPayload []byte) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if result.Error.Code != 0 {
		return "", fmt.Errorf("api error %d: %s", result.Error.Code, result.Error.Message)
	}
	if len(result.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return "", errors.New("empty response from the model")
	}
	return text.String(), nil
}
