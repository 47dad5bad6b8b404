package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fbngrm/de-anki/pkg/anki"
	"github.com/fbngrm/de-anki/pkg/note"
	"github.com/fbngrm/de-anki/pkg/store"
	"github.com/fbngrm/de-anki/pkg/template"
)

var notesFile string
var deck string
var model string
var tags string
var connectURL string

// pushes all notes from the notes file into a running Anki via AnkiConnect.
// Existing fronts are updated in place, everything else is added as a new
// note. The deck is created when missing.
func main() {
	flag.StringVar(&notesFile, "n", "my_german_notes.md", "notes file")
	flag.StringVar(&deck, "d", "Default", "anki deck name")
	flag.StringVar(&model, "m", "Basic", "anki note model")
	flag.StringVar(&tags, "t", "", "comma separated list of anki tags")
	flag.StringVar(&connectURL, "u", anki.DefaultConnectURL, "AnkiConnect url")
	flag.Parse()

	var tagList []string
	if len(tags) > 0 {
		tagList = strings.Split(tags, ",")
	}
	tagList = append(tagList, "german_tutor")

	tmplProcessor, err := template.NewProcessor()
	if err != nil {
		fmt.Printf("could not init templates: %v\n", err)
		os.Exit(1)
	}

	notes := &store.Store{
		NotesPath:     notesFile,
		TmplProcessor: tmplProcessor,
	}
	all, err := notes.Scan()
	if err != nil {
		fmt.Printf("could not scan notes file: %v\n", err)
		os.Exit(1)
	}

	exporter := &anki.Exporter{
		Tags:          tagList,
		TmplProcessor: tmplProcessor,
	}

	client := anki.NewConnectClient(connectURL)
	ensureDeckExists(client, deck)
	existing := loadExistingFronts(client, deck)

	added, updated := 0, 0
	for _, n := range all {
		if n.NoteKind() == note.KindGrammar {
			continue
		}
		front, back, err := exporter.Card(n)
		if err != nil {
			fmt.Printf("could not render card for %q: %v\n", n.Front(), err)
			continue
		}

		if id, ok := existing[front]; ok {
			if err := client.UpdateNoteFields(id, front, back); err != nil {
				fmt.Printf("could not update note %q: %v\n", front, err)
				continue
			}
			updated++
			continue
		}

		id, err := client.AddNote(deck, model, front, back, tagList)
		if err != nil {
			fmt.Printf("could not add note %q: %v\n", front, err)
			continue
		}
		existing[front] = id
		added++
	}
	fmt.Printf("Pushed notes to deck %q: %d added, %d updated.\n", deck, added, updated)
}

func ensureDeckExists(client *anki.ConnectClient, deck string) {
	decks, err := client.DeckNames()
	if err != nil {
		fmt.Printf("could not list decks, make sure Anki is running and AnkiConnect is installed: %v\n", err)
		os.Exit(1)
	}
	for _, d := range decks {
		if d == deck {
			return
		}
	}
	fmt.Printf("Deck %q not found. Creating it...\n", deck)
	if err := client.CreateDeck(deck); err != nil {
		fmt.Printf("could not create deck: %v\n", err)
		os.Exit(1)
	}
}

// loadExistingFronts maps card fronts in the deck to their note ids so
// duplicates can be updated instead of re-added.
func loadExistingFronts(client *anki.ConnectClient, deck string) map[string]int64 {
	existing := make(map[string]int64)

	ids, err := client.FindNotes(fmt.Sprintf("deck:%q", deck))
	if err != nil {
		fmt.Printf("could not find notes in deck: %v\n", err)
		return existing
	}
	if len(ids) == 0 {
		return existing
	}

	// chunk requests to avoid AnkiConnect timeouts
	const chunkSize = 100
	for i := 0; i < len(ids); i += chunkSize {
		end := i + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		infos, err := client.NotesInfo(ids[i:end])
		if err != nil {
			fmt.Printf("could not fetch note info: %v\n", err)
			continue
		}
		for _, info := range infos {
			front := strings.TrimSpace(info.Fields["Front"].Value)
			if front != "" {
				existing[front] = info.NoteID
			}
		}
	}
	return existing
}
