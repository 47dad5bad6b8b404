package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/chzyer/readline"
	"github.com/joho/godotenv"

	"github.com/fbngrm/de-anki/pkg/anki"
	"github.com/fbngrm/de-anki/pkg/audio"
	"github.com/fbngrm/de-anki/pkg/gemini"
	ignore_dict "github.com/fbngrm/de-anki/pkg/ignore"
	"github.com/fbngrm/de-anki/pkg/note"
	"github.com/fbngrm/de-anki/pkg/store"
	"github.com/fbngrm/de-anki/pkg/template"
	"github.com/fbngrm/de-anki/pkg/translate"
)

var notesFile string
var outFile string
var tags string
var tagList []string
var withAudio bool

func main() {
	// optional .env file, the environment wins
	_ = godotenv.Load()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("Environment variable GEMINI_API_KEY is not set")
	}

	flag.StringVar(&notesFile, "n", "my_german_notes.md", "notes file")
	flag.StringVar(&outFile, "o", "anki_cards.csv", "csv export file")
	flag.StringVar(&tags, "t", "", "comma separated list of anki tags")
	flag.BoolVar(&withAudio, "a", false, "fetch audio for exported cards")
	flag.Parse()

	if strings.Contains(tags, ",") {
		tagList = strings.Split(tags, ",")
	} else if len(tags) > 0 {
		tagList = append(tagList, tags)
	}
	tagList = append(tagList, "german_tutor")

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	tmplProcessor, err := template.NewProcessor()
	if err != nil {
		fmt.Printf("could not init templates: %v\n", err)
		os.Exit(1)
	}

	notes := &store.Store{
		NotesPath:     notesFile,
		TmplProcessor: tmplProcessor,
	}

	ignorePath := filepath.Join(cwd, "data", "ignore")
	ignored, err := ignore_dict.Load(ignorePath)
	if err != nil {
		fmt.Printf("could not load ignore list: %v\n", err)
		os.Exit(1)
	}

	translationsPath := filepath.Join(cwd, "data", "translations")
	translations, err := translate.Load(translationsPath)
	if err != nil {
		fmt.Printf("could not load translations: %v\n", err)
		os.Exit(1)
	}

	var audioDownloader *audio.Downloader
	if withAudio {
		audioDownloader = &audio.Downloader{
			AudioDir: filepath.Join(cwd, "data", "audio"),
		}
	}

	exporter := &anki.Exporter{
		Tags:          tagList,
		OutPath:       outFile,
		TmplProcessor: tmplProcessor,
		Audio:         audioDownloader,
	}

	// we cache responses from the gemini api
	cacheDir := filepath.Join(cwd, "data", "cache")
	client, err := gemini.NewClient(apiKey, gemini.NewCache(cacheDir))
	if err != nil {
		fmt.Printf("could not init gemini client: %v\n", err)
		os.Exit(1)
	}

	headwords, err := notes.Headwords()
	if err != nil {
		fmt.Printf("could not scan notes file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d notes from %s.\n", len(headwords), notesFile)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Printf("could not init markdown renderer: %v\n", err)
		os.Exit(1)
	}

	rl, err := readline.New("\nYou: ")
	if err != nil {
		fmt.Printf("could not init prompt: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("\n--- German Tutor is Ready ---")
	fmt.Println("Ask me anything about German. Type 'export' to write the csv, 'quit' to exit.")
	fmt.Println("---------------------------------")

loop:
	for {
		rl.SetPrompt("\nYou: ")
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		question := strings.TrimSpace(line)
		switch strings.ToLower(question) {
		case "":
			continue
		case "quit", "exit":
			break loop
		case "export":
			export(notes, exporter)
			continue
		}

		resp, err := client.Ask(question)
		if err != nil {
			fmt.Printf("could not reach the tutor: %v\n", err)
			continue
		}

		answer, fragments := note.SplitAnswer(resp)
		render(renderer, answer)

		if len(fragments) == 0 {
			continue
		}

		var proposals []note.Note
		for _, f := range fragments {
			n, err := note.ParseBlock(f)
			if err != nil {
				continue
			}
			proposals = append(proposals, n)
		}
		if len(proposals) == 0 {
			continue
		}

		fmt.Println("---------------------------------")
		fmt.Printf("Tutor has %d new note proposal(s) for you:\n", len(proposals))

		saved := 0
		for i, n := range proposals {
			if ignored.Contains(n.Front()) {
				fmt.Printf("skipping ignored word: %s\n", n.Front())
				continue
			}
			n = fillTranslation(n, translations)

			title := fmt.Sprintf("Proposal %d of %d", i+1, len(proposals))
			if _, ok := headwords[n.Front()]; ok {
				title += " [EXISTING]"
			}
			fmt.Printf("\n--- %s ---\n", title)
			block, err := tmplProcessor.Fill(n, template.Name(n.NoteKind()))
			if err != nil {
				fmt.Printf("could not render proposal: %v\n", err)
				continue
			}
			render(renderer, block)

			if !confirm(rl, ignored, n.Front()) {
				continue
			}
			if err := notes.Append(n); err != nil {
				fmt.Printf("could not save note: %v\n", err)
				continue
			}
			headwords[n.Front()] = struct{}{}
			saved++
		}
		if saved > 0 {
			fmt.Printf("\nSaved %d new note(s) to %s!\n", saved, notesFile)
		}
	}

	if err := ignored.Write(ignorePath); err != nil {
		fmt.Printf("could not write ignore list: %v\n", err)
	}
	if err := translations.Write(translationsPath); err != nil {
		fmt.Printf("could not write translations: %v\n", err)
	}
	fmt.Println("\nAuf Wiedersehen!")
}

// confirm asks the user whether to save a proposal. 'i' declines permanently
// by putting the headword on the ignore list.
func confirm(rl *readline.Instance, ignored ignore_dict.Ignored, front string) bool {
	for {
		rl.SetPrompt("Save this note? (y/n/i): ")
		choice, err := rl.Readline()
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "y", "":
			return true
		case "n":
			return false
		case "i":
			ignored.Update(front)
			return false
		default:
			fmt.Println("Please enter 'y', 'n' or 'i'.")
		}
	}
}

// fillTranslation looks up a fallback translation for vocabulary proposals
// the model left without one.
func fillTranslation(n note.Note, t translate.Translations) note.Note {
	v, ok := n.(note.VocabularyNote)
	if !ok || v.Translation != "" {
		return n
	}
	if translation, ok := t.Lookup(v.Headword); ok {
		v.Translation = translation
		return v
	}
	translation, err := translate.Translate("en-US", v.Headword)
	if err != nil {
		fmt.Printf("could not translate word %q: %v\n", v.Headword, err)
		return n
	}
	t.Update(v.Headword, translation)
	v.Translation = translation
	return v
}

func export(notes *store.Store, exporter *anki.Exporter) {
	all, err := notes.Scan()
	if err != nil {
		fmt.Printf("could not scan notes file: %v\n", err)
		return
	}
	written, err := exporter.ExportAll(all)
	if err != nil {
		fmt.Printf("could not export cards: %v\n", err)
		return
	}
	fmt.Printf("Exported %d card(s) to %s.\n", written, exporter.OutPath)
}

func render(r *glamour.TermRenderer, markdown string) {
	out, err := r.Render(markdown)
	if err != nil {
		// fall back to the raw text, markdown is for humans anyway
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
