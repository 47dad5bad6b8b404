package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbngrm/de-anki/pkg/anki"
	"github.com/fbngrm/de-anki/pkg/audio"
	"github.com/fbngrm/de-anki/pkg/store"
	"github.com/fbngrm/de-anki/pkg/template"
)

var notesFile string
var outFile string
var tags string
var withAudio bool

// rescans the notes file and rewrites the csv export from scratch.
func main() {
	flag.StringVar(&notesFile, "n", "my_german_notes.md", "notes file")
	flag.StringVar(&outFile, "o", "anki_cards.csv", "csv export file")
	flag.StringVar(&tags, "t", "", "comma separated list of anki tags")
	flag.BoolVar(&withAudio, "a", false, "fetch audio for exported cards")
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

	var audioDownloader *audio.Downloader
	if withAudio {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
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

	all, err := notes.Scan()
	if err != nil {
		fmt.Printf("could not scan notes file: %v\n", err)
		os.Exit(1)
	}
	written, err := exporter.ExportAll(all)
	if err != nil {
		fmt.Printf("could not export cards: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d card(s) from %s to %s.\n", written, notesFile, outFile)
}
