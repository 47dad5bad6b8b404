package anki

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/fbngrm/de-anki/pkg/audio"
	"github.com/fbngrm/de-anki/pkg/hash"
	"github.com/fbngrm/de-anki/pkg/note"
	"github.com/fbngrm/de-anki/pkg/template"
	"golang.org/x/exp/slog"
)

// Exporter turns notes into a semicolon-delimited CSV for Anki's file
// import. The CSV is always rewritten from scratch so repeated exports of an
// unchanged notes file produce identical output.
type Exporter struct {
	Tags          []string
	OutPath       string
	TmplProcessor *template.Processor
	// Audio fetches pronunciation for card fronts when set.
	Audio *audio.Downloader
}

// ExportAll rewrites the CSV with one front;back;tags row per vocabulary or
// verb note and returns the number of rows written. Grammar notes are
// explanations, not flashcards, and are skipped.
func (e *Exporter) ExportAll(notes []note.Note) (int, error) {
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		if n.NoteKind() == note.KindGrammar {
			slog.Debug("skip grammar note in export", "title", n.Front())
			continue
		}
		front, back, err := e.Card(n)
		if err != nil {
			slog.Warn("skip note in export", "front", n.Front(), "error", err)
			continue
		}
		rows = append(rows, []string{front, back, strings.Join(e.Tags, " ")})
	}

	f, err := os.Create(e.OutPath)
	if err != nil {
		return 0, fmt.Errorf("could not create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.WriteAll(rows); err != nil {
		return 0, fmt.Errorf("could not write export file: %w", err)
	}
	return len(rows), nil
}

// Card renders the note block and converts everything after the headword
// into the Anki HTML back field, the same content the block carries on disk.
func (e *Exporter) Card(n note.Note) (string, string, error) {
	text, err := e.TmplProcessor.Fill(n, template.Name(n.NoteKind()))
	if err != nil {
		return "", "", err
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	lines[0] = strings.TrimSpace(strings.TrimPrefix(lines[0], "- **"+n.Front()+"**"))

	back := MarkdownToHTML(strings.Join(lines, "\n"))

	if e.Audio != nil {
		filename, err := e.Audio.Fetch(context.Background(), n.Front(), hash.Sha1(n.Front()))
		if err != nil {
			slog.Error("fetch audio for card", "front", n.Front(), "error", err)
		} else {
			back += "<br>[sound:" + filename + "]"
		}
	}
	return n.Front(), back, nil
}
