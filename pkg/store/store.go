package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fbngrm/de-anki/pkg/note"
	"github.com/fbngrm/de-anki/pkg/template"
	"golang.org/x/exp/slog"
)

// Store persists accepted notes as markdown blocks in a single notes file.
// The file is append-only; blocks are never rewritten in place. A re-saved
// identical note produces a duplicate block.
type Store struct {
	NotesPath     string
	TmplProcessor *template.Processor
}

// Append renders the note into the template matching its kind and appends it
// as a new block at the end of the notes file.
func (s *Store) Append(n note.Note) error {
	text, err := s.TmplProcessor.Fill(n, template.Name(n.NoteKind()))
	if err != nil {
		return fmt.Errorf("could not fill note template: %w", err)
	}
	f, err := os.OpenFile(s.NotesPath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("could not open notes file: %w", err)
	}
	defer f.Close()

	if _, err = f.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("could not append to notes file: %w", err)
	}
	return nil
}

// Scan re-parses the whole notes file into notes, using the same markers the
// templates write. Blocks that fail to parse are skipped with a warning.
// A missing file yields no notes.
func (s *Store) Scan() ([]note.Note, error) {
	f, err := os.Open(s.NotesPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open notes file: %w", err)
	}
	defer f.Close()

	var notes []note.Note
	var block []string
	flush := func() {
		if len(block) == 0 {
			return
		}
		n, err := note.ParseBlock(strings.Join(block, "\n"))
		if err != nil {
			slog.Warn("skip unparsable block in notes file", "block", block[0], "error", err)
		} else {
			notes = append(notes, n)
		}
		block = nil
	}

	// grammar bodies may contain bold-definition lines that look like
	// vocabulary block starts; inside a grammar block only a blank line or
	// another grammar heading ends the block.
	inGrammar := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case note.IsGrammarStart(line):
			flush()
			inGrammar = true
			block = append(block, line)
		case note.IsBlockStart(line) && !inGrammar:
			flush()
			block = append(block, line)
		case strings.TrimSpace(line) == "":
			flush()
			inGrammar = false
		case len(block) > 0:
			block = append(block, line)
		}
		// lines outside a block are human commentary, skipped
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read notes file: %w", err)
	}
	flush()
	return notes, nil
}

// Headwords returns the fronts of all notes currently in the file.
func (s *Store) Headwords() (map[string]struct{}, error) {
	notes, err := s.Scan()
	if err != nil {
		return nil, err
	}
	fronts := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		fronts[n.Front()] = struct{}{}
	}
	return fronts, nil
}
