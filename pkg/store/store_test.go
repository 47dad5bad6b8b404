package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fbngrm/de-anki/pkg/note"
	"github.com/fbngrm/de-anki/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	p, err := template.NewProcessor()
	require.NoError(t, err)
	return &Store{
		NotesPath:     filepath.Join(t.TempDir(), "notes.md"),
		TmplProcessor: p,
	}
}

func TestAppendScanRoundTripVocabulary(t *testing.T) {
	s := newTestStore(t)

	want := note.VocabularyNote{
		Headword:    "der Wal",
		Gender:      "masc.",
		Translation: "whale",
		Example:     "Der Wal ist groß.",
	}
	require.NoError(t, s.Append(want))

	notes, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, want, notes[0])
}

func TestAppendScanRoundTripVerb(t *testing.T) {
	s := newTestStore(t)

	want := note.VerbNote{
		Headword:    "wissen",
		POS:         "reg. verb",
		Translation: "to know",
		Conjugations: []string{
			"ich weiß",
			"du weißt",
			"er/sie/es weiß",
			"wir wissen",
			"ihr wisst",
			"sie/Sie wissen",
		},
		Preterite:  "wusste",
		PartizipII: "gewusst",
		Example:    "Ich weiß die Antwort.",
	}
	require.NoError(t, s.Append(want))

	notes, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, notes, 1)

	got, ok := notes[0].(note.VerbNote)
	require.True(t, ok, "expected a verb note, got %T", notes[0])
	assert.Equal(t, want, got)
	// conjugation lines survive in original order
	assert.Len(t, got.Conjugations, len(want.Conjugations))
}

func TestAppendScanRoundTripGrammar(t *testing.T) {
	s := newTestStore(t)

	want := note.GrammarNote{
		Title: "Dative case",
		Body: []string{
			"The dative marks the indirect object.",
			"Nouns take -n in the dative plural.",
		},
	}
	require.NoError(t, s.Append(want))

	notes, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, want, notes[0])
}

func TestAppendScanRoundTripGrammarWithBoldBody(t *testing.T) {
	s := newTestStore(t)

	// bold-definition lines inside a grammar body look like vocabulary
	// block starts and must not split the block
	want := note.GrammarNote{
		Title: "Noun gender",
		Body: []string{
			"Every noun has a gender, e.g.",
			"**der Hund**: the dog",
			"**die Katze**: the cat",
		},
	}
	require.NoError(t, s.Append(want))
	require.NoError(t, s.Append(note.VocabularyNote{Headword: "der Wal", Translation: "whale"}))

	notes, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, want, notes[0])
	assert.Equal(t, "der Wal", notes[1].Front())

	fronts, err := s.Headwords()
	require.NoError(t, err)
	assert.NotContains(t, fronts, "der Hund")
}

func TestAppendGrowsFileMonotonically(t *testing.T) {
	s := newTestStore(t)

	n := note.VocabularyNote{Headword: "der Wal", Gender: "masc.", Translation: "whale"}
	require.NoError(t, s.Append(n))
	require.NoError(t, s.Append(n))

	// no deduplication: an identical re-save is a second block
	notes, err := s.Scan()
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestScanMissingFile(t *testing.T) {
	s := newTestStore(t)

	notes, err := s.Scan()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestScanSkipsCommentaryAndBrokenBlocks(t *testing.T) {
	s := newTestStore(t)

	content := `# My German Notes

some hand-written remark outside any block

- **der Wal** (masc.): whale
- Example: *Der Wal ist groß.*

- **das Meer** (neut.): sea
`
	require.NoError(t, os.WriteFile(s.NotesPath, []byte(content), 0644))

	notes, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "der Wal", notes[0].Front())
	assert.Equal(t, "das Meer", notes[1].Front())
}

func TestScanSplitsAdjacentBlocksWithoutBlankLine(t *testing.T) {
	s := newTestStore(t)

	content := "- **der Wal** (masc.): whale\n- **das Meer** (neut.): sea\n"
	require.NoError(t, os.WriteFile(s.NotesPath, []byte(content), 0644))

	notes, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, notes, 2)
}

func TestHeadwords(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(note.VocabularyNote{Headword: "der Wal", Translation: "whale"}))
	require.NoError(t, s.Append(note.GrammarNote{Title: "Dative case"}))

	fronts, err := s.Headwords()
	require.NoError(t, err)
	assert.Contains(t, fronts, "der Wal")
	assert.Contains(t, fronts, "Dative case")
	assert.Len(t, fronts, 2)
}
