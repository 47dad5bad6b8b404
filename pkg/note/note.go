package note

type Kind string

const (
	KindVocabulary Kind = "vocabulary"
	KindVerb       Kind = "verb"
	KindGrammar    Kind = "grammar"
)

// Note is one entry in the notes file. The concrete type determines which
// fields exist; a grammar note has no gender or conjugation data.
type Note interface {
	NoteKind() Kind
	// Front is the card front for vocabulary and verbs, the title for grammar.
	Front() string
}

type VocabularyNote struct {
	Headword    string `yaml:"headword"`
	Gender      string `yaml:"gender,omitempty"`
	Translation string `yaml:"translation"`
	Example     string `yaml:"example,omitempty"`
}

func (n VocabularyNote) NoteKind() Kind { return KindVocabulary }
func (n VocabularyNote) Front() string  { return n.Headword }

type VerbNote struct {
	Headword     string   `yaml:"headword"`
	POS          string   `yaml:"pos,omitempty"`
	Translation  string   `yaml:"translation"`
	Conjugations []string `yaml:"conjugations,omitempty"`
	Preterite    string   `yaml:"preterite,omitempty"`
	PartizipII   string   `yaml:"partizipII,omitempty"`
	Example      string   `yaml:"example,omitempty"`
}

func (n VerbNote) NoteKind() Kind { return KindVerb }
func (n VerbNote) Front() string  { return n.Headword }

type GrammarNote struct {
	Title string   `yaml:"title"`
	Body  []string `yaml:"body,omitempty"`
}

func (n GrammarNote) NoteKind() Kind { return KindGrammar }
func (n GrammarNote) Front() string  { return n.Title }
