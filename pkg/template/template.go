package template

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/fbngrm/de-anki/pkg/note"
)

//go:embed tmpl/*.tmpl
var tmplFS embed.FS

// Processor renders notes into the markdown block templates. The templates
// define the on-disk block syntax; the note parser must read back exactly
// what they write.
type Processor struct {
	tmpl *template.Template
}

// Name returns the template file matching a note kind.
func Name(k note.Kind) string {
	switch k {
	case note.KindVerb:
		return "verb.tmpl"
	case note.KindGrammar:
		return "grammar.tmpl"
	default:
		return "vocabulary.tmpl"
	}
}

func NewProcessor() (*Processor, error) {
	tmpl, err := template.ParseFS(tmplFS, "tmpl/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Processor{tmpl: tmpl}, nil
}

func (p *Processor) Fill(a any, templateName string) (string, error) {
	buf := new(bytes.Buffer)
	if err := p.tmpl.ExecuteTemplate(buf, templateName, a); err != nil {
		return "", err
	}
	return buf.String(), nil
}
