package anki

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "bold",
			in:   "**der Wal** is masculine",
			want: "<b>der Wal</b> is masculine",
		},
		{
			name: "italic",
			in:   "Example: *Der Wal ist groß.*",
			want: "Example: <i>Der Wal ist groß.</i>",
		},
		{
			name: "bold before italic",
			in:   "**wissen** means *to know*",
			want: "<b>wissen</b> means <i>to know</i>",
		},
		{
			name: "list marker stripped",
			in:   "- Example: whale",
			want: "Example: whale",
		},
		{
			name: "indented list keeps shape",
			in:   "- Conjugation (present tense):\n    - ich weiß",
			want: "Conjugation (present tense):<br>&nbsp;&nbsp;&nbsp;&nbsp;ich weiß",
		},
		{
			name: "indentation is capped",
			in:   "            - deep",
			want: "&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;deep",
		},
		{
			name: "blank lines collapse",
			in:   "a\n\n\n\nb",
			want: "a<br><br>b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToHTML(tt.in))
		})
	}
}
