package anki

import (
	"regexp"
	"strings"
)

var (
	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*\n]+?)\*`)
	listMarkerRe = regexp.MustCompile(`^\s*[-*]\s+`)
	indentRe     = regexp.MustCompile(`^(\s*)`)
	manyBreaksRe = regexp.MustCompile(`(<br>){3,}`)
)

// MarkdownToHTML converts a note's markdown into the HTML Anki renders in
// card fields. Bold and italic markers become tags, list markers are
// stripped, and indentation is preserved as non-breaking spaces so
// conjugation lists keep their shape.
func MarkdownToHTML(text string) string {
	if text == "" {
		return ""
	}

	var htmlLines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			htmlLines = append(htmlLines, "<br>")
			continue
		}

		// indentation is measured before the list marker is removed
		indent := len(indentRe.FindString(line))

		line = boldRe.ReplaceAllString(line, "<b>$1</b>")
		// single asterisks are all that remain after the bold pass
		line = italicRe.ReplaceAllString(line, "<i>$1</i>")
		line = listMarkerRe.ReplaceAllString(line, "")

		if indent > 0 {
			if indent > 8 {
				indent = 8
			}
			line = strings.Repeat("&nbsp;", indent) + line
		}
		htmlLines = append(htmlLines, line)
	}

	result := strings.Join(htmlLines, "<br>")
	result = manyBreaksRe.ReplaceAllString(result, "<br><br>")
	return strings.TrimSpace(result)
}
