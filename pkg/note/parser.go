package note

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/exp/slog"
)

// ProposalMarker is the tag the tutor model puts in front of every proposed
// note. Everything before the first marker is the answer to the user.
const ProposalMarker = "[PROPOSED_NOTE]:"

var (
	headwordRe  = regexp.MustCompile(`^\s*[-*]\s+\*\*(.+?)\*\*(?:\s*\(([^)]*)\))?:\s*(.*)$`)
	grammarRe   = regexp.MustCompile(`^\s*[-*]\s+###\s*Grammar:\s*(.*)$`)
	conjHeadRe  = regexp.MustCompile(`^\s*[-*]\s+Conjugation`)
	conjItemRe  = regexp.MustCompile(`^\s{2,}[-*]\s+(.*)$`)
	preteriteRe = regexp.MustCompile(`^\s*[-*]\s+Past tense \(Präteritum\):\s*(.*)$`)
	partizipRe  = regexp.MustCompile(`^\s*[-*]\s+Partizip II:\s*(.*)$`)
	exampleRe   = regexp.MustCompile(`^\s*[-*]\s+Example:\s*(.*)$`)
	listItemRe  = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
)

// IsBlockStart reports whether a line opens a new note block in the notes
// file, i.e. carries a bold headword or a grammar heading.
func IsBlockStart(line string) bool {
	return grammarRe.MatchString(line) || headwordRe.MatchString(line)
}

// IsGrammarStart reports whether a line opens a grammar block. Grammar
// bodies may carry bold-definition lines that look like vocabulary block
// starts, so scanners need to know which block kind they are inside.
func IsGrammarStart(line string) bool {
	return grammarRe.MatchString(line)
}

// SplitAnswer separates the tutor's answer from the raw proposal fragments
// that follow it. Fragments are not parsed yet; empty ones are dropped.
func SplitAnswer(text string) (string, []string) {
	parts := strings.Split(text, ProposalMarker)
	answer := strings.TrimSpace(parts[0])
	var fragments []string
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fragments = append(fragments, p)
	}
	return answer, fragments
}

// ParseProposals extracts all notes from a model response. Fragments that do
// not match any template are skipped, input without markers yields nil.
func ParseProposals(text string) []Note {
	_, fragments := SplitAnswer(text)
	var notes []Note
	for _, f := range fragments {
		n, err := ParseBlock(f)
		if err != nil {
			slog.Debug("skip proposal fragment", "error", err)
			continue
		}
		notes = append(notes, n)
	}
	return notes
}

// ParseBlock parses a single template-shaped block of lines into a note.
// The block syntax is the one written by the tmpl templates; whatever the
// store appends must parse back losslessly here.
func ParseBlock(block string) (Note, error) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(block))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		lines = append(lines, scanner.Text())
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty block")
	}

	if m := grammarRe.FindStringSubmatch(lines[0]); m != nil {
		return parseGrammar(m[1], lines[1:]), nil
	}
	if m := headwordRe.FindStringSubmatch(lines[0]); m != nil {
		return parseEntry(m[1], m[2], m[3], lines[1:]), nil
	}
	return nil, fmt.Errorf("no note marker in block: %q", lines[0])
}

func parseGrammar(title string, lines []string) GrammarNote {
	var body []string
	for _, line := range lines {
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			body = append(body, m[1])
			continue
		}
		body = append(body, strings.TrimSpace(line))
	}
	return GrammarNote{
		Title: strings.TrimSpace(title),
		Body:  body,
	}
}

// parseEntry classifies a bold-headword block as vocabulary or verb. A block
// with conjugation lines or either past tense field is a verb.
func parseEntry(headword, genderOrPOS, translation string, lines []string) Note {
	var conjugations []string
	var preterite, partizip, example string

	inConjugation := false
	for _, line := range lines {
		if conjHeadRe.MatchString(line) {
			inConjugation = true
			continue
		}
		if inConjugation {
			if m := conjItemRe.FindStringSubmatch(line); m != nil {
				conjugations = append(conjugations, strings.TrimSpace(m[1]))
				continue
			}
			inConjugation = false
		}
		if m := preteriteRe.FindStringSubmatch(line); m != nil {
			preterite = strings.TrimSpace(m[1])
			continue
		}
		if m := partizipRe.FindStringSubmatch(line); m != nil {
			partizip = strings.TrimSpace(m[1])
			continue
		}
		if m := exampleRe.FindStringSubmatch(line); m != nil {
			example = trimEmphasis(m[1])
			continue
		}
		// anything else is tutor explanation, not note data
	}

	headword = strings.TrimSpace(headword)
	genderOrPOS = strings.TrimSpace(genderOrPOS)
	translation = strings.TrimSpace(translation)

	if len(conjugations) > 0 || preterite != "" || partizip != "" {
		return VerbNote{
			Headword:     headword,
			POS:          genderOrPOS,
			Translation:  translation,
			Conjugations: conjugations,
			Preterite:    preterite,
			PartizipII:   partizip,
			Example:      example,
		}
	}
	return VocabularyNote{
		Headword:    headword,
		Gender:      genderOrPOS,
		Translation: translation,
		Example:     example,
	}
}

// trimEmphasis removes the italic markers the templates wrap examples in.
func trimEmphasis(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, "*") && strings.HasSuffix(s, "*") {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
