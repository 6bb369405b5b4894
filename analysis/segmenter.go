package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

// clauseHeader matches structural clause boundaries: numbered headers like
// "1. Services:" or "12.3)" and lettered sub-clauses like "(a)", either at
// line start or after sentence-terminal punctuation. Contracts normalized
// from PDF often collapse line breaks, so inline headers count too.
var clauseHeader = regexp.MustCompile(`(?:^|\n[ \t]*|[.;:][ \t]+)((?:\d{1,3}(?:\.\d{1,2})*[.)]|\([a-z]\))[ \t]+[A-Z])`)

// paragraphBreak is the fallback boundary when no headers are present.
var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n[ \t\n]*`)

// Segment splits normalized contract text into ordered clauses. Every
// non-whitespace character of the input lands in exactly one clause.
// Documents with no structural markers become a single clause. It fails only
// for empty or unparsable input.
func Segment(text string) ([]model.Clause, error) {
	if strings.TrimSpace(text) == "" {
		return nil, model.ErrEmptyDocument
	}
	if !parsable(text) {
		return nil, model.ErrUnparsableDocument
	}

	starts := headerStarts(text)
	if len(starts) < 2 {
		starts = paragraphStarts(text)
	}
	if len(starts) == 0 {
		starts = []int{0}
	}

	clauses := make([]model.Clause, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		span := strings.TrimSpace(text[start:end])
		if span == "" {
			continue
		}
		clauses = append(clauses, model.Clause{
			ID:       len(clauses) + 1,
			Position: len(clauses),
			Text:     span,
		})
	}

	if len(clauses) == 0 {
		return nil, model.ErrUnparsableDocument
	}
	return clauses, nil
}

// headerStarts returns boundary offsets at clause headers, always anchored
// at 0 so the preamble before the first header is not lost.
func headerStarts(text string) []int {
	matches := clauseHeader.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	starts := []int{0}
	for _, m := range matches {
		// m[2] is the start of the header group, past any consumed
		// punctuation from the previous clause.
		if m[2] > 0 {
			starts = append(starts, m[2])
		}
	}
	return starts
}

func paragraphStarts(text string) []int {
	breaks := paragraphBreak.FindAllStringIndex(text, -1)
	if len(breaks) == 0 {
		return nil
	}

	starts := []int{0}
	for _, b := range breaks {
		if b[1] < len(text) {
			starts = append(starts, b[1])
		}
	}
	return starts
}

// parsable rejects binary noise left behind by a failed decode: text with no
// letters at all, or dominated by non-printable runes.
func parsable(text string) bool {
	var letters, controls, total int
	for _, r := range text {
		total++
		switch {
		case unicode.IsLetter(r):
			letters++
		case r != '\n' && r != '\t' && r != '\r' && (unicode.IsControl(r) || r == unicode.ReplacementChar):
			controls++
		}
	}
	if letters == 0 {
		return false
	}
	return controls*5 < total
}
