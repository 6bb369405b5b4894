package analysis

import (
	"regexp"
	"strings"

	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

// Surface cues for party extraction. This is a best-effort enrichment: it
// never fails, it returns an empty list when nothing matches.
var (
	corporateSuffix = regexp.MustCompile(`\b(Inc\.?|LLC|LLP|Ltd\.?|Corp\.?|Corporation|Company|GmbH|PLC|S\.A\.|N\.V\.|Pvt\.?\s+Ltd\.?)(\b|$)`)

	// orgName captures a run of capitalized tokens ending in a corporate
	// suffix, e.g. "Beta Solutions Inc." or "Alpha Tech Pvt. Ltd.".
	orgName = regexp.MustCompile(`((?:[A-Z][A-Za-z0-9&'.-]*\s+){1,5}(?:Inc\.?|LLC|LLP|Ltd\.?|Corp\.?|Corporation|Company|GmbH|PLC|S\.A\.|N\.V\.|Pvt\.?\s+Ltd\.?))(?:\b|$)`)

	// titledPerson captures honorific-prefixed names, e.g. "Mr. John Doe".
	titledPerson = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof)\.\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`)

	// betweenParties captures the two names of a "between X ... and Y" recital.
	betweenParties = regexp.MustCompile(`\bbetween\s+([A-Z][A-Za-z0-9&'.-]*(?:\s+[A-Z][A-Za-z0-9&'.-]*){0,5})\s*(?:\([^)]*\))?\s*,?\s*and\s+([A-Z][A-Za-z0-9&'.-]*(?:\s+[A-Z][A-Za-z0-9&'.-]*){0,5})`)
)

// ExtractParties scans the document for named parties. Duplicate mentions
// collapse by (name, type), keeping the first context seen.
func ExtractParties(text string) []model.Party {
	var parties []model.Party
	seen := make(map[string]bool)

	add := func(name, typ string, at int) {
		name = strings.TrimRight(strings.TrimSpace(name), ",")
		if name == "" {
			return
		}
		key := name + "|" + typ
		if seen[key] {
			return
		}
		seen[key] = true
		parties = append(parties, model.Party{
			Name:    name,
			Type:    typ,
			Context: sentenceAround(text, at),
		})
	}

	for _, m := range betweenParties.FindAllStringSubmatchIndex(text, -1) {
		for _, g := range []int{1, 2} {
			name := text[m[2*g]:m[2*g+1]]
			add(name, classifyName(name), m[2*g])
		}
	}

	for _, m := range orgName.FindAllStringSubmatchIndex(text, -1) {
		add(text[m[2]:m[3]], model.PartyOrganization, m[2])
	}

	for _, m := range titledPerson.FindAllStringSubmatchIndex(text, -1) {
		add(text[m[2]:m[3]], model.PartyPerson, m[2])
	}

	return parties
}

// classifyName decides person vs organization from surface features alone.
func classifyName(name string) string {
	if corporateSuffix.MatchString(name) {
		return model.PartyOrganization
	}
	// Short runs of plain capitalized words read as personal names;
	// anything longer is assumed to be an entity name.
	if len(strings.Fields(name)) <= 3 {
		return model.PartyPerson
	}
	return model.PartyOrganization
}

// sentenceAround returns the sentence containing offset at, bounded by
// sentence-terminal punctuation or line breaks.
func sentenceAround(text string, at int) string {
	if at < 0 || at >= len(text) {
		return ""
	}

	start := 0
	for i := at - 1; i >= 0; i-- {
		c := text[i]
		if c == '\n' || ((c == '.' || c == '!' || c == '?') && i+1 < len(text) && text[i+1] == ' ') {
			start = i + 1
			break
		}
	}

	end := len(text)
	for i := at; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			end = i
			break
		}
		if (c == '.' || c == '!' || c == '?') && (i+1 == len(text) || text[i+1] == ' ' || text[i+1] == '\n') {
			end = i + 1
			break
		}
	}

	return strings.TrimSpace(text[start:end])
}
