package roster

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// NamePlaceholder stands in for a Pokémon's own name inside its Pokédex
// entries. Sentence-initial occurrences are capitalized.
const NamePlaceholder = "this POKéMON"

// redactEntries returns entries with every case-insensitive occurrence of
// name replaced by NamePlaceholder.
func redactEntries(name string, entries []string) []string {
	if len(entries) == 0 {
		return entries
	}
	re := namePattern(name)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = redact(e, re)
	}
	return out
}

func redact(text string, re *regexp.Regexp) string {
	matches := re.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		if sentenceStart(text[:m[0]]) {
			b.WriteString("T" + NamePlaceholder[1:])
		} else {
			b.WriteString(NamePlaceholder)
		}
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func sentenceStart(prefix string) bool {
	p := strings.TrimRight(prefix, " ")
	return p == "" || strings.HasSuffix(p, ".") || strings.HasSuffix(p, "!") || strings.HasSuffix(p, "?")
}

// namePattern matches name as a whole word, ignoring case. Word boundaries
// are only added next to word characters so names such as "Nidoran♀" or
// "Mr. Mime" still match.
func namePattern(name string) *regexp.Regexp {
	expr := regexp.QuoteMeta(name)
	if r, _ := utf8.DecodeRuneInString(name); isWordRune(r) {
		expr = `\b` + expr
	}
	if r, _ := utf8.DecodeLastRuneInString(name); isWordRune(r) {
		expr += `\b`
	}
	return regexp.MustCompile("(?i)" + expr)
}

func isWordRune(r rune) bool {
	return r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
