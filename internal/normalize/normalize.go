// Package normalize cleans raw company names into tokens suitable for
// domain guessing and page verification.
package normalize

import (
	"strings"
	"unicode"
)

// defaultSuffixes are corporate/organizational words stripped from names.
// Overridable via configuration; this set matches the crawler's tuned list.
var defaultSuffixes = []string{
	"ltd", "limited", "plc", "inc", "corp", "corporation",
	"group", "holdings", "uk", "technology", "tech", "digital", "systems",
}

// Normalizer strips corporate suffixes and punctuation from company names.
type Normalizer struct {
	suffixes map[string]struct{}
}

// New builds a Normalizer. An empty suffix list falls back to the defaults.
func New(suffixes []string) *Normalizer {
	if len(suffixes) == 0 {
		suffixes = defaultSuffixes
	}
	set := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return &Normalizer{suffixes: set}
}

// Clean returns the lower-cased company name with suffix words removed,
// characters outside letters/digits/space/hyphen stripped, and internal
// whitespace collapsed. Degenerate input yields an empty string.
func (n *Normalizer) Clean(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	var kept []string
	for _, tok := range strings.Fields(b.String()) {
		if _, drop := n.suffixes[tok]; drop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Tokens returns the cleaned name split on whitespace.
func (n *Normalizer) Tokens(name string) []string {
	return strings.Fields(n.Clean(name))
}

// Acronym returns the first letters of the cleaned tokens, e.g.
// "british broadcasting" -> "bb". Single tokens yield an empty string
// since a one-letter acronym makes a useless domain guess.
func (n *Normalizer) Acronym(name string) string {
	toks := n.Tokens(name)
	if len(toks) < 2 {
		return ""
	}
	var b strings.Builder
	for _, tok := range toks {
		b.WriteRune([]rune(tok)[0])
	}
	return b.String()
}
