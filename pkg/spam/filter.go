package spam

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MatchKind tells why content was rejected
type MatchKind string

const (
	MatchBannedWord MatchKind = "banned_word"
	MatchLink       MatchKind = "link"
)

// Match describes the first offending part of a message
type Match struct {
	Kind MatchKind
	Term string
}

var (
	nonTokenChars = regexp.MustCompile(`[^\pL\pN\s]+`)
	linkPattern   = regexp.MustCompile(`(?i)(https?://\S+|discord(?:app)?\.(?:gg|com/invite)/\S+)`)
)

// Filter rejects messages containing banned words or, optionally, links.
// Words are compared after lower-casing and stripping accents, so "Pálabra"
// matches "palabra".
type Filter struct {
	words      map[string]struct{}
	phrases    [][]string
	blockLinks bool
}

// NewFilter builds a filter from a banned word list
func NewFilter(words []string, blockLinks bool) *Filter {
	f := &Filter{words: make(map[string]struct{}), blockLinks: blockLinks}
	for _, w := range words {
		tokens := Tokenize(w)
		switch len(tokens) {
		case 0:
		case 1:
			f.words[tokens[0]] = struct{}{}
		default:
			f.phrases = append(f.phrases, tokens)
		}
	}
	return f
}

// Enabled reports whether the filter can match anything
func (f *Filter) Enabled() bool {
	return f.blockLinks || len(f.words) > 0 || len(f.phrases) > 0
}

// Check returns the first match in content
func (f *Filter) Check(content string) (Match, bool) {
	if f.blockLinks {
		if link := linkPattern.FindString(content); link != "" {
			return Match{Kind: MatchLink, Term: link}, true
		}
	}

	if len(f.words) == 0 && len(f.phrases) == 0 {
		return Match{}, false
	}

	tokens := Tokenize(content)
	for _, tok := range tokens {
		if _, ok := f.words[tok]; ok {
			return Match{Kind: MatchBannedWord, Term: tok}, true
		}
	}
	for _, phrase := range f.phrases {
		if containsRun(tokens, phrase) {
			return Match{Kind: MatchBannedWord, Term: strings.Join(phrase, " ")}, true
		}
	}
	return Match{}, false
}

// Tokenize lower-cases text, strips accents and punctuation and splits it on
// whitespace
func Tokenize(text string) []string {
	// transformers keep state, so the chain is built per call
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	bare := strings.ToLower(nonTokenChars.ReplaceAllString(text, " "))
	folded, _, err := transform.String(fold, bare)
	if err != nil {
		logger.Warn("Error normalizando texto: "+err.Error(), "SpamGuard")
		folded = bare
	}
	return strings.Fields(folded)
}

func containsRun(tokens, run []string) bool {
	for i := 0; i+len(run) <= len(tokens); i++ {
		match := true
		for j := range run {
			if tokens[i+j] != run[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
