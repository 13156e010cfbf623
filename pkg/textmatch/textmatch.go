package textmatch

import (
	"regexp"
	"strings"
)

// Package textmatch holds the keyword and cue-phrase matching primitives shared
// by the domain router, the memory extractor, and special-query detection. The
// matchers are deliberately heuristic: substring containment and cue regexes,
// no tokenization, no validation of what they capture.

// KeywordSet matches when any of its keywords appears as a case-insensitive
// substring of the input.
type KeywordSet []string

func (ks KeywordSet) ContainsAny(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range ks {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// CountHits returns how many keywords from the set occur in the input. Each
// keyword counts at most once regardless of repetition.
func (ks KeywordSet) CountHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range ks {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits++
		}
	}
	return hits
}

// CuePattern captures the clause that follows a first-person declaration cue,
// up to the next sentence-ending punctuation.
type CuePattern struct {
	re *regexp.Regexp
}

// NewCuePattern compiles a pattern for the given cue phrases, e.g.
// NewCuePattern("my name is", "call me"). The capture stops at . ! ? , ; or
// end of line.
func NewCuePattern(cues ...string) CuePattern {
	quoted := make([]string, 0, len(cues))
	for _, cue := range cues {
		cue = strings.TrimSpace(cue)
		if cue == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(cue)))
	}
	expr := `(?i)\b(?:` + strings.Join(quoted, "|") + `)\s+([^.!?,;\n]+)`
	return CuePattern{re: regexp.MustCompile(expr)}
}

// Capture returns the trimmed clause following the first cue occurrence, or ""
// when no cue matches or the captured clause is empty.
func (p CuePattern) Capture(text string) string {
	m := p.re.FindStringSubmatch(strings.ToLower(text))
	if len(m) < 2 {
		return ""
	}
	return NormalizePhrase(m[1])
}

// NormalizePhrase trims whitespace and stray punctuation from a captured
// clause and caps its length.
func NormalizePhrase(in string) string {
	in = strings.TrimSpace(in)
	in = strings.Trim(in, " .,!?:;\"'")
	if len(in) < 2 {
		return ""
	}
	if len(in) > 180 {
		in = strings.TrimSpace(in[:180])
	}
	return in
}

var questionLeadRegex = regexp.MustCompile(`(?i)^\s*(?:what|why|how|when|where|who|can|could|would|do|does|did|is|are|am)\b`)

// IsLikelyQuestion reports whether the text reads as a question rather than a
// declaration. Used to skip fact capture on interrogative turns.
func IsLikelyQuestion(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if strings.Contains(text, "?") {
		return true
	}
	return questionLeadRegex.MatchString(text)
}

// TopicPrefix returns the lowercase prefix of a message used for the
// recent-topics display ring.
func TopicPrefix(text string, max int) string {
	text = strings.ToLower(strings.TrimSpace(text))
	runes := []rune(text)
	if len(runes) > max {
		return string(runes[:max])
	}
	return text
}
