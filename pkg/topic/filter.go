// Package topic gates user input behind a fixed keyword allow-list.
package topic

import "strings"

// DefaultKeywords is the baby-care allow-list used when no other set is configured.
var DefaultKeywords = []string{
	"baby", "diaper", "milk", "toy", "sleep", "giggle", "cry", "cute",
	"nursery", "mom", "dad", "feeding", "baby food", "play", "infant",
	"crib", "stroller",
}

// Filter tests text against an immutable, case-insensitive keyword set.
type Filter struct {
	keywords []string
}

// New creates a Filter from the given keywords. Keywords are lower-cased and
// de-duplicated; empty keywords are dropped so that empty input never matches.
func New(keywords []string) *Filter {
	seen := make(map[string]struct{}, len(keywords))
	f := &Filter{keywords: make([]string, 0, len(keywords))}

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		f.keywords = append(f.keywords, kw)
	}

	return f
}

// IsOnTopic reports whether any keyword occurs as a substring of the
// lower-cased text.
func (f *Filter) IsOnTopic(text string) bool {
	if text == "" {
		return false
	}

	lowered := strings.ToLower(text)
	for _, kw := range f.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}

	return false
}

// Keywords returns a copy of the keyword set in configuration order.
func (f *Filter) Keywords() []string {
	out := make([]string, len(f.keywords))
	copy(out, f.keywords)
	return out
}

// Len returns the number of keywords in the set.
func (f *Filter) Len() int {
	return len(f.keywords)
}
