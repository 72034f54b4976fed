package search

import "unicode"

// TermType is the script a search term is written in.
type TermType string

const (
	Romaji TermType = "romaji"
	Kana   TermType = "kana"
	Kanji  TermType = "kanji"
)

// DetectTermType classifies term. Any Han character makes it kanji; any
// hiragana or katakana without Han makes it kana; everything else is romaji.
func DetectTermType(term string) TermType {
	hasKana := false
	for _, r := range term {
		if unicode.Is(unicode.Han, r) {
			return Kanji
		}
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			hasKana = true
		}
	}
	if hasKana {
		return Kana
	}
	return Romaji
}
