package normalize

import (
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacriticalMarks is the U+0300..U+036F block.
var combiningDiacriticalMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// NFKC is the generic normalizer applied to stems.
func NFKC(s string) string {
	return norm.NFKC.String(s)
}

// lowerRunes maps every rune to its lower case on its own, without looking at
// its neighbours. Final sigma becomes σ.
var lowerRunes = runes.Map(unicode.ToLower)

// Fold lower-cases s rune by rune. A substring folds to the same bytes it has
// in the folded whole, which AlignWith relies on.
func Fold(s string) string {
	out, _, err := transform.String(lowerRunes, s)
	if err != nil {
		return s
	}
	return out
}

// FoldNFKC lower-cases and then NFKC-normalizes. Used with AlignWith so that
// offsets point into the unfolded input.
var FoldNFKC Form = FormFunc(func(s string) string {
	return norm.NFKC.String(Fold(s))
})

// AccentDrop decomposes s and strips combining diacritical marks. The result
// is left decomposed, so Japanese voiced sound marks survive as U+3099/U+309A.
func AccentDrop(s string, _ language.Tag) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacriticalMarks)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
