// Package simple is the language-agnostic fallback tokenizer.
package simple

import (
	"unicode"
	"unicode/utf8"

	"japaneselinguistics/charclass"
	"japaneselinguistics/model"
	"japaneselinguistics/normalize"

	"github.com/kljensen/snowball"
	"golang.org/x/text/language"
)

// snowballLanguages maps base language codes to snowball stemmer names.
var snowballLanguages = map[string]string{
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"ru": "russian",
	"sv": "swedish",
	"no": "norwegian",
	"nb": "norwegian",
	"nn": "norwegian",
	"hu": "hungarian",
}

// Tokenizer splits on word boundaries: a run of letters or digits is one
// token, a run of white space is one token, and any other rune stands alone.
type Tokenizer struct{}

func New() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize implements the pipeline's fallback contract. Offsets are bytes.
func (t *Tokenizer) Tokenize(input string, lang language.Tag, mode model.StemMode, removeAccents bool) []model.Token {
	if input == "" {
		return nil
	}
	stemmer := stemmerFor(lang, mode)

	var tokens []model.Token
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		start := i
		switch {
		case charclass.IsLetterOrDigit(r):
			i = scan(input, i, charclass.IsLetterOrDigit)
		case unicode.IsSpace(r):
			i = scan(input, i, unicode.IsSpace)
		default:
			i += size
		}

		orig := input[start:i]
		stem := normalize.NFKC(normalize.Fold(orig))
		if removeAccents {
			stem = normalize.AccentDrop(stem, lang)
		}
		typ := charclass.FirstType(stem)
		if stemmer != "" && typ == model.TypeAlphabetic {
			if s, err := snowball.Stem(stem, stemmer, true); err == nil && s != "" {
				stem = s
			}
		}
		if stem == "" {
			continue
		}
		tokens = append(tokens, model.Token{
			Original: orig,
			Stem:     stem,
			Type:     typ,
			Script:   charclass.FirstScript(stem),
			Offset:   start,
		})
	}
	return tokens
}

func scan(s string, i int, in func(rune) bool) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !in(r) {
			break
		}
		i += size
	}
	return i
}

// stemmerFor returns the snowball language for lang, or "" when no stemming
// applies.
func stemmerFor(lang language.Tag, mode model.StemMode) string {
	if mode == model.StemNone {
		return ""
	}
	base, conf := lang.Base()
	if conf != language.Exact {
		return ""
	}
	return snowballLanguages[base.String()]
}
