// Package charclass classifies single code points for tokenization.
package charclass

import (
	"unicode"
	"unicode/utf8"

	"japaneselinguistics/model"

	"golang.org/x/text/unicode/norm"
)

// IsLetter reports whether r should be treated as part of a word. Beyond
// general letters this admits non-Latin digits, the CJK angle and corner
// brackets, combining marks, and symbols whose compatibility form is a letter
// or digit (era names like ㍻, squared units like ㍉, circled ideographs).
func IsLetter(r rune) bool {
	if unicode.IsLetter(r) {
		return true
	}
	if unicode.IsDigit(r) && !IsLatin(r) {
		return true
	}
	if r >= '〈' && r <= '】' {
		return true
	}
	if unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me) {
		return true
	}
	if unicode.Is(unicode.So, r) {
		folded := norm.NFKC.String(string(r))
		first, _ := utf8.DecodeRuneInString(folded)
		if first == r {
			return false
		}
		return IsLetterOrDigit(first)
	}
	return false
}

// IsDigit reports whether r is a decimal digit.
func IsDigit(r rune) bool {
	return unicode.IsDigit(r)
}

func IsLetterOrDigit(r rune) bool {
	return IsLetter(r) || IsDigit(r)
}

// IsLatin reports whether r sits in one of the Latin blocks.
func IsLatin(r rune) bool {
	switch {
	case r <= 0x024F: // Basic Latin through Latin Extended-B
		return true
	case r >= 0x0250 && r <= 0x02AF: // IPA Extensions
		return true
	case r >= 0x1E00 && r <= 0x1EFF: // Latin Extended Additional
		return true
	}
	return false
}

// TypeOf maps r to a coarse token type using its general category.
func TypeOf(r rune) model.TokenType {
	switch {
	case unicode.IsLetter(r), unicode.IsMark(r):
		return model.TypeAlphabetic
	case unicode.IsNumber(r):
		return model.TypeNumeric
	case unicode.IsSpace(r), unicode.Is(unicode.Z, r):
		return model.TypeSpace
	case unicode.IsPunct(r):
		return model.TypePunctuation
	case unicode.IsSymbol(r):
		return model.TypeSymbol
	}
	return model.TypeUnknown
}

// ScriptOf maps r to a coarse script using its Unicode block.
func ScriptOf(r rune) model.TokenScript {
	switch {
	case r >= 0x3040 && r <= 0x309F:
		return model.ScriptHiragana
	case r >= 0x30A0 && r <= 0x30FF:
		return model.ScriptKatakana
	case r >= 0 && r <= 0x7F:
		return model.ScriptASCII
	}
	return model.ScriptUnknown
}

// FirstType classifies s by its first code point.
func FirstType(s string) model.TokenType {
	r, _ := utf8.DecodeRuneInString(s)
	return TypeOf(r)
}

// FirstScript classifies s by its first code point.
func FirstScript(s string) model.TokenScript {
	r, _ := utf8.DecodeRuneInString(s)
	return ScriptOf(r)
}

