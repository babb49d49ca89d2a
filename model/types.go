package model

import (
	"fmt"
	"strings"
)

// TokenType is the coarse class of a token, derived from one code point.
type TokenType int

const (
	TypeUnknown TokenType = iota
	TypeSpace
	TypePunctuation
	TypeSymbol
	TypeAlphabetic
	TypeNumeric
)

var tokenTypeNames = [...]string{
	TypeUnknown:     "UNKNOWN",
	TypeSpace:       "SPACE",
	TypePunctuation: "PUNCTUATION",
	TypeSymbol:      "SYMBOL",
	TypeAlphabetic:  "ALPHABETIC",
	TypeNumeric:     "NUMERIC",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

// Indexable reports whether tokens of this type are worth indexing.
func (t TokenType) Indexable() bool {
	return t == TypeAlphabetic || t == TypeNumeric
}

func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TokenType) UnmarshalText(b []byte) error {
	v, err := ParseTokenType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTokenType accepts the upper-case names produced by String.
func ParseTokenType(s string) (TokenType, error) {
	for i, name := range tokenTypeNames {
		if strings.EqualFold(name, s) {
			return TokenType(i), nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown token type: %q", s)
}

// TokenScript is the coarse script of a token.
type TokenScript int

const (
	ScriptUnknown TokenScript = iota
	ScriptHiragana
	ScriptKatakana
	ScriptASCII
)

var tokenScriptNames = [...]string{
	ScriptUnknown:  "UNKNOWN",
	ScriptHiragana: "HIRAGANA",
	ScriptKatakana: "KATAKANA",
	ScriptASCII:    "ASCII",
}

func (s TokenScript) String() string {
	if s < 0 || int(s) >= len(tokenScriptNames) {
		return fmt.Sprintf("TokenScript(%d)", int(s))
	}
	return tokenScriptNames[s]
}

func (s TokenScript) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TokenScript) UnmarshalText(b []byte) error {
	v, err := ParseTokenScript(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseTokenScript(s string) (TokenScript, error) {
	for i, name := range tokenScriptNames {
		if strings.EqualFold(name, s) {
			return TokenScript(i), nil
		}
	}
	return ScriptUnknown, fmt.Errorf("unknown token script: %q", s)
}

// StemMode selects how stems are derived. Only StemNone changes the Japanese
// pipeline's behavior: it keeps the surface form instead of the base form.
type StemMode int

const (
	StemNone StemMode = iota
	StemDefault
	StemAll
	StemShortest
	StemBest
)

var stemModeNames = [...]string{
	StemNone:     "NONE",
	StemDefault:  "DEFAULT",
	StemAll:      "ALL",
	StemShortest: "SHORTEST",
	StemBest:     "BEST",
}

func (m StemMode) String() string {
	if m < 0 || int(m) >= len(stemModeNames) {
		return fmt.Sprintf("StemMode(%d)", int(m))
	}
	return stemModeNames[m]
}

func (m StemMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *StemMode) UnmarshalText(b []byte) error {
	v, err := ParseStemMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func ParseStemMode(s string) (StemMode, error) {
	for i, name := range stemModeNames {
		if strings.EqualFold(name, s) {
			return StemMode(i), nil
		}
	}
	return StemNone, fmt.Errorf("unknown stem mode: %q", s)
}
