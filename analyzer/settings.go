// Package analyzer adapts the kagome morphological analyzer to the segment
// contract used by the tokenization pipeline.
package analyzer

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// Mode selects the analyzer's segmentation strategy.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeExtended
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeExtended:
		return "extended"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode is case-insensitive. Callers that must not fail fall back to
// ModeSearch on error.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return ModeNormal, nil
	case "search":
		return ModeSearch, nil
	case "extended":
		return ModeExtended, nil
	}
	return ModeSearch, fmt.Errorf("unknown analyzer mode %q", s)
}

// Dictionary names accepted in Settings.Dictionary.
const (
	DictIPA = "ipa"
	DictUni = "uni"
)

// Defaults for the long token penalties. kagome applies exactly these.
const (
	DefaultKanjiLengthThreshold = 2
	DefaultKanjiPenalty         = 3000
	DefaultOtherLengthThreshold = 7
	DefaultOtherPenalty         = 1700
)

// Settings configure one analyzer instance. Treat a Settings value as
// immutable once it has been handed to NewKagome or the pipeline.
type Settings struct {
	Mode                 Mode
	KanjiLengthThreshold int
	KanjiPenalty         int
	OtherLengthThreshold int
	OtherPenalty         int
	SplitOnMidDot        bool
	ApplyToAllLanguages  bool
	IgnoreCase           bool
	// SpecialTokens maps a surface to its replacement. Only the keys are used.
	SpecialTokens      map[string]string
	UserDictionaryText string
	Dictionary         string
}

func DefaultSettings() Settings {
	return Settings{
		Mode:                 ModeSearch,
		KanjiLengthThreshold: DefaultKanjiLengthThreshold,
		KanjiPenalty:         DefaultKanjiPenalty,
		OtherLengthThreshold: DefaultOtherLengthThreshold,
		OtherPenalty:         DefaultOtherPenalty,
		IgnoreCase:           true,
		Dictionary:           DictIPA,
	}
}

// Fingerprint is a blake3 digest of the settings' canonical form. Two settings
// with the same fingerprint build identical analyzers.
func (s Settings) Fingerprint() string {
	h := blake3.New()
	s.writeCanonical(h)
	return hex.EncodeToString(h.Sum(nil))
}

func (s Settings) writeCanonical(w io.Writer) {
	field := func(name, value string) {
		fmt.Fprintf(w, "%s=%d:%s\n", name, len(value), value)
	}
	field("mode", s.Mode.String())
	field("kanji.length_threshold", strconv.Itoa(s.KanjiLengthThreshold))
	field("kanji.penalty", strconv.Itoa(s.KanjiPenalty))
	field("other.length_threshold", strconv.Itoa(s.OtherLengthThreshold))
	field("other.penalty", strconv.Itoa(s.OtherPenalty))
	field("split_on_mid_dot", strconv.FormatBool(s.SplitOnMidDot))
	field("all_languages", strconv.FormatBool(s.ApplyToAllLanguages))
	field("ignore_case", strconv.FormatBool(s.IgnoreCase))
	field("dictionary", s.Dictionary)

	keys := make([]string, 0, len(s.SpecialTokens))
	for k := range s.SpecialTokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		field("special", k)
		field("replace", s.SpecialTokens[k])
	}
	field("user_dict", s.UserDictionaryText)
}
