package analyzer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// UnknownBaseForm is what the dictionary reports when a word has no base form.
const UnknownBaseForm = "*"

// Segment is one unit of analyzer output. Segments returned for a text are
// contiguous and cover it exactly.
type Segment struct {
	Surface  string
	BaseForm string
}

// Segmenter splits normalized text into segments.
type Segmenter interface {
	Segment(text string) []Segment
}

// Kagome is a Segmenter backed by kagome. It is safe for concurrent use.
type Kagome struct {
	settings Settings
	mode     tokenizer.TokenizeMode
	t        *tokenizer.Tokenizer
	warnings []string
	logger   *slog.Logger
}

type Option func(*Kagome)

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kagome) {
		if l != nil {
			k.logger = l
		}
	}
}

// NewKagome builds the analyzer for s. A user dictionary that kagome cannot
// parse or an unknown system dictionary is a construction error.
func NewKagome(s Settings, opts ...Option) (*Kagome, error) {
	k := &Kagome{
		settings: s,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(k)
	}

	var sys *dict.Dict
	switch strings.ToLower(s.Dictionary) {
	case "", DictIPA:
		sys = ipa.Dict()
	case DictUni:
		sys = uni.Dict()
	default:
		return nil, fmt.Errorf("analyzer: unknown system dictionary %q", s.Dictionary)
	}

	switch s.Mode {
	case ModeNormal:
		k.mode = tokenizer.Normal
	case ModeExtended:
		k.mode = tokenizer.Extended
	default:
		k.mode = tokenizer.Search
	}

	if s.KanjiLengthThreshold != DefaultKanjiLengthThreshold || s.KanjiPenalty != DefaultKanjiPenalty ||
		s.OtherLengthThreshold != DefaultOtherLengthThreshold || s.OtherPenalty != DefaultOtherPenalty {
		k.warnings = append(k.warnings, fmt.Sprintf(
			"kagome uses fixed search penalties (kanji %d/%d, other %d/%d); configured kanji %d/%d, other %d/%d ignored",
			DefaultKanjiLengthThreshold, DefaultKanjiPenalty, DefaultOtherLengthThreshold, DefaultOtherPenalty,
			s.KanjiLengthThreshold, s.KanjiPenalty, s.OtherLengthThreshold, s.OtherPenalty))
	}

	text, warnings := BuildUserDictionary(s)
	k.warnings = append(k.warnings, warnings...)

	opt := []tokenizer.Option{tokenizer.OmitBosEos()}
	if strings.TrimSpace(text) != "" {
		recs, err := dict.NewUserDicRecords(strings.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("analyzer: parse user dictionary: %w", err)
		}
		udict, err := recs.NewUserDict()
		if err != nil {
			return nil, fmt.Errorf("analyzer: build user dictionary: %w", err)
		}
		opt = append(opt, tokenizer.UserDict(udict))
	}

	t, err := tokenizer.New(sys, opt...)
	if err != nil {
		return nil, fmt.Errorf("analyzer: create tokenizer: %w", err)
	}
	k.t = t

	for _, w := range k.warnings {
		k.logger.Warn("analyzer configuration", "warning", w)
	}
	k.logger.Debug("analyzer ready",
		"mode", s.Mode.String(),
		"dictionary", s.Dictionary,
		"special_tokens", len(s.SpecialTokens),
		"mid_dot_split", s.SplitOnMidDot)
	return k, nil
}

// Settings returns the settings the analyzer was built from.
func (k *Kagome) Settings() Settings { return k.settings }

// Warnings lists configuration that was accepted but could not be honored.
func (k *Kagome) Warnings() []string {
	return append([]string(nil), k.warnings...)
}

// Segment runs kagome over text. Unknown words are split around mid dots
// when the settings ask for it.
func (k *Kagome) Segment(text string) []Segment {
	if text == "" {
		return nil
	}
	toks := k.t.Analyze(text, k.mode)
	out := make([]Segment, 0, len(toks))
	for _, tk := range toks {
		if tk.Class == tokenizer.DUMMY || tk.Surface == "" {
			continue
		}
		if k.settings.SplitOnMidDot && tk.Class == tokenizer.UNKNOWN {
			out = append(out, SplitMidDot(tk.Surface)...)
			continue
		}
		out = append(out, Segment{Surface: tk.Surface, BaseForm: baseForm(tk)})
	}
	return out
}

func baseForm(tk tokenizer.Token) string {
	if tk.Class == tokenizer.USER {
		return tk.Surface
	}
	base, ok := tk.BaseForm()
	if !ok || base == "" {
		return UnknownBaseForm
	}
	return base
}

// isMidDot matches the katakana middle dot and its half-width form.
func isMidDot(r rune) bool {
	return r == '・' || r == '･'
}

// SplitMidDot cuts surface into the runs between mid dots and the dots
// themselves. The pieces concatenate back to surface.
func SplitMidDot(surface string) []Segment {
	var out []Segment
	start := 0
	for i, r := range surface {
		if !isMidDot(r) {
			continue
		}
		if i > start {
			out = append(out, Segment{Surface: surface[start:i], BaseForm: UnknownBaseForm})
		}
		end := i + len(string(r))
		out = append(out, Segment{Surface: surface[i:end], BaseForm: UnknownBaseForm})
		start = end
	}
	if start < len(surface) {
		out = append(out, Segment{Surface: surface[start:], BaseForm: UnknownBaseForm})
	}
	return out
}
