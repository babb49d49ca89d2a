package tokenize

import (
	"log/slog"

	"japaneselinguistics/analyzer"
	"japaneselinguistics/charclass"
	"japaneselinguistics/model"
	"japaneselinguistics/normalize"
	"japaneselinguistics/simple"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer turns text into tokens. Implementations are safe for concurrent use.
type Tokenizer interface {
	Tokenize(input string, lang language.Tag, mode model.StemMode, removeAccents bool) []model.Token
}

// TokenizerFunc adapts a function to a Tokenizer.
type TokenizerFunc func(input string, lang language.Tag, mode model.StemMode, removeAccents bool) []model.Token

func (f TokenizerFunc) Tokenize(input string, lang language.Tag, mode model.StemMode, removeAccents bool) []model.Token {
	return f(input, lang, mode, removeAccents)
}

var japaneseBase, _ = language.Japanese.Base()

// IsJapanese reports whether lang's base language is Japanese.
func IsJapanese(lang language.Tag) bool {
	base, conf := lang.Base()
	return conf != language.No && base == japaneseBase
}

// Pipeline is the Japanese tokenizer: it folds and normalizes the input while
// keeping track of original offsets, segments the normalized text and turns
// every segment into a token.
type Pipeline struct {
	seg        analyzer.Segmenter
	settings   analyzer.Settings
	special    map[string]struct{}
	form       normalize.Form
	fallback   Tokenizer
	normalizer func(string) string
	accentDrop func(string, language.Tag) string
	logger     *slog.Logger
}

type Option func(*Pipeline)

// WithFallback sets the tokenizer used for non-Japanese input.
func WithFallback(t Tokenizer) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.fallback = t
		}
	}
}

// WithNormalizer replaces the transform applied to every stem.
func WithNormalizer(f func(string) string) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.normalizer = f
		}
	}
}

// WithAccentDrop replaces the transform applied when accents are removed.
func WithAccentDrop(f func(string, language.Tag) string) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.accentDrop = f
		}
	}
}

// withForm replaces the alignment form chosen from the settings.
func withForm(f normalize.Form) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.form = f
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New builds a pipeline around seg. The settings must be the ones seg was
// built from so that special token detection matches the dictionary.
func New(seg analyzer.Segmenter, s analyzer.Settings, opts ...Option) *Pipeline {
	p := &Pipeline{
		seg:        seg,
		settings:   s,
		special:    analyzer.SpecialSet(s),
		fallback:   simple.New(),
		normalizer: normalize.NFKC,
		accentDrop: normalize.AccentDrop,
		logger:     slog.Default(),
	}
	if s.IgnoreCase {
		p.form = normalize.FoldNFKC
	} else {
		p.form = norm.NFKC
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Settings returns the settings the pipeline was built with.
func (p *Pipeline) Settings() analyzer.Settings { return p.settings }

// IsSpecial reports whether surface is a registered special token.
func (p *Pipeline) IsSpecial(surface string) bool {
	_, ok := p.special[analyzer.SpecialKey(surface, p.settings.IgnoreCase)]
	return ok
}

// Tokenize returns the tokens of input in order. Non-Japanese input goes to
// the fallback unless the pipeline applies to all languages.
func (p *Pipeline) Tokenize(input string, lang language.Tag, mode model.StemMode, removeAccents bool) []model.Token {
	if input == "" {
		return nil
	}
	if !p.settings.ApplyToAllLanguages && !IsJapanese(lang) {
		return p.fallback.Tokenize(input, lang, mode, removeAccents)
	}

	res, err := normalize.AlignWith(input, p.form)
	if err != nil {
		p.logger.Debug("normalization alignment failed, using identity offsets", "error", err)
		res = normalize.Identity(input)
	}
	offsets := res.OriginalOffsetOf
	last := len(res.Normalized)

	var tokens []model.Token
	normOffset := 0
	for _, seg := range p.seg.Segment(res.Normalized) {
		if seg.Surface == "" {
			continue
		}
		next := normOffset + len(seg.Surface)
		if next > last {
			p.logger.Debug("segments overrun normalized text", "surface", seg.Surface, "offset", normOffset)
			break
		}

		// Merge output positions that collapsed from one original character.
		start := offsets[normOffset]
		end := next
		for end < last && offsets[end] == start {
			end++
		}
		orig := input[start:offsets[end]]

		stem := p.stem(seg, lang, mode, removeAccents)
		normOffset = next
		if stem == "" {
			continue
		}

		tokens = append(tokens, model.Token{
			Original: orig,
			Stem:     stem,
			Type:     charclass.FirstType(stem),
			Script:   charclass.FirstScript(stem),
			Special:  p.IsSpecial(seg.Surface),
			Offset:   start,
		})
	}
	return tokens
}

func (p *Pipeline) stem(seg analyzer.Segment, lang language.Tag, mode model.StemMode, removeAccents bool) string {
	s := seg.BaseForm
	if mode == model.StemNone || s == analyzer.UnknownBaseForm {
		s = seg.Surface
	}
	s = p.normalizer(s)
	if removeAccents {
		s = p.accentDrop(s, lang)
	}
	return s
}
