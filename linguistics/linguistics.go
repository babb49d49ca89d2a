// Package linguistics builds the Japanese tokenizer from configuration and
// exposes the operations an indexer needs.
package linguistics

import (
	"fmt"
	"io/fs"
	"log/slog"

	"japaneselinguistics/analyzer"
	"japaneselinguistics/charclass"
	"japaneselinguistics/config"
	"japaneselinguistics/gram"
	"japaneselinguistics/model"
	"japaneselinguistics/normalize"
	"japaneselinguistics/simple"
	"japaneselinguistics/tokenize"

	"golang.org/x/text/language"
)

// Linguistics is safe for concurrent use.
type Linguistics struct {
	settings    analyzer.Settings
	fingerprint string
	tokenizer   tokenize.Tokenizer
	japanese    *tokenize.Pipeline
	warnings    []string
	logger      *slog.Logger
}

type options struct {
	logger *slog.Logger
	fsys   fs.FS
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithUserDictFS sets where a user dictionary is looked up when it is not
// found on disk.
func WithUserDictFS(fsys fs.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SettingsFromConfig converts cfg to analyzer settings and reads the user
// dictionary. An unknown mode falls back to search and is reported as a
// warning.
func SettingsFromConfig(cfg config.Config, fsys fs.FS) (analyzer.Settings, []string, error) {
	var warnings []string
	k := cfg.Kuromoji

	mode, err := analyzer.ParseMode(k.Mode)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%v, using %s", err, mode))
	}

	userDict, err := analyzer.LoadUserDictionary(k.UserDict, fsys)
	if err != nil {
		return analyzer.Settings{}, warnings, err
	}

	s := analyzer.Settings{
		Mode:                 mode,
		KanjiLengthThreshold: k.Kanji.LengthThreshold,
		KanjiPenalty:         k.Kanji.Penalty,
		OtherLengthThreshold: k.Other.LengthThreshold,
		OtherPenalty:         k.Other.Penalty,
		SplitOnMidDot:        k.NakaguroSplit,
		ApplyToAllLanguages:  k.AllLanguage,
		IgnoreCase:           k.IgnoreCase,
		SpecialTokens:        cfg.TokenListNamed(k.TokenListName),
		UserDictionaryText:   userDict,
		Dictionary:           k.Dictionary,
	}
	return s, warnings, nil
}

// New builds the Japanese analyzer described by cfg.
func New(cfg config.Config, opts ...Option) (*Linguistics, error) {
	o := buildOptions(opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, warnings, err := SettingsFromConfig(cfg, o.fsys)
	if err != nil {
		return nil, fmt.Errorf("linguistics: %w", err)
	}
	return build(s, warnings, o)
}

func build(s analyzer.Settings, warnings []string, o options) (*Linguistics, error) {
	for _, w := range warnings {
		o.logger.Warn("linguistics configuration", "warning", w)
	}
	k, err := analyzer.NewKagome(s, analyzer.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("linguistics: %w", err)
	}
	p := tokenize.New(k, s, tokenize.WithLogger(o.logger))
	return &Linguistics{
		settings:    s,
		fingerprint: s.Fingerprint(),
		tokenizer:   p,
		japanese:    p,
		warnings:    append(warnings, k.Warnings()...),
		logger:      o.logger,
	}, nil
}

// Create is New that never fails: when the Japanese analyzer cannot be built
// the error is logged and text is tokenized by the simple tokenizer alone.
func Create(cfg config.Config, opts ...Option) *Linguistics {
	l, err := New(cfg, opts...)
	if err == nil {
		return l
	}
	o := buildOptions(opts)
	o.logger.Error("japanese analyzer unavailable, using simple tokenizer", "error", err)
	return Simple(o.logger, err.Error())
}

// Simple returns linguistics backed only by the simple tokenizer.
func Simple(logger *slog.Logger, warnings ...string) *Linguistics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Linguistics{
		settings:  analyzer.DefaultSettings(),
		tokenizer: simple.New(),
		warnings:  warnings,
		logger:    logger,
	}
}

// Japanese reports whether the Japanese analyzer is in use.
func (l *Linguistics) Japanese() bool { return l.japanese != nil }

func (l *Linguistics) Settings() analyzer.Settings { return l.settings }

// Fingerprint identifies the analyzer settings. It is empty for the simple
// tokenizer.
func (l *Linguistics) Fingerprint() string { return l.fingerprint }

func (l *Linguistics) Warnings() []string {
	return append([]string(nil), l.warnings...)
}

func (l *Linguistics) Tokenize(input string, lang language.Tag, mode model.StemMode, removeAccents bool) []model.Token {
	return l.tokenizer.Tokenize(input, lang, mode, removeAccents)
}

// Stem returns the stems of the indexable tokens of input.
func (l *Linguistics) Stem(input string, lang language.Tag, mode model.StemMode, removeAccents bool) []string {
	return model.IndexableStems(l.Tokenize(input, lang, mode, removeAccents))
}

// Segment returns the original text of every indexable token.
func (l *Linguistics) Segment(input string, lang language.Tag) []string {
	var out []string
	for _, tk := range l.Tokenize(input, lang, model.StemNone, false) {
		if tk.IsIndexable() {
			out = append(out, tk.Original)
		}
	}
	return out
}

func (l *Linguistics) Grams(input string, n int) ([]gram.Gram, error) {
	return gram.Split(input, n)
}

// Normalize applies NFKC.
func (l *Linguistics) Normalize(input string) string { return normalize.NFKC(input) }

func (l *Linguistics) AccentDrop(input string, lang language.Tag) string {
	return normalize.AccentDrop(input, lang)
}

func (l *Linguistics) IsLetter(r rune) bool { return charclass.IsLetter(r) }

