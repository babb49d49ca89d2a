package tokenize

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"japaneselinguistics/analyzer"
	"japaneselinguistics/model"
	"japaneselinguistics/normalize"
	"japaneselinguistics/simple"

	"golang.org/x/text/language"
)

// fakeSegmenter cuts text at the given surfaces, in order. Surfaces missing
// from bases are their own base form; leftover text becomes one unknown segment.
type fakeSegmenter struct {
	surfaces []string
	bases    map[string]string
	seen     []string
}

func (f *fakeSegmenter) Segment(text string) []analyzer.Segment {
	f.seen = append(f.seen, text)
	var out []analyzer.Segment
	rest := text
	for _, s := range f.surfaces {
		if !strings.HasPrefix(rest, s) {
			break
		}
		base, ok := f.bases[s]
		if !ok {
			base = s
		}
		out = append(out, analyzer.Segment{Surface: s, BaseForm: base})
		rest = rest[len(s):]
	}
	if rest != "" {
		out = append(out, analyzer.Segment{Surface: rest, BaseForm: analyzer.UnknownBaseForm})
	}
	return out
}

func originals(tokens []model.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Original
	}
	return out
}

func offsets(tokens []model.Token) []int {
	out := make([]int, len(tokens))
	for i, t := range tokens {
		out[i] = t.Offset
	}
	return out
}

func TestTokenizeEmpty(t *testing.T) {
	p := New(&fakeSegmenter{}, analyzer.DefaultSettings())
	for _, lang := range []language.Tag{language.Japanese, language.English, language.Und} {
		if got := p.Tokenize("", lang, model.StemAll, true); len(got) != 0 {
			t.Errorf("Tokenize(\"\", %v) = %v, want empty", lang, got)
		}
	}
}

func TestTokenizeRoutesNonJapanese(t *testing.T) {
	seg := &fakeSegmenter{}
	p := New(seg, analyzer.DefaultSettings())

	got := p.Tokenize("Hello, World", language.English, model.StemDefault, false)
	want := simple.New().Tokenize("Hello, World", language.English, model.StemDefault, false)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(seg.seen) != 0 {
		t.Errorf("segmenter called for non-Japanese input: %v", seg.seen)
	}

	marker := []model.Token{{Original: "fallback", Type: model.TypeAlphabetic}}
	p = New(seg, analyzer.DefaultSettings(), WithFallback(TokenizerFunc(
		func(string, language.Tag, model.StemMode, bool) []model.Token { return marker })))
	got = p.Tokenize("anything", language.German, model.StemNone, false)
	if len(got) != 1 || !got[0].Equal(marker[0]) {
		t.Errorf("fallback output altered: %v", got)
	}
}

func TestTokenizeAllLanguages(t *testing.T) {
	s := analyzer.DefaultSettings()
	s.ApplyToAllLanguages = true
	seg := &fakeSegmenter{surfaces: []string{"hello"}}
	p := New(seg, s)
	got := p.Tokenize("Hello", language.English, model.StemNone, false)
	if len(got) != 1 || got[0].Original != "Hello" || got[0].Stem != "hello" {
		t.Errorf("tokens = %+v", got)
	}
	if len(seg.seen) != 1 || seg.seen[0] != "hello" {
		t.Errorf("segmenter saw %v, want folded text", seg.seen)
	}
}

func TestTokenizeHalfwidthOffsets(t *testing.T) {
	seg := &fakeSegmenter{
		surfaces: []string{"ギロッポン", "で", "ルービー"},
		bases:    map[string]string{"ギロッポン": "*", "ルービー": "*"},
	}
	p := New(seg, analyzer.DefaultSettings())
	tokens := p.Tokenize("ｷﾞﾛｯﾎﾟﾝでﾙｰﾋﾞｰ", language.Japanese, model.StemDefault, false)

	wantOrig := []string{"ｷﾞﾛｯﾎﾟﾝ", "で", "ﾙｰﾋﾞｰ"}
	if got := originals(tokens); strings.Join(got, "|") != strings.Join(wantOrig, "|") {
		t.Fatalf("originals = %v, want %v", got, wantOrig)
	}
	if got := fmt.Sprint(offsets(tokens)); got != "[0 21 24]" {
		t.Errorf("offsets = %s, want [0 21 24]", got)
	}
	if tokens[0].Stem != "ギロッポン" || tokens[0].Script != model.ScriptKatakana {
		t.Errorf("first token = %+v", tokens[0])
	}
	if tokens[1].Script != model.ScriptHiragana {
		t.Errorf("second token script = %v", tokens[1].Script)
	}
}

func TestTokenizeCollapsedCharacters(t *testing.T) {
	seg := &fakeSegmenter{surfaces: []string{"1", "ヘク", "タール", "に", "30", "トン"}}
	p := New(seg, analyzer.DefaultSettings())
	tokens := p.Tokenize("１㌶に30㌧", language.Japanese, model.StemDefault, false)

	wantOrig := []string{"１", "㌶", "㌶", "に", "30", "㌧"}
	if got := originals(tokens); strings.Join(got, "|") != strings.Join(wantOrig, "|") {
		t.Fatalf("originals = %v, want %v", got, wantOrig)
	}
	if got := fmt.Sprint(offsets(tokens)); got != "[0 3 3 6 9 11]" {
		t.Errorf("offsets = %s, want [0 3 3 6 9 11]", got)
	}
	if tokens[0].Type != model.TypeNumeric || tokens[4].Type != model.TypeNumeric {
		t.Errorf("numeric tokens typed %v and %v", tokens[0].Type, tokens[4].Type)
	}
}

func TestTokenizeFoldsCase(t *testing.T) {
	seg := &fakeSegmenter{surfaces: []string{"abc", "寿司"}}
	p := New(seg, analyzer.DefaultSettings())
	tokens := p.Tokenize("ＡＢＣ寿司", language.Japanese, model.StemDefault, false)

	want := []model.Token{
		{Original: "ＡＢＣ", Stem: "abc", Type: model.TypeAlphabetic, Script: model.ScriptASCII, Offset: 0},
		{Original: "寿司", Stem: "寿司", Type: model.TypeAlphabetic, Script: model.ScriptUnknown, Offset: 9},
	}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %+v", tokens)
	}
	for i := range want {
		if !tokens[i].Equal(want[i]) {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestTokenizeKeepsCaseWhenConfigured(t *testing.T) {
	s := analyzer.DefaultSettings()
	s.IgnoreCase = false
	seg := &fakeSegmenter{surfaces: []string{"ABC"}}
	p := New(seg, s)
	tokens := p.Tokenize("ＡＢＣ", language.Japanese, model.StemNone, false)
	if len(tokens) != 1 || tokens[0].Stem != "ABC" || tokens[0].Original != "ＡＢＣ" {
		t.Errorf("tokens = %+v", tokens)
	}
}

func TestTokenizeStemModes(t *testing.T) {
	seg := &fakeSegmenter{
		surfaces: []string{"食べ", "たい"},
		bases:    map[string]string{"食べ": "食べる"},
	}
	p := New(seg, analyzer.DefaultSettings())

	tokens := p.Tokenize("食べたい", language.Japanese, model.StemAll, false)
	if tokens[0].Stem != "食べる" {
		t.Errorf("StemAll stem = %q, want 食べる", tokens[0].Stem)
	}
	tokens = p.Tokenize("食べたい", language.Japanese, model.StemNone, false)
	if tokens[0].Stem != "食べ" {
		t.Errorf("StemNone stem = %q, want 食べ", tokens[0].Stem)
	}
}

func TestTokenizeSkipsEmptyStems(t *testing.T) {
	seg := &fakeSegmenter{surfaces: []string{"寿司", " ", "です"}}
	p := New(seg, analyzer.DefaultSettings(), WithNormalizer(func(s string) string {
		return strings.TrimSpace(normalize.NFKC(s))
	}))
	tokens := p.Tokenize("寿司 です", language.Japanese, model.StemDefault, false)
	if got := originals(tokens); strings.Join(got, "|") != "寿司|です" {
		t.Fatalf("originals = %v", got)
	}
	if tokens[1].Offset != len("寿司 ") {
		t.Errorf("offset after skipped segment = %d, want %d", tokens[1].Offset, len("寿司 "))
	}
}

func TestTokenizeSpecialTokens(t *testing.T) {
	s := analyzer.DefaultSettings()
	s.SpecialTokens = map[string]string{"C++": "cpp"}
	seg := &fakeSegmenter{surfaces: []string{"c++", "を", "学ぶ"}}
	p := New(seg, s)
	tokens := p.Tokenize("C++を学ぶ", language.Japanese, model.StemDefault, false)
	if len(tokens) != 3 {
		t.Fatalf("tokens = %+v", tokens)
	}
	if !tokens[0].Special || tokens[0].Original != "C++" {
		t.Errorf("first token = %+v, want special C++", tokens[0])
	}
	if tokens[1].Special || tokens[2].Special {
		t.Error("ordinary tokens marked special")
	}
}

func TestTokenizeRemoveAccents(t *testing.T) {
	seg := &fakeSegmenter{surfaces: []string{"café"}}
	var calls int
	p := New(seg, analyzer.DefaultSettings(), WithAccentDrop(func(s string, lang language.Tag) string {
		calls++
		return normalize.AccentDrop(s, lang)
	}))
	tokens := p.Tokenize("café", language.Japanese, model.StemDefault, true)
	if len(tokens) != 1 || tokens[0].Stem != "cafe" {
		t.Errorf("tokens = %+v", tokens)
	}
	p.Tokenize("café", language.Japanese, model.StemDefault, false)
	if calls != 1 {
		t.Errorf("accent drop called %d times, want 1", calls)
	}
}

func TestTokenizeStopsOnOverrun(t *testing.T) {
	p := New(overrunSegmenter{}, analyzer.DefaultSettings())
	tokens := p.Tokenize("あ", language.Japanese, model.StemDefault, false)
	if len(tokens) != 1 {
		t.Errorf("tokens = %+v, want only the covering segment", tokens)
	}
}

type overrunSegmenter struct{}

func (overrunSegmenter) Segment(text string) []analyzer.Segment {
	return []analyzer.Segment{{Surface: text, BaseForm: text}, {Surface: "extra", BaseForm: "extra"}}
}

func TestIsJapanese(t *testing.T) {
	tests := []struct {
		tag  language.Tag
		want bool
	}{
		{language.Japanese, true},
		{language.MustParse("ja-JP"), true},
		{language.English, false},
		{language.Chinese, false},
		{language.Und, false},
	}
	for _, tt := range tests {
		if got := IsJapanese(tt.tag); got != tt.want {
			t.Errorf("IsJapanese(%v) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestTokenizeFoldsGreekAndHalfwidth(t *testing.T) {
	seg := &fakeSegmenter{surfaces: []string{"ガギ", " ", "οδοσ"}}
	p := New(seg, analyzer.DefaultSettings())
	input := "ｶﾞｷﾞ ΟΔΟΣ"
	tokens := p.Tokenize(input, language.Japanese, model.StemDefault, false)

	if len(seg.seen) != 1 || seg.seen[0] != "ガギ οδοσ" {
		t.Fatalf("segmenter saw %q, want folded NFKC text", seg.seen)
	}
	if got := strings.Join(originals(tokens), "|"); got != "ｶﾞｷﾞ| |ΟΔΟΣ" {
		t.Errorf("originals = %s", got)
	}
	if got := fmt.Sprint(offsets(tokens)); got != "[0 12 13]" {
		t.Errorf("offsets = %s, want [0 12 13]", got)
	}
	if tokens[2].Stem != "οδοσ" {
		t.Errorf("stem = %q, want οδοσ", tokens[2].Stem)
	}
}

// appendForm adds a trailing rune no substring produces, so alignment fails.
type appendForm struct{}

func (appendForm) String(s string) string { return s + "!" }

func TestTokenizeFallsBackToIdentityOffsets(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	seg := &fakeSegmenter{surfaces: []string{"ｶﾞ", "ｷﾞ"}}
	p := New(seg, analyzer.DefaultSettings(), withForm(appendForm{}), WithLogger(log))

	input := "ｶﾞｷﾞ"
	tokens := p.Tokenize(input, language.Japanese, model.StemDefault, false)

	if len(seg.seen) != 1 || seg.seen[0] != input {
		t.Fatalf("segmenter saw %q, want the raw input", seg.seen)
	}
	if got := strings.Join(originals(tokens), "|"); got != "ｶﾞ|ｷﾞ" {
		t.Errorf("originals = %s", got)
	}
	if got := fmt.Sprint(offsets(tokens)); got != "[0 6]" {
		t.Errorf("offsets = %s, want [0 6]", got)
	}
	if tokens[0].Stem != "ガ" {
		t.Errorf("stem = %q, want ガ", tokens[0].Stem)
	}
	if !strings.Contains(logs.String(), "identity offsets") {
		t.Errorf("no fallback debug log in %q", logs.String())
	}
}
