package charclass

import (
	"testing"

	"japaneselinguistics/model"
)

func TestIsLetterSpecialChars(t *testing.T) {
	for _, r := range []rune{'㍻', '㍉', '㊑', '１', '〈', '【', '】', 'ア', 'a', '\u0301'} {
		if !IsLetter(r) {
			t.Errorf("IsLetter(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'㍻', '㍉'} {
		if !IsLetterOrDigit(r) {
			t.Errorf("IsLetterOrDigit(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'〒', '©', '1'} {
		if IsLetter(r) {
			t.Errorf("IsLetter(%q) = true, want false", r)
		}
	}
}

func TestIsLetterRejectsPunctuationAndSigns(t *testing.T) {
	noise := []rune{
		'"', '“', '”', '„', '‟', '‹', '›', '«', '»',
		'〝', '〞', '〟', '＂',
		'-', '－', '+', '＋',
		'.', '．', ',', '，', ':', '：', ';', '；',
		'(', '（', ')', '）', '[', '］', ']',
		'<', '＜', '>', '＞',
		'!', '！', '_', '＿', '^', '＾', '*', '＊', '$', '＄',
	}
	for _, r := range noise {
		if IsLetter(r) {
			t.Errorf("IsLetter(%q) = true, want false", r)
		}
	}
}

func TestIsDigit(t *testing.T) {
	if !IsDigit('1') || !IsDigit('１') {
		t.Error("decimal digits not recognized")
	}
	if IsDigit('a') || IsDigit('㍻') {
		t.Error("non-digits recognized as digits")
	}
	if !IsLetterOrDigit('1') {
		t.Error("IsLetterOrDigit('1') = false")
	}
}

func TestIsLatin(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '1', 'é', 'ŋ', 'ạ'} {
		if !IsLatin(r) {
			t.Errorf("IsLatin(%q) = false", r)
		}
	}
	for _, r := range []rune{'あ', '１', 'Ａ', '夏'} {
		if IsLatin(r) {
			t.Errorf("IsLatin(%q) = true", r)
		}
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		in   string
		want model.TokenType
	}{
		{"a", model.TypeAlphabetic},
		{"Z", model.TypeAlphabetic},
		{"+", model.TypeSymbol},
		{".", model.TypePunctuation},
		{"5", model.TypeNumeric},
		{" ", model.TypeSpace},
		{"\t", model.TypeSpace},
		{"　", model.TypeSpace},
		{"、", model.TypePunctuation},
		{"。", model.TypePunctuation},
		{"【", model.TypePunctuation},
		{"〄", model.TypeSymbol},
		{"★", model.TypeSymbol},
		{"♪", model.TypeSymbol},
		{"〒", model.TypeSymbol},
		{",", model.TypePunctuation},
		{"ｶ", model.TypeAlphabetic},
		{"ｦ", model.TypeAlphabetic},
		{"，", model.TypePunctuation},
		{"．", model.TypePunctuation},
		{"！", model.TypePunctuation},
		{"？", model.TypePunctuation},
		{"＆", model.TypePunctuation},
		{"％", model.TypePunctuation},
		{"０", model.TypeNumeric},
		{"９", model.TypeNumeric},
		{"Ａ", model.TypeAlphabetic},
		{"あ", model.TypeAlphabetic},
		{"ぺ", model.TypeAlphabetic},
		{"が", model.TypeAlphabetic},
		{"ヤ", model.TypeAlphabetic},
		{"ペ", model.TypeAlphabetic},
		{"ガ", model.TypeAlphabetic},
		{"夏", model.TypeAlphabetic},
		{"麦", model.TypeAlphabetic},
		{"\u0000", model.TypeUnknown},
	}
	for _, tt := range tests {
		if got := FirstType(tt.in); got != tt.want {
			t.Errorf("TypeOf(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScriptOf(t *testing.T) {
	tests := []struct {
		in   string
		want model.TokenScript
	}{
		{"a", model.ScriptASCII},
		{"Z", model.ScriptASCII},
		{"+", model.ScriptASCII},
		{".", model.ScriptASCII},
		{"5", model.ScriptASCII},
		{"あ", model.ScriptHiragana},
		{"ぺ", model.ScriptHiragana},
		{"が", model.ScriptHiragana},
		{"ヤ", model.ScriptKatakana},
		{"ペ", model.ScriptKatakana},
		{"ガ", model.ScriptKatakana},
		{"ｶ", model.ScriptUnknown},
		{"夏", model.ScriptUnknown},
		{"暑", model.ScriptUnknown},
		{"", model.ScriptUnknown},
	}
	for _, tt := range tests {
		if got := FirstScript(tt.in); got != tt.want {
			t.Errorf("ScriptOf(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClassificationIsDeterministic(t *testing.T) {
	for r := rune(0); r < 0x3100; r++ {
		if IsLetter(r) != IsLetter(r) || TypeOf(r) != TypeOf(r) || ScriptOf(r) != ScriptOf(r) {
			t.Fatalf("classification of %U is not stable", r)
		}
	}
}
