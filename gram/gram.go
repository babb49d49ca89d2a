// Package gram splits text into overlapping n-grams within runs of word
// characters.
package gram

import (
	"fmt"
	"unicode/utf8"

	"japaneselinguistics/charclass"
)

// Gram is a byte range of the split input.
type Gram struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// Text returns the gram's text within input.
func (g Gram) Text(input string) string {
	return input[g.Start : g.Start+g.Length]
}

// Split returns the n-grams of input, n counted in code points. Every full
// gram advances by one code point. A word shorter than n is returned whole,
// but the short tail of a longer word is not.
func Split(input string, n int) ([]Gram, error) {
	if n < 1 {
		return nil, fmt.Errorf("gram size must be positive, got %d", n)
	}
	var out []Gram
	firstAfterSeparator := true
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		if !charclass.IsLetterOrDigit(r) {
			i += size
			firstAfterSeparator = true
			continue
		}

		// Take up to n word characters starting at i.
		end, count, firstSize := i, 0, size
		for end < len(input) && count < n {
			r, sz := utf8.DecodeRuneInString(input[end:])
			if !charclass.IsLetterOrDigit(r) {
				break
			}
			end += sz
			count++
		}

		switch {
		case count == n:
			out = append(out, Gram{Start: i, Length: end - i})
			i += firstSize
			firstAfterSeparator = false
		case firstAfterSeparator:
			out = append(out, Gram{Start: i, Length: end - i})
			i = end
		default:
			i = end
			firstAfterSeparator = true
		}
	}
	return out, nil
}

// Extract returns the texts of the n-grams of input.
func Extract(input string, n int) ([]string, error) {
	grams, err := Split(input, n)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(grams))
	for i, g := range grams {
		out[i] = g.Text(input)
	}
	return out, nil
}
