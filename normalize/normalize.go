package normalize

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxSubLength caps how many code points of the original may be consumed to
// explain a single mismatch against the normalized text.
const MaxSubLength = 255

// ErrNormalization is matched by every *NormalizationError.
var ErrNormalization = errors.New("normalization alignment failed")

// NormalizationError reports that the normalized text could not be aligned
// back onto its input.
type NormalizationError struct {
	Input      string
	Normalized string
	Reason     string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize: %s: %q => %q", e.Reason, e.Input, e.Normalized)
}

func (e *NormalizationError) Is(target error) bool {
	return target == ErrNormalization
}

// Result is a normalized string plus, for every byte position of it (and one
// past the end), the byte offset in the original input it came from.
type Result struct {
	Normalized       string
	OriginalOffsetOf []int
}

// Span returns the original byte range covering normalized bytes [start, end).
func (r *Result) Span(start, end int) (int, int) {
	return r.OriginalOffsetOf[start], r.OriginalOffsetOf[end]
}

// Form is a whole-string transform. norm.Form satisfies it.
type Form interface {
	String(s string) string
}

// FormFunc adapts a plain function to a Form.
type FormFunc func(string) string

func (f FormFunc) String(s string) string { return f(s) }

// Identity maps input onto itself.
func Identity(input string) *Result {
	offsets := make([]int, len(input)+1)
	for i := range offsets {
		offsets[i] = i
	}
	return &Result{Normalized: input, OriginalOffsetOf: offsets}
}

// Align applies NFKC to input and records where every output byte came from.
func Align(input string) (*Result, error) {
	return AlignWith(input, norm.NFKC)
}

// AlignWith is Align with a caller supplied form. The form is applied both to
// the whole input and to the candidate substrings used to resynchronize, so it
// must behave the same on a substring as it does in context.
func AlignWith(input string, form Form) (*Result, error) {
	normalized := form.String(input)
	if normalized == input {
		return Identity(input), nil
	}

	fail := func(format string, args ...any) (*Result, error) {
		return nil, &NormalizationError{
			Input:      input,
			Normalized: normalized,
			Reason:     fmt.Sprintf(format, args...),
		}
	}

	offsets := make([]int, len(normalized)+1)
	ri, ni := 0, 0
	for ri < len(input) && ni < len(normalized) {
		rc, rs := utf8.DecodeRuneInString(input[ri:])
		nc, ns := utf8.DecodeRuneInString(normalized[ni:])
		if rc == nc && rs == ns {
			for k := 0; k < rs; k++ {
				offsets[ni+k] = ri + k
			}
			ri += rs
			ni += rs
			continue
		}

		// Grow the original candidate until its normalized form lines up.
		end := ri
		count := 0
		var cand string
		for {
			if end >= len(input) || count >= MaxSubLength {
				return fail("exceeded original length at byte %d", ri)
			}
			_, size := utf8.DecodeRuneInString(input[end:])
			end += size
			count++

			cand = form.String(input[ri:end])
			if ni+len(cand) > len(normalized) {
				return fail("exceeded normalized length at byte %d", ni)
			}
			if normalized[ni:ni+len(cand)] == cand {
				break
			}
		}
		for k := 0; k < len(cand); k++ {
			offsets[ni+k] = ri
		}
		ri = end
		ni += len(cand)
	}

	if ri != len(input) || ni != len(normalized) {
		return fail("desynchronized after termination [%d:%d]", len(input)-ri, len(normalized)-ni)
	}
	offsets[ni] = ri
	return &Result{Normalized: normalized, OriginalOffsetOf: offsets}, nil
}
