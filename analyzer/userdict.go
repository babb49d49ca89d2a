package analyzer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"japaneselinguistics/normalize"
)

// SpecialTokenPOS tags the synthetic user dictionary entries built from the
// special token list.
const SpecialTokenPOS = "SpecialToken"

// ErrUserDictionary wraps every failure to locate or read a user dictionary.
var ErrUserDictionary = errors.New("user dictionary unavailable")

// LoadUserDictionary reads name from disk and falls back to fsys when the
// file does not exist there. An empty name yields an empty dictionary.
func LoadUserDictionary(name string, fsys fs.FS) (string, error) {
	if name == "" {
		return "", nil
	}
	b, err := os.ReadFile(name)
	if err != nil && errors.Is(err, fs.ErrNotExist) && fsys != nil {
		b, err = fs.ReadFile(fsys, strings.TrimPrefix(name, "/"))
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUserDictionary, name, err)
	}
	text := strings.ReplaceAll(string(b), "\r\n", "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text, nil
}

// SpecialKey is the lookup key for a special token surface.
func SpecialKey(token string, ignoreCase bool) string {
	if ignoreCase {
		token = normalize.Fold(token)
	}
	return normalize.NFKC(token)
}

// SpecialSet returns the keys of s.SpecialTokens as lookup keys.
func SpecialSet(s Settings) map[string]struct{} {
	set := make(map[string]struct{}, len(s.SpecialTokens))
	for tok := range s.SpecialTokens {
		key := SpecialKey(tok, s.IgnoreCase)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// BuildUserDictionary returns the user dictionary text followed by one
// "tok,tok,tok,SpecialToken" line per special token, plus any warnings.
// Special tokens the user dictionary already defines keep the user entry.
func BuildUserDictionary(s Settings) (string, []string) {
	defined := userSurfaces(s.UserDictionaryText)
	var warnings []string
	var lines []string
	for key := range SpecialSet(s) {
		if strings.ContainsAny(key, ",\r\n") {
			warnings = append(warnings, fmt.Sprintf("special token %q contains a separator and was not added to the dictionary", key))
			continue
		}
		if strings.TrimSpace(key) == "" {
			continue
		}
		if _, ok := defined[key]; ok {
			warnings = append(warnings, fmt.Sprintf("special token %q is already in the user dictionary", key))
			continue
		}
		lines = append(lines, strings.Join([]string{key, key, key, SpecialTokenPOS}, ","))
	}
	sort.Strings(lines)
	sort.Strings(warnings)

	var b strings.Builder
	b.WriteString(s.UserDictionaryText)
	if s.UserDictionaryText != "" && !strings.HasSuffix(s.UserDictionaryText, "\n") {
		b.WriteByte('\n')
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String(), warnings
}

// userSurfaces collects the first field of every entry in a user dictionary.
func userSurfaces(text string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		surface, _, _ := strings.Cut(line, ",")
		out[strings.TrimSpace(surface)] = struct{}{}
	}
	return out
}
