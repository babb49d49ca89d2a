package model

// Token is one unit of analysis output. Offset is a byte offset into the
// original input, before case folding and normalization.
type Token struct {
	Original   string      `json:"original"`
	Stem       string      `json:"stem,omitempty"`
	Type       TokenType   `json:"type"`
	Script     TokenScript `json:"script"`
	Special    bool        `json:"special,omitempty"`
	Offset     int         `json:"offset"`
	Components []Token     `json:"components,omitempty"`
}

// Equal compares tokens field by field, including components.
func (t Token) Equal(o Token) bool {
	if t.Type != o.Type || t.Original != o.Original || t.Offset != o.Offset {
		return false
	}
	if t.Script != o.Script || t.Stem != o.Stem || t.Special != o.Special {
		return false
	}
	if len(t.Components) != len(o.Components) {
		return false
	}
	for i := range t.Components {
		if !t.Components[i].Equal(o.Components[i]) {
			return false
		}
	}
	return true
}

// IsIndexable reports whether the token carries searchable text.
func (t Token) IsIndexable() bool {
	return t.Type.Indexable() && t.Original != ""
}

// Stems returns the token's stem as a one-element list, or the stems of its
// components when it was composed from several segments.
func (t Token) Stems() []string {
	if len(t.Components) == 0 {
		if t.Stem == "" {
			return nil
		}
		return []string{t.Stem}
	}
	var out []string
	for _, c := range t.Components {
		out = append(out, c.Stems()...)
	}
	return out
}

// IndexableStems collects the stems of indexable tokens in order.
func IndexableStems(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsIndexable() {
			continue
		}
		out = append(out, t.Stems()...)
	}
	return out
}
