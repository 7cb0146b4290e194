package fields

import (
	"strings"
	"unicode"
)

// generatedNameWords expands the terse prefixes PDF authoring tools assign
// to unnamed fields ("Text3", "Dropdown2") into readable labels.
var generatedNameWords = map[string]string{
	"Text":     "Text Field",
	"Dropdown": "Dropdown",
	"Combo":    "Combo Box",
	"List":     "List Box",
}

// DisplayName derives a human-friendly label for a field.
//
// The first non-empty candidate wins, most specific human-authored metadata
// first: the tooltip (alternate text), then the mapping/export name when it
// differs from the technical name, then the last segment of the dot-separated
// fully-qualified name when that differs, and finally the technical name
// itself run through FormatFieldName.
func DisplayName(tooltip, mappingName, fullyQualifiedName, technicalName string) string {
	if s := strings.TrimSpace(tooltip); s != "" {
		return s
	}
	if s := strings.TrimSpace(mappingName); s != "" && s != technicalName {
		return s
	}
	if fqn := strings.TrimSpace(fullyQualifiedName); fqn != "" {
		segs := strings.Split(fqn, ".")
		if last := strings.TrimSpace(segs[len(segs)-1]); last != "" && last != technicalName {
			return last
		}
	}
	return FormatFieldName(technicalName)
}

// FormatFieldName reformats an auto-generated technical name for display:
// underscores and hyphens become spaces, word boundaries are inserted before
// capitals and digit runs, words are title-cased, and known generated
// prefixes are expanded so "Text3" reads "Text Field 3".
func FormatFieldName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var b strings.Builder
	var prev rune
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			r = ' '
		case i > 0 && boundaryBefore(prev, r):
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = titleWord(w)
	}

	if len(words) >= 2 {
		if expanded, ok := generatedNameWords[words[0]]; ok && isDigits(words[len(words)-1]) {
			words[0] = expanded
		}
	}

	return strings.Join(words, " ")
}

// boundaryBefore reports whether a word boundary belongs between prev and r.
func boundaryBefore(prev, r rune) bool {
	if unicode.IsUpper(r) && unicode.IsLower(prev) {
		return true
	}
	if unicode.IsDigit(r) && unicode.IsLetter(prev) {
		return true
	}
	if unicode.IsLetter(r) && unicode.IsDigit(prev) {
		return true
	}
	return false
}

func titleWord(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
