package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// Naming derives the key of a field from its name when the field does not
// declare a key path.
type Naming string

const (
	Identity   Naming = ""
	SnakeCase  Naming = "snake"
	CamelCase  Naming = "camel"
	KebabCase  Naming = "kebab"
	PascalCase Naming = "pascal"
)

func (n Naming) Valid() bool {
	switch n {
	case Identity, SnakeCase, CamelCase, KebabCase, PascalCase:
		return true
	}
	return false
}

func (n *Naming) UnmarshalText(d []byte) error {
	m := Naming(d)
	if m == "identity" {
		m = Identity
	}
	if !m.Valid() {
		return fmt.Errorf("unknown naming %q", d)
	}
	*n = m
	return nil
}

// Apply returns the key for a field called name.
//
//	SnakeCase.Apply("UserID")     // "user_id"
//	CamelCase.Apply("HTTPServer") // "httpServer"
//	KebabCase.Apply("first_name") // "first-name"
func (n Naming) Apply(name string) string {
	if n == Identity {
		return name
	}
	words := splitWords(name)
	switch n {
	case SnakeCase:
		return strings.Join(lowerAll(words), "_")
	case KebabCase:
		return strings.Join(lowerAll(words), "-")
	case CamelCase:
		for i, w := range words {
			if i == 0 {
				words[i] = strings.ToLower(w)
				continue
			}
			words[i] = title(w)
		}
		return strings.Join(words, "")
	case PascalCase:
		for i, w := range words {
			words[i] = title(w)
		}
		return strings.Join(words, "")
	}
	return name
}

// splitWords breaks an identifier at separators and case changes. A run of
// capitals is one word, except that its last capital starts the next word
// when followed by a lower case letter: "HTTPServer" is "HTTP", "Server".
func splitWords(s string) []string {
	rs := []rune(s)
	var words []string
	start := 0
	flush := func(end int) {
		if end > start {
			words = append(words, string(rs[start:end]))
		}
	}
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush(i)
			start = i + 1
			continue
		}
		if i == start || !unicode.IsUpper(r) {
			continue
		}
		prev := rs[i-1]
		nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
		if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
			flush(i)
			start = i
		}
	}
	flush(len(rs))
	return words
}

func lowerAll(ws []string) []string {
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return ws
}

func title(w string) string {
	rs := []rune(strings.ToLower(w))
	if len(rs) > 0 {
		rs[0] = unicode.ToUpper(rs[0])
	}
	return string(rs)
}
