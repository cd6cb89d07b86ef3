package kpath

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var ErrSyntax = errors.New("key path syntax error")

// Parse splits a key path into its segments. The empty string is the root
// path and yields a nil slice.
func Parse(kp string) ([]string, error) {
	if kp == "" {
		return nil, nil
	}
	var res []string
	rest := kp
	for {
		field, tail, err := parseField(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrSyntax, kp, err)
		}
		res = append(res, field)
		if tail == "" {
			return res, nil
		}
		if tail[0] != '.' {
			return nil, fmt.Errorf("%w: %q: unexpected %q after field %q", ErrSyntax, kp, tail[:1], field)
		}
		rest = tail[1:]
		if rest == "" {
			return nil, fmt.Errorf("%w: %q: trailing '.'", ErrSyntax, kp)
		}
	}
}

// MustParse is like Parse but panics on error. It is meant for key paths
// written in source code.
func MustParse(kp string) []string {
	res, err := Parse(kp)
	if err != nil {
		panic(err)
	}
	return res
}

// parseField reads one segment from the start of frag.
func parseField(frag string) (field, rest string, err error) {
	if frag == "" {
		return "", "", errors.New("empty field")
	}
	switch frag[0] {
	case '"':
		end, err := quotedEnd(frag, '"')
		if err != nil {
			return "", "", err
		}
		field, err = strconv.Unquote(frag[:end])
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field %s: %w", frag[:end], err)
		}
		return field, frag[end:], nil
	case '\'':
		end, err := quotedEnd(frag, '\'')
		if err != nil {
			return "", "", err
		}
		field = strings.ReplaceAll(frag[1:end-1], `\'`, `'`)
		field = strings.ReplaceAll(field, `\\`, `\`)
		return field, frag[end:], nil
	case '.':
		return "", "", errors.New("empty field")
	}
	i := strings.IndexAny(frag, ".[{'\"")
	if i == -1 {
		return frag, "", nil
	}
	switch frag[i] {
	case '[', '{':
		return "", "", fmt.Errorf("index segments are not supported in key paths")
	case '\'', '"':
		return "", "", fmt.Errorf("quote inside unquoted field %q", frag[:i+1])
	}
	return frag[:i], frag[i:], nil
}

// quotedEnd returns the length of the quoted string starting at d[0],
// including both quotes.
func quotedEnd(d string, q byte) (int, error) {
	escaped := false
	for i := 1; i < len(d); i++ {
		c := d[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == q:
			return i + 1, nil
		}
	}
	return 0, errors.New("unterminated quoted field")
}

// NeedsQuote reports whether field must be quoted to appear in a key path.
func NeedsQuote(field string) bool {
	if field == "" {
		return true
	}
	return strings.ContainsAny(field, ".[{'\" \t\n\\")
}

// String renders path so that Parse(String(path)) returns path.
func String(path []string) string {
	var b strings.Builder
	for i, field := range path {
		if i > 0 {
			b.WriteByte('.')
		}
		if NeedsQuote(field) {
			b.WriteString(strconv.Quote(field))
			continue
		}
		b.WriteString(field)
	}
	return b.String()
}

// Join returns a new path made of prefix followed by suffix.
func Join(prefix []string, suffix ...string) []string {
	res := make([]string, 0, len(prefix)+len(suffix))
	res = append(res, prefix...)
	return append(res, suffix...)
}

// HasPrefix reports whether prefix is a leading part of path.
func HasPrefix(path, prefix []string) bool {
	return len(prefix) <= len(path) && slices.Equal(path[:len(prefix)], prefix)
}
