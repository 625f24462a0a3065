package layout

import (
	"fmt"
	"strings"
)

// Match describes the header strings accepted for a column.
type Match struct {
	Exact    []string
	Prefix   string
	Suffix   string
	Contains string
}

// Exact accepts any of the given header strings verbatim.
func Exact(headers ...string) Match {
	return Match{Exact: headers}
}

// Prefix accepts headers starting with p.
func Prefix(p string) Match {
	return Match{Prefix: p}
}

// Suffix accepts headers ending with s.
func Suffix(s string) Match {
	return Match{Suffix: s}
}

// Contains accepts headers containing s.
func Contains(s string) Match {
	return Match{Contains: s}
}

// Matches reports whether header is acceptable.
func (m Match) Matches(header string) bool {
	for _, h := range m.Exact {
		if header == h {
			return true
		}
	}
	if m.Prefix != "" && strings.HasPrefix(header, m.Prefix) {
		return true
	}
	if m.Suffix != "" && strings.HasSuffix(header, m.Suffix) {
		return true
	}
	if m.Contains != "" && strings.Contains(header, m.Contains) {
		return true
	}
	return false
}

func (m Match) String() string {
	parts := make([]string, 0, len(m.Exact)+3)
	for _, h := range m.Exact {
		parts = append(parts, fmt.Sprintf("%q", h))
	}
	if m.Prefix != "" {
		parts = append(parts, fmt.Sprintf("prefix %q", m.Prefix))
	}
	if m.Suffix != "" {
		parts = append(parts, fmt.Sprintf("suffix %q", m.Suffix))
	}
	if m.Contains != "" {
		parts = append(parts, fmt.Sprintf("containing %q", m.Contains))
	}
	return strings.Join(parts, " or ")
}
