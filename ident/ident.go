// Package ident converts the upper snake case names of register headers into
// the identifiers used by the generated definitions.
package ident

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Register bit field macros sometimes repeat a REG_ marker after the
// peripheral prefix. The first matching marker is removed.
var bitFieldMarkers = []string{"REG_", "REG2_"}

// TypeName returns the PascalCase type name of a register, e.g. PDS_CTL2 gives
// PdsCtl2. A register named like its enclosing structure gets a trailing 0.
func TypeName(base, structName string) string {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	for _, segment := range strings.Split(base, "_") {
		if segment == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(segment)
		b.WriteString(upper.String(segment[:size]))
		b.WriteString(lower.String(segment[size:]))
	}

	name := b.String()
	if name == structName {
		name += "0"
	}
	return name
}

// FieldName returns the structure field name of a register: the prefix is
// removed and the result is lower cased.
func FieldName(base, prefix string) string {
	return normalize(strip(base, prefix))
}

// BitFieldName returns the name of a register bit field. On top of the prefix,
// a leading REG_ or REG2_ marker is removed.
func BitFieldName(base, prefix string) string {
	name := strip(base, prefix)
	for _, marker := range bitFieldMarkers {
		if rest, ok := strings.CutPrefix(name, marker); ok && rest != "" {
			name = rest
			break
		}
	}
	return normalize(name)
}

// strip removes prefix from base unless nothing would be left of the name.
func strip(base, prefix string) string {
	if name := strings.TrimPrefix(base, prefix); name != "" {
		return name
	}
	return base
}

// Identifiers of the generated definitions cannot start with a digit.
func normalize(name string) string {
	name = cases.Lower(language.Und).String(name)
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) {
		name = "_" + name
	}
	return name
}
