package header

import "strings"

const defineKeyword = "#define"

// Macro is one "#define NAME VALUE" line of a header.
type Macro struct {
	Line  int
	Name  string
	Value string
}

// Tokenize splits a header line into a macro definition. Lines that are not
// definitions, or that define a name without a value, are rejected.
func Tokenize(line string) (Macro, bool) {
	parts := strings.Fields(line)
	if len(parts) < 3 || parts[0] != defineKeyword {
		return Macro{}, false
	}

	// Some vendor headers glue the trailing comment to the value: "0x10/*".
	return Macro{
		Name:  parts[1],
		Value: strings.TrimRight(parts[2], "/*"),
	}, true
}

// Kind is the role of a macro, inferred from the suffix of its name.
type Kind int

const (
	KindOther Kind = iota
	KindOffset
	KindPos
	KindLen
)

func (k Kind) String() string {
	switch k {
	case KindOffset:
		return "offset"
	case KindPos:
		return "position"
	case KindLen:
		return "length"
	default:
		return "other"
	}
}

var suffixes = [...]struct {
	suffix string
	kind   Kind
}{
	{"_OFFSET", KindOffset},
	{"_POS", KindPos},
	{"_LEN", KindLen},
}

// Classify returns the kind of the macro name along with the name stripped of
// the suffix that identified it.
func Classify(name string) (Kind, string) {
	for _, s := range suffixes {
		if base, ok := strings.CutSuffix(name, s.suffix); ok {
			return s.kind, base
		}
	}
	return KindOther, name
}
