// Package emitter renders MMIO structures as the mmio!/reg! definitions read
// by the register access macros.
package emitter

import (
	"fmt"
	"io"
	"strings"

	"omibyte.io/mmiogen/model"
)

// Emitter holds the syntax details of the generated definitions.
type Emitter struct {
	// StructMacro and RegMacro are the paths of the definition macros.
	StructMacro string
	RegMacro    string

	// Access is the access mode of every structure field.
	Access string

	// Word is the integer type backing registers.
	Word string
}

// Default matches the embedded_util crate.
var Default = Emitter{
	StructMacro: "embedded_util::mmio",
	RegMacro:    "embedded_util::reg",
	Access:      "rw",
	Word:        "u32",
}

const (
	indent1 = "    "
	indent2 = indent1 + indent1
)

// Emit writes the definitions of s to w in a single write. Lines always end
// with "\n".
func (e *Emitter) Emit(w io.Writer, s *model.Struct) error {
	var b strings.Builder

	fmt.Fprintf(&b, "//! %s\n\n", s.Doc)

	fmt.Fprintf(&b, "%s! {\n", e.StructMacro)
	fmt.Fprintf(&b, "%spub struct %s {\n", indent1, s.Name)
	for _, f := range s.Fields {
		writeDoc(&b, f.Doc)
		fmt.Fprintf(&b, "%s[0x%03X] %s %s: %s,\n", indent2, f.Index, e.Access, f.Name, f.Type)
	}
	fmt.Fprintf(&b, "%s}\n}\n", indent1)

	for _, r := range s.Registers {
		fmt.Fprintf(&b, "\n%s! {\n", e.RegMacro)
		fmt.Fprintf(&b, "%spub struct %s: %s {\n", indent1, r.Name, e.Word)
		for _, f := range r.Fields {
			writeDoc(&b, f.Doc)
			fmt.Fprintf(&b, "%s[%02d..%02d] %s,\n", indent2, f.Start, f.End, f.Name)
		}
		fmt.Fprintf(&b, "%s}\n}\n", indent1)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDoc(b *strings.Builder, doc string) {
	if doc != "" {
		fmt.Fprintf(b, "%s/// %s\n", indent2, doc)
	}
}
