package model

import (
	"log"

	"golang.org/x/exp/slices"

	"omibyte.io/mmiogen/header"
	"omibyte.io/mmiogen/ident"
)

// Builder accumulates the declarations of one header into a Struct.
type Builder struct {
	name      string
	prefix    string
	overrides Overrides
	logger    *log.Logger

	fields    []StructField
	registers []*Register
	byType    map[string]int
	current   *Register
}

// NewBuilder returns a builder for the structure name, whose macros share the
// given prefix. The structure field overrides are added right away so that they
// are sorted along with the scanned fields. overrides and logger may be nil.
func NewBuilder(name, prefix string, overrides Overrides, logger *log.Logger) *Builder {
	b := &Builder{
		name:      name,
		prefix:    prefix,
		overrides: overrides,
		logger:    logger,
		byType:    map[string]int{},
	}
	if overrides != nil {
		b.fields = append(b.fields, overrides.StructFields(name)...)
	}
	return b
}

// Handle dispatches a scanned event.
func (b *Builder) Handle(ev header.Event) {
	switch ev.Kind {
	case header.OffsetEvent:
		b.Offset(ev)
	case header.BitFieldEvent:
		b.BitField(ev)
	}
}

// Offset adds a structure field and opens the register of its type.
func (b *Builder) Offset(ev header.Event) {
	field := StructField{
		Index: ev.Offset,
		Name:  ident.FieldName(ev.Name, b.prefix),
		Type:  ident.TypeName(ev.Name, b.name),
	}
	b.fields = append(b.fields, field)

	reg := &Register{Name: field.Type}
	if b.overrides != nil {
		reg.Fields = append(reg.Fields, b.overrides.RegisterFields(field.Type)...)
	}

	// A type declared twice keeps its first position with the latest layout.
	if i, ok := b.byType[field.Type]; ok {
		b.logf("line %d: register %s redeclared, replacing its bit fields", ev.Line, field.Type)
		b.registers[i] = reg
	} else {
		b.byType[field.Type] = len(b.registers)
		b.registers = append(b.registers, reg)
	}
	b.current = reg
}

// BitField adds a bit field to the open register, if any.
func (b *Builder) BitField(ev header.Event) {
	if b.current == nil {
		return
	}

	field := RegisterField{
		Start: ev.Start,
		End:   ev.End,
		Name:  ident.BitFieldName(ev.Name, b.prefix),
	}
	if b.overrides != nil {
		field.Doc = b.overrides.Doc(field.Name)
	}
	b.current.Fields = append(b.current.Fields, field)
}

// Finish returns the built structure. Fields are sorted by index; fields
// sharing an index keep their insertion order.
func (b *Builder) Finish(doc string) *Struct {
	fields := slices.Clone(b.fields)
	slices.SortStableFunc(fields, func(a, b StructField) bool {
		return a.Index < b.Index
	})

	return &Struct{
		Name:      b.name,
		Doc:       doc,
		Fields:    fields,
		Registers: slices.Clone(b.registers),
	}
}

func (b *Builder) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Printf(format, args...)
	}
}
