// Package model holds the MMIO structure built from a register header and the
// builder that assembles it from scanned declarations.
package model

// StructField is a register of the MMIO structure, at a byte offset.
type StructField struct {
	Index uint64
	Name  string
	Type  string
	Doc   string
}

// RegisterField is the half-open bit range [Start, End) of a register.
type RegisterField struct {
	Start uint
	End   uint
	Name  string
	Doc   string
}

// Register is the bit field layout of a structure field type.
type Register struct {
	Name   string
	Fields []RegisterField
}

// Struct is a complete MMIO structure: its fields in ascending offset order and
// the registers of its field types in discovery order.
type Struct struct {
	Name      string
	Doc       string
	Fields    []StructField
	Registers []*Register
}

// Overrides provides the manually curated entries merged into scanned
// structures.
type Overrides interface {
	// StructFields returns the fields added to the named structure.
	StructFields(structName string) []StructField

	// RegisterFields returns the bit fields placed before the scanned bit
	// fields of the named register.
	RegisterFields(typeName string) []RegisterField

	// Doc returns the documentation of a bit field, by normalized name.
	Doc(fieldName string) string
}
