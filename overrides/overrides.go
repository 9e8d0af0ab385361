// Package overrides holds the manually curated entries merged into the
// structures scanned from register headers: structure field aliases, extra
// register bit fields and bit field documentation.
package overrides

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"omibyte.io/mmiogen/model"
	"omibyte.io/mmiogen/types"
)

var ErrInvalidOverride = errors.New("invalid override")

type StructField struct {
	Index types.Integer `yaml:"index"`
	Name  string        `yaml:"name"`
	Type  string        `yaml:"type"`
	Doc   string        `yaml:"doc"`
}

type RegisterField struct {
	Start uint   `yaml:"start"`
	End   uint   `yaml:"end"`
	Name  string `yaml:"name"`
	Doc   string `yaml:"doc"`
}

// Set is a collection of override tables. The zero value and the nil pointer
// are empty sets.
type Set struct {
	// Structs maps a structure name to the fields added to it.
	Structs map[string][]StructField `yaml:"structs"`

	// Registers maps a register type name to the bit fields placed before
	// its scanned bit fields.
	Registers map[string][]RegisterField `yaml:"registers"`

	// Docs maps a normalized bit field name to its documentation, for every
	// register.
	Docs map[string]string `yaml:"docs"`
}

// Parse decodes a YAML override set.
func Parse(data []byte) (*Set, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	s := &Set{}
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a YAML override set from a file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks that every entry is named and that bit ranges are not empty.
func (s *Set) Validate() error {
	if s == nil {
		return nil
	}

	var errs []error
	for _, structName := range sortedKeys(s.Structs) {
		for _, f := range s.Structs[structName] {
			if f.Name == "" || f.Type == "" {
				errs = append(errs, fmt.Errorf("%w: field of %s at %#x needs a name and a type", ErrInvalidOverride, structName, uint64(f.Index)))
			}
		}
	}
	for _, typeName := range sortedKeys(s.Registers) {
		for _, f := range s.Registers[typeName] {
			if f.Name == "" {
				errs = append(errs, fmt.Errorf("%w: unnamed bit field [%d..%d] in %s", ErrInvalidOverride, f.Start, f.End, typeName))
			}
			if f.Start >= f.End {
				errs = append(errs, fmt.Errorf("%w: empty bit range [%d..%d] of %s.%s", ErrInvalidOverride, f.Start, f.End, typeName, f.Name))
			}
		}
	}
	return errors.Join(errs...)
}

// Merge combines sets in order. Structure and register entries accumulate;
// a documentation string of a later set replaces an earlier one.
func Merge(sets ...*Set) *Set {
	merged := &Set{
		Structs:   map[string][]StructField{},
		Registers: map[string][]RegisterField{},
		Docs:      map[string]string{},
	}
	for _, s := range sets {
		if s == nil {
			continue
		}
		for name, fields := range s.Structs {
			merged.Structs[name] = append(merged.Structs[name], fields...)
		}
		for name, fields := range s.Registers {
			merged.Registers[name] = append(merged.Registers[name], fields...)
		}
		for name, doc := range s.Docs {
			merged.Docs[name] = doc
		}
	}
	return merged
}

func (s *Set) StructFields(structName string) []model.StructField {
	if s == nil || len(s.Structs[structName]) == 0 {
		return nil
	}

	entries := s.Structs[structName]
	fields := make([]model.StructField, len(entries))
	for i, e := range entries {
		fields[i] = model.StructField{
			Index: uint64(e.Index),
			Name:  e.Name,
			Type:  e.Type,
			Doc:   e.Doc,
		}
	}
	return fields
}

func (s *Set) RegisterFields(typeName string) []model.RegisterField {
	if s == nil || len(s.Registers[typeName]) == 0 {
		return nil
	}

	entries := s.Registers[typeName]
	fields := make([]model.RegisterField, len(entries))
	for i, e := range entries {
		fields[i] = model.RegisterField{
			Start: e.Start,
			End:   e.End,
			Name:  e.Name,
			Doc:   e.Doc,
		}
	}
	return fields
}

func (s *Set) Doc(fieldName string) string {
	if s == nil {
		return ""
	}
	return s.Docs[fieldName]
}
