package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidValue = errors.New("invalid macro integer value")
	ErrOutOfRange   = errors.New("macro integer value out of range")
)

// Integer is an unsigned value written the way register headers write them:
// a bare decimal or a 0x prefixed hexadecimal literal, optionally wrapped in
// parentheses and carrying an unsigned suffix, e.g. "(0x004U)".
type Integer uint64

// ParseMacroInt parses the value token of a macro definition.
func ParseMacroInt(v string) (Integer, error) {
	s := strings.Trim(v, "()uU")

	var (
		value uint64
		err   error
	)
	if strings.HasPrefix(s, "0x") {
		value, err = strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	} else {
		value, err = strconv.ParseUint(s, 10, 64)
	}

	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidValue, v)
	}
	return Integer(value), nil
}

func (i *Integer) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: expected a scalar", node.Line, ErrInvalidValue)
	}

	value, err := ParseMacroInt(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*i = value
	return nil
}
