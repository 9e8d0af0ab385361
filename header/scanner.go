package header

import (
	"bufio"
	"fmt"
	"io"
	"log"

	"omibyte.io/mmiogen/types"
)

const maxLineSize = 1 << 20

// maxBits bounds bit positions and lengths, far beyond any register width.
const maxBits = 1 << 16

type EventKind int

const (
	// OffsetEvent declares a new structure field and opens its register.
	OffsetEvent EventKind = iota + 1

	// BitFieldEvent declares a bit range of the currently open register.
	BitFieldEvent
)

// Event is a classified declaration found in a header.
type Event struct {
	Kind EventKind
	Line int

	// Name is the macro name without its _OFFSET or _LEN suffix.
	Name string

	// Offset is set for OffsetEvent.
	Offset uint64

	// Start and End delimit the half-open bit range of a BitFieldEvent.
	Start uint
	End   uint
}

// Scanner reads a header line by line and reports its offset and bit field
// declarations. A register context is opened by the first offset declaration
// and stays open until the next one; bit positions and lengths outside of a
// register context are ignored. A position still waiting for its length when
// the next register is declared is completed in that register.
type Scanner struct {
	sc     *bufio.Scanner
	logger *log.Logger
	line   int
	err    error
	event  Event

	open         bool
	pending      bool
	pendingStart uint
}

// NewScanner returns a scanner reading from r. Dropped declarations are
// reported to logger, which may be nil.
func NewScanner(r io.Reader, logger *log.Logger) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Scanner{
		sc:     sc,
		logger: logger,
	}
}

// Scan advances to the next declaration. It returns false at the end of the
// input or on the first error.
func (s *Scanner) Scan() bool {
	for s.err == nil && s.sc.Scan() {
		s.line++
		m, ok := Tokenize(s.sc.Text())
		if !ok {
			continue
		}
		m.Line = s.line
		if s.handle(m) {
			return true
		}
	}

	if s.err == nil {
		s.err = s.sc.Err()
	}
	return false
}

// Event returns the declaration found by the last call to Scan.
func (s *Scanner) Event() Event {
	return s.event
}

// Err returns the error that stopped the scanner, if any. Malformed values are
// reported as a *ParseError.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) handle(m Macro) bool {
	kind, base := Classify(m.Name)

	// An offset defined as itself is an include guard, not a register.
	if kind == KindOffset && m.Value != m.Name {
		offset, ok := s.parse(m)
		if !ok {
			return false
		}
		// A pending position is kept, the next length completes it in the
		// new register.
		s.open = true
		s.event = Event{
			Kind:   OffsetEvent,
			Line:   m.Line,
			Name:   base,
			Offset: uint64(offset),
		}
		return true
	}

	if !s.open {
		return false
	}

	switch kind {
	case KindPos:
		start, ok := s.parseBits(m)
		if !ok {
			return false
		}
		s.pending = true
		s.pendingStart = start
	case KindLen:
		if !s.pending {
			s.logf("line %d: ignoring %s, no matching position", m.Line, m.Name)
			return false
		}
		length, ok := s.parseBits(m)
		if !ok {
			return false
		}
		s.pending = false
		s.event = Event{
			Kind:  BitFieldEvent,
			Line:  m.Line,
			Name:  base,
			Start: s.pendingStart,
			End:   s.pendingStart + length,
		}
		return true
	}
	return false
}

func (s *Scanner) parse(m Macro) (types.Integer, bool) {
	v, err := types.ParseMacroInt(m.Value)
	if err != nil {
		s.err = &ParseError{
			Line:  m.Line,
			Macro: m.Name,
			Value: m.Value,
			Err:   err,
		}
		return 0, false
	}
	return v, true
}

// parseBits parses a bit position or length. Values above maxBits are
// rejected so that Start + Len cannot wrap around.
func (s *Scanner) parseBits(m Macro) (uint, bool) {
	v, ok := s.parse(m)
	if !ok {
		return 0, false
	}
	if v > maxBits {
		s.err = &ParseError{
			Line:  m.Line,
			Macro: m.Name,
			Value: m.Value,
			Err:   fmt.Errorf("%w: %d bits, at most %d", types.ErrOutOfRange, uint64(v), maxBits),
		}
		return 0, false
	}
	return uint(v), true
}

func (s *Scanner) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
