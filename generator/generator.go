// Package generator runs the header to definitions pipeline: macros are
// scanned, assembled into an MMIO structure with the configured overrides and
// rendered by an emitter.
package generator

import (
	"bytes"
	"io"
	"log"

	"omibyte.io/mmiogen/emitter"
	"omibyte.io/mmiogen/header"
	"omibyte.io/mmiogen/model"
)

// Config describes the structure generated from one header. Nothing is shared
// between runs beyond what Config references, so headers can be generated
// concurrently as long as Overrides is not modified.
type Config struct {
	// Name is the name of the generated structure.
	Name string

	// Prefix is removed from field names, e.g. "PDS_".
	Prefix string

	// Doc is the documentation line of the generated file.
	Doc string

	Overrides model.Overrides

	// Emitter defaults to emitter.Default.
	Emitter *emitter.Emitter

	// Logger receives the declarations dropped while scanning. It may be nil.
	Logger *log.Logger
}

// Build scans the header read from r into a structure. A malformed macro value
// stops the scan with a *header.ParseError.
func Build(r io.Reader, cfg Config) (*model.Struct, error) {
	sc := header.NewScanner(r, cfg.Logger)
	b := model.NewBuilder(cfg.Name, cfg.Prefix, cfg.Overrides, cfg.Logger)
	for sc.Scan() {
		b.Handle(sc.Event())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return b.Finish(cfg.Doc), nil
}

// Generate returns the definitions of the header read from r. No output is
// returned when the header cannot be processed entirely.
func Generate(r io.Reader, cfg Config) ([]byte, error) {
	s, err := Build(r, cfg)
	if err != nil {
		return nil, err
	}

	e := cfg.Emitter
	if e == nil {
		e = &emitter.Default
	}

	var buf bytes.Buffer
	if err := e.Emit(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
