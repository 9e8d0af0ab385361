package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"omibyte.io/mmiogen/devices"
	"omibyte.io/mmiogen/emitter"
	"omibyte.io/mmiogen/fetch"
	"omibyte.io/mmiogen/generator"
	"omibyte.io/mmiogen/overrides"
)

var errNoStructName = errors.New("no structure name, use --device or --name")

// structOpts select the structure generated from a single header.
type structOpts struct {
	device    string
	name      string
	prefix    string
	doc       string
	overrides string
	noDefault bool
	userAgent string
}

func (o *structOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.device, "device", "d", "", "take the structure name, prefix and documentation from a known device")
	cmd.Flags().StringVarP(&o.name, "name", "n", "", "structure name")
	cmd.Flags().StringVarP(&o.prefix, "prefix", "p", "", "macro prefix removed from field names")
	cmd.Flags().StringVar(&o.doc, "doc", "", "documentation line of the generated file")
	cmd.Flags().StringVar(&o.overrides, "overrides", "", "YAML file with additional overrides")
	cmd.Flags().BoolVar(&o.noDefault, "no-default-overrides", false, "do not apply the built-in overrides")
	cmd.Flags().StringVar(&o.userAgent, "user-agent", fetch.DefaultUserAgent, "user agent used to download headers")
}

// config resolves the generator configuration. Explicit flags take precedence
// over the values of --device.
func (o *structOpts) config(cmd *cobra.Command) (generator.Config, error) {
	var cfg generator.Config

	// Start from the known device, if any
	if o.device != "" {
		dev, err := devices.Find(o.device)
		if err != nil {
			return cfg, err
		}
		cfg.Name, cfg.Prefix, cfg.Doc = dev.Name, dev.Prefix, dev.Doc
	}
	// Explicit flags win. An empty documentation is a valid choice, so --doc
	// is applied whenever it was given.
	if o.name != "" {
		cfg.Name = o.name
	}
	if o.prefix != "" {
		cfg.Prefix = o.prefix
	}
	if cmd.Flags().Changed("doc") {
		cfg.Doc = o.doc
	}
	if cfg.Name == "" {
		return cfg, errNoStructName
	}

	// Built-in overrides first, then the user file
	set, err := loadOverrides(o.overrides, o.noDefault)
	if err != nil {
		return cfg, err
	}
	cfg.Overrides = set
	cfg.Logger = scanLogger()
	return cfg, nil
}

// source returns the header to read: the argument, the header of --device, or
// the standard input.
func (o *structOpts) source(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if o.device != "" {
		if dev, err := devices.Find(o.device); err == nil {
			return dev.Header
		}
	}
	return "-"
}

// readHeader reads a header from a file, an http(s) URL or, for "-", stdin.
func (o *structOpts) readHeader(ctx context.Context, cmd *cobra.Command, src string) (io.Reader, error) {
	switch {
	case src == "-":
		return cmd.InOrStdin(), nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		f := fetch.New(time.Second)
		f.UserAgent = o.userAgent
		text, err := f.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		return strings.NewReader(text), nil
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, err
		}
		return strings.NewReader(string(data)), nil
	}
}

func loadOverrides(path string, noDefault bool) (*overrides.Set, error) {
	var sets []*overrides.Set
	if !noDefault {
		sets = append(sets, devices.Overrides())
	}
	if path != "" {
		set, err := overrides.Load(path)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return overrides.Merge(sets...), nil
}

// emitterOpts customize the syntax of the generated definitions.
type emitterOpts struct {
	structMacro string
	regMacro    string
	access      string
	word        string
}

func (o *emitterOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.structMacro, "struct-macro", emitter.Default.StructMacro, "macro defining structures")
	cmd.Flags().StringVar(&o.regMacro, "reg-macro", emitter.Default.RegMacro, "macro defining registers")
	cmd.Flags().StringVar(&o.access, "access", emitter.Default.Access, "access mode of structure fields")
	cmd.Flags().StringVar(&o.word, "word", emitter.Default.Word, "integer type of registers")
}

func (o *emitterOpts) emitter() (*emitter.Emitter, error) {
	e := &emitter.Emitter{
		StructMacro: o.structMacro,
		RegMacro:    o.regMacro,
		Access:      o.access,
		Word:        o.word,
	}
	if e.StructMacro == "" || e.RegMacro == "" || e.Access == "" || e.Word == "" {
		return nil, fmt.Errorf("empty emitter setting: %+v", *e)
	}
	return e, nil
}
