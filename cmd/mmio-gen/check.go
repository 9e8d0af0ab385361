package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/mmiogen/generator"
	"omibyte.io/mmiogen/model"
)

var errCheckFailed = errors.New("check failed")

var (
	checkOpts = struct {
		structOpts
		width uint
	}{}

	checkCmd = &cobra.Command{
		Use:   "check [HEADER]",
		Short: "Report overlapping and out of range bit fields",
		Long: `Build the structure of a header and report, per register, the bit fields
sharing bits (aliases) and the bit fields that do not fit in a register.
The command fails if a bit field is out of range.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := checkOpts.config(cmd)
			if err != nil {
				return err
			}
			r, err := checkOpts.readHeader(cmd.Context(), cmd, checkOpts.source(args))
			if err != nil {
				return err
			}
			s, err := generator.Build(r, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := false
			for _, reg := range s.Registers {
				for _, group := range model.Overlaps(reg) {
					fmt.Fprintf(out, "%s: overlapping bit fields %s\n", reg.Name, formatFields(group))
				}
				if fields := model.OutOfRange(reg, checkOpts.width); len(fields) > 0 {
					fmt.Fprintf(out, "%s: bit fields out of range %s\n", reg.Name, formatFields(fields))
					failed = true
				}
			}
			fmt.Fprintf(out, "%s: %d fields, %d registers\n", s.Name, len(s.Fields), len(s.Registers))

			if failed {
				return errCheckFailed
			}
			return nil
		},
	}
)

func formatFields(fields []model.RegisterField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s[%d..%d]", f.Name, f.Start, f.End)
	}
	return strings.Join(parts, ", ")
}

func init() {
	checkOpts.addFlags(checkCmd)
	checkCmd.Flags().UintVar(&checkOpts.width, "width", 32, "register width in bits")
}
