package main

import (
	"os"

	"github.com/spf13/cobra"

	"omibyte.io/mmiogen/generator"
)

var (
	convertOpts = struct {
		structOpts
		emitter emitterOpts
		output  string
	}{}

	convertCmd = &cobra.Command{
		Use:   "convert [HEADER]",
		Short: "Convert a single header",
		Long: `Convert a single header read from a file, an http(s) URL or the standard
input. Without HEADER, the header of --device is downloaded, or the standard
input is read if no device is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := convertOpts.config(cmd)
			if err != nil {
				return err
			}
			if cfg.Emitter, err = convertOpts.emitter.emitter(); err != nil {
				return err
			}

			r, err := convertOpts.readHeader(cmd.Context(), cmd, convertOpts.source(args))
			if err != nil {
				return err
			}
			data, err := generator.Generate(r, cfg)
			if err != nil {
				return err
			}

			if convertOpts.output == "" || convertOpts.output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(convertOpts.output, data, 0644)
		},
	}
)

func init() {
	convertOpts.addFlags(convertCmd)
	convertOpts.emitter.addFlags(convertCmd)
	convertCmd.Flags().StringVarP(&convertOpts.output, "output", "o", "", "output file, stdout by default")
}
