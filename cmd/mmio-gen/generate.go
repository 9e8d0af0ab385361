package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"omibyte.io/mmiogen/batch"
	"omibyte.io/mmiogen/devices"
	"omibyte.io/mmiogen/fetch"
)

var (
	generateOpts = struct {
		jobs      int
		only      string
		overrides string
		noDefault bool
		failFast  bool
		interval  time.Duration
		userAgent string
		ext       string
		emitter   emitterOpts
	}{}

	generateCmd = &cobra.Command{
		Use:   "generate OUT_DIR",
		Short: "Download and convert the headers of the known devices",
		Long: `Download the header of every known device, or of the devices given with
--only, and write the definitions of each one to OUT_DIR/<id>.rs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			devs := devices.All()
			if len(generateOpts.only) > 0 {
				var err error
				if devs, err = devs.Select(strings.Split(generateOpts.only, ",")...); err != nil {
					return err
				}
			}

			set, err := loadOverrides(generateOpts.overrides, generateOpts.noDefault)
			if err != nil {
				return err
			}
			e, err := generateOpts.emitter.emitter()
			if err != nil {
				return err
			}

			f := fetch.New(generateOpts.interval)
			f.UserAgent = generateOpts.userAgent

			r := &batch.Runner{
				Fetcher:   f,
				OutDir:    args[0],
				Ext:       generateOpts.ext,
				Jobs:      generateOpts.jobs,
				FailFast:  generateOpts.failFast,
				Overrides: set,
				Emitter:   e,
				Logger:    scanLogger(),
				Stdout:    cmd.OutOrStdout(),
			}
			return batch.Err(r.Run(cmd.Context(), devs))
		},
	}
)

func init() {
	generateCmd.Flags().IntVarP(&generateOpts.jobs, "jobs", "j", 1, "number of headers processed at once")
	generateCmd.Flags().StringVar(&generateOpts.only, "only", "", "comma separated device identifiers")
	generateCmd.Flags().StringVar(&generateOpts.overrides, "overrides", "", "YAML file with additional overrides")
	generateCmd.Flags().BoolVar(&generateOpts.noDefault, "no-default-overrides", false, "do not apply the built-in overrides")
	generateCmd.Flags().BoolVar(&generateOpts.failFast, "fail-fast", false, "stop at the first header that cannot be parsed")
	generateCmd.Flags().DurationVar(&generateOpts.interval, "interval", time.Second, "minimum delay between two downloads")
	generateCmd.Flags().StringVar(&generateOpts.userAgent, "user-agent", fetch.DefaultUserAgent, "user agent used to download headers")
	generateCmd.Flags().StringVar(&generateOpts.ext, "ext", "rs", "extension of the written files")
	generateOpts.emitter.addFlags(generateCmd)
}
