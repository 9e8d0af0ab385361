package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	mainOpts = struct {
		verbose bool
	}{}

	mainCmd = &cobra.Command{
		Use:   "mmio-gen",
		Short: "Generate MMIO definitions from C register headers",
		Long: `mmio-gen converts the #define register headers of vendor SDKs into
embedded_util::mmio! structures and embedded_util::reg! registers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	mainCmd.PersistentFlags().BoolVarP(&mainOpts.verbose, "verbose", "v", false, "report the declarations dropped while scanning headers")

	mainCmd.AddCommand(generateCmd, convertCmd, checkCmd, listCmd)
}

// scanLogger returns the logger receiving scanner diagnostics.
func scanLogger() *log.Logger {
	if !mainOpts.verbose {
		return nil
	}
	return log.New(os.Stderr, "", 0)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("mmio-gen: ")

	if err := mainCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
