// Package batch regenerates the definitions of a list of devices: each header
// is fetched, converted and written to <out>/<id>.rs.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"omibyte.io/mmiogen/devices"
	"omibyte.io/mmiogen/emitter"
	"omibyte.io/mmiogen/generator"
	"omibyte.io/mmiogen/header"
	"omibyte.io/mmiogen/model"
)

// Fetcher yields the text of a header.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Runner processes devices. Every device gets its own builder, devices can
// therefore be processed concurrently.
type Runner struct {
	Fetcher Fetcher
	OutDir  string

	// Ext is the extension of the written files, "rs" by default.
	Ext string

	// Jobs is the number of devices processed at once, 1 by default.
	Jobs int

	// FailFast cancels the remaining devices once a header cannot be parsed.
	// Download failures only skip the device.
	FailFast bool

	Overrides model.Overrides
	Emitter   *emitter.Emitter
	Logger    *log.Logger

	// Stdout receives one progress line per device. It may be nil.
	Stdout io.Writer

	mu sync.Mutex
}

// Result is the outcome of one device.
type Result struct {
	Device devices.Device

	// Path is the written file, empty on failure.
	Path string
	Err  error
}

// Run processes the devices and returns their results in the same order.
// Nothing is written for a device that fails.
func (r *Runner) Run(ctx context.Context, devs devices.Devices) []Result {
	results := make([]Result, len(devs))
	for i, dev := range devs {
		results[i].Device = dev
	}

	// Create the output directory once for every device
	if err := os.MkdirAll(r.OutDir, 0755); err != nil {
		for i := range results {
			results[i].Err = err
		}
		return results
	}

	jobs := r.Jobs
	if jobs < 1 {
		jobs = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range devs {
		i := i
		g.Go(func() error {
			res := &results[i]

			// Skip devices queued after a fail fast cancellation
			if err := ctx.Err(); err != nil {
				res.Err = err
				r.report(res)
				return nil
			}

			res.Path, res.Err = r.process(ctx, res.Device)
			r.report(res)

			// Only a header that cannot be parsed cancels the group, a download
			// failure never does
			var perr *header.ParseError
			if r.FailFast && errors.As(res.Err, &perr) {
				return res.Err
			}
			return nil
		})
	}
	// Failures are kept in the results, the group error is not needed
	g.Wait()

	return results
}

// Err combines the failures of results.
func Err(results []Result) error {
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Device.ID, res.Err))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) process(ctx context.Context, dev devices.Device) (string, error) {
	text, err := r.Fetcher.Fetch(ctx, dev.Header)
	if err != nil {
		return "", err
	}

	data, err := generator.Generate(strings.NewReader(text), generator.Config{
		Name:      dev.Name,
		Prefix:    dev.Prefix,
		Doc:       dev.Doc,
		Overrides: r.Overrides,
		Emitter:   r.Emitter,
		Logger:    r.deviceLogger(dev),
	})
	if err != nil {
		return "", err
	}

	ext := r.Ext
	if ext == "" {
		ext = "rs"
	}
	path := filepath.Join(r.OutDir, dev.ID+"."+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Runner) deviceLogger(dev devices.Device) *log.Logger {
	if r.Logger == nil {
		return nil
	}
	return log.New(r.Logger.Writer(), r.Logger.Prefix()+dev.ID+": ", r.Logger.Flags())
}

func (r *Runner) report(res *Result) {
	if r.Stdout == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if res.Err != nil {
		fmt.Fprintf(r.Stdout, "processing %s... error: %v\n", res.Device.ID, res.Err)
	} else {
		fmt.Fprintf(r.Stdout, "processing %s... done\n", res.Device.ID)
	}
}
