package gradebook

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one class in a batch. Exactly one of Output and
// Err is set.
type Result struct {
	Class  string
	Output *Output
	Err    error
}

// ProcessBatch processes every class against the same template bytes.
//
// A failing class never stops the others: its Result carries a *ClassError and
// the returned error joins all class errors. Results are in the order of
// classes. Up to WithWorkers classes run at once, each on its own parse of the
// template. Classes not yet started when ctx is cancelled fail with ctx.Err().
func (p *Processor) ProcessBatch(ctx context.Context, template []byte, classes []ClassRoster, module string) ([]Result, error) {
	results := make([]Result, len(classes))

	var g errgroup.Group
	g.SetLimit(p.opts.workers)
	for i, c := range classes {
		g.Go(func() error {
			results[i].Class = c.Class
			if err := ctx.Err(); err != nil {
				results[i].Err = &ClassError{Class: c.Class, Err: err}
				return nil
			}
			out, err := p.Process(ctx, template, c.Class, c.Students, module)
			if err != nil {
				p.opts.logger.Error().Err(err).Str("class", c.Class).Msg("class failed")
				results[i].Err = err
				return nil
			}
			results[i].Output = out
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}
