package gradebook

import "github.com/rs/zerolog"

// DefaultKeepSheets are the sheets retained in the checker workbook.
var DefaultKeepSheets = []string{"MidTerm", "MET", "Midterm"}

// Options holds configuration for the Processor.
type Options struct {
	logger             zerolog.Logger
	strategy           Strategy
	descriptor         *Descriptor
	keepSheets         []string
	advisorPlaceholder string
	strictRegions      bool
	workers            int
	locate             LocateOptions
	columns            *ColumnLayout
}

func defaultOptions() *Options {
	return &Options{
		logger:     zerolog.Nop(),
		strategy:   InsertAtBoundary,
		keepSheets: DefaultKeepSheets,
		workers:    1,
		locate:     DefaultLocateOptions(),
	}
}

// Option configures the Processor.
type Option func(*Options)

// WithLogger sets the logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithStrategy sets where rows are inserted when a region grows (default: InsertAtBoundary).
func WithStrategy(s Strategy) Option {
	return func(o *Options) { o.strategy = s }
}

// WithDescriptor pins sheet layouts from a template descriptor.
// The descriptor's keep_sheets and columns, when set, replace the defaults.
func WithDescriptor(d *Descriptor) Option {
	return func(o *Options) { o.descriptor = d }
}

// WithKeepSheets sets the sheet titles retained in the checker workbook.
func WithKeepSheets(names ...string) Option {
	return func(o *Options) { o.keepSheets = names }
}

// WithAdvisorPlaceholder sets the advisor name used when the roster has none (default: "").
func WithAdvisorPlaceholder(name string) Option {
	return func(o *Options) { o.advisorPlaceholder = name }
}

// WithStrictRegions fails a class when a sheet's region was neither found
// nor pinned, instead of resizing the fallback region.
func WithStrictRegions(strict bool) Option {
	return func(o *Options) { o.strictRegions = strict }
}

// WithWorkers sets how many classes ProcessBatch handles at once (default: 1).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithLocateOptions replaces the region heuristics.
func WithLocateOptions(lo LocateOptions) Option {
	return func(o *Options) { o.locate = lo }
}

// WithColumns sets the primary-sheet columns receiving roster data.
func WithColumns(c ColumnLayout) Option {
	return func(o *Options) { o.columns = &c }
}

// keep returns the effective checker keep-list.
func (o *Options) keep() []string {
	if o.descriptor != nil && len(o.descriptor.KeepSheets) > 0 {
		return o.descriptor.KeepSheets
	}
	return o.keepSheets
}

// layout returns the effective data column layout.
func (o *Options) layout() ColumnLayout {
	switch {
	case o.columns != nil:
		return *o.columns
	case o.descriptor != nil:
		return o.descriptor.Columns
	default:
		return DefaultColumnLayout()
	}
}
