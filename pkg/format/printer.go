package format

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/treefmt/pkg/node"
)

// Printer renders whole node trees with a set of Options. Opts may be
// adjusted before the first render; after that a Printer holds no mutable
// state and may be shared between goroutines.
type Printer struct {
	Opts Options

	builder *Builder
}

// NewPrinter executes the printer with opts.
func NewPrinter(opts ...Option) (*Printer, error) {
	return NewPrinterWithOpts(newOptions(opts))
}

func NewPrinterWithOpts(opts *Options) (*Printer, error) {
	p := &Printer{Opts: *opts}
	if err := p.Opts.Normalize(); err != nil {
		return nil, err
	}
	p.builder = &Builder{opts: &p.Opts}
	return p, nil
}

// Decide builds n and chooses its layout.
func (p *Printer) Decide(n node.Node) Decided {
	return decide(p.builder.Build(n), p.Opts.budget, 0)
}

// Lines renders n as text lines.
func (p *Printer) Lines(n node.Node) []string {
	return appendLines(nil, p.Decide(n), 0, p.Opts.Indent)
}

// Format renders n as newline-terminated text.
func (p *Printer) Format(n node.Node) string {
	return strings.Join(p.Lines(n), "\n") + "\n"
}

// Print writes the lines of n to sink.
func (p *Printer) Print(sink Sink, n node.Node) {
	for _, line := range p.Lines(n) {
		sink.Write(line)
	}
}

// PrintAll renders roots concurrently, up to Opts.Workers at a time, and
// writes them to sink in root order.
func (p *Printer) PrintAll(ctx context.Context, sink Sink, roots []node.Node) error {
	rendered := make([][]string, len(roots))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.Opts.Workers)
	for i, n := range roots {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				rendered[i] = p.Lines(n)
				return nil
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, lines := range rendered {
		for _, line := range lines {
			sink.Write(line)
		}
	}
	return nil
}
