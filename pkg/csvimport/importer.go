// Package csvimport builds daybook stores out of comma-separated
// "date,title" text resources, feeding the store's build contract one
// parsed line at a time.
package csvimport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-daybook/pkg/daybook"
)

// Importer turns line-oriented resources into freshly built stores.
// Imports are atomic: either every line parses and the populated store
// comes back, or the first malformed line aborts the run and only the
// error comes back.
type Importer struct {
	logger *slog.Logger
}

type Option func(*Importer)

// WithLogger replaces the logger used for import run reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) {
		imp.logger = logger
	}
}

func New(opts ...Option) *Importer {
	imp := &Importer{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportFile opens the named file and imports its contents.
func (imp *Importer) ImportFile(name string) (daybook.Store, error) {
	f, err := os.Open(name)
	if err != nil {
		return daybook.Store{}, fmt.Errorf("open import resource: %w", err)
	}
	defer f.Close()

	return imp.run(name, f)
}

// Import reads r line by line and builds a store from it. The reader is
// consumed in a single forward pass and never buffered whole. On error
// the zero Store is returned.
func (imp *Importer) Import(r io.Reader) (daybook.Store, error) {
	return imp.run("stream", r)
}

func (imp *Importer) run(resource string, r io.Reader) (daybook.Store, error) {
	runID := uuid.New().String()
	started := time.Now()

	imp.logger.Info("import started", "run_id", runID, "resource", resource)

	src := &lineSource{reader: bufio.NewReader(r)}

	store, err := daybook.Collect(daybook.New(), src)
	if err != nil {
		imp.logger.Warn("import aborted", "run_id", runID, "resource", resource, "error", err)
		return daybook.Store{}, err
	}

	imp.logger.Info("import finished",
		"run_id", runID,
		"resource", resource,
		"entries", store.Len(),
		"elapsed", time.Since(started),
	)

	return store, nil
}

// lineSource adapts buffered line reads to the store's build contract:
// one raw entry per line, parse failures wrapped with the 1-based line
// number. Line length is unbounded; titles are opaque and may be huge.
type lineSource struct {
	reader *bufio.Reader
	line   int
	done   bool
}

var _ daybook.Source = (*lineSource)(nil)

func (ls *lineSource) Next() (daybook.RawEntry, error) {
	if ls.done {
		return daybook.RawEntry{}, io.EOF
	}

	text, err := ls.reader.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		// The final line may arrive without its terminator.
		ls.done = true
		if text == "" {
			return daybook.RawEntry{}, io.EOF
		}
	case err != nil:
		return daybook.RawEntry{}, fmt.Errorf("read line %d: %w", ls.line+1, err)
	}
	ls.line++

	raw, perr := ParseLine(text)
	if perr != nil {
		return daybook.RawEntry{}, fmt.Errorf("line %d: %w", ls.line, perr)
	}

	return raw, nil
}
