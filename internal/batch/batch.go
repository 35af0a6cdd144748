// Package batch runs a full resolution pass over a dataset: it builds the
// term index, resolves every row in input order, replaces the route column,
// and writes the updated table, the route list, and an optional report.
//
// Row failures become data in the output. Only an unreadable dataset, a
// missing required column, or a locked output stop the run, and in those
// cases no output file is touched.
package batch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mfulz/landingroute/internal/atomicfile"
	"github.com/mfulz/landingroute/internal/config"
	"github.com/mfulz/landingroute/internal/dataset"
	"github.com/mfulz/landingroute/internal/logging"
	"github.com/mfulz/landingroute/internal/route"
	"github.com/mfulz/landingroute/internal/termindex"
	"github.com/spf13/afero"
)

// ErrOutputLocked is returned when an output file is held open elsewhere.
var ErrOutputLocked = errors.New("output file is locked; close it and run again")

// Options controls a single run.
type Options struct {
	DryRun bool // resolve and summarize, write nothing
}

// Summary describes the outcome of a run.
type Summary struct {
	RunID      string
	Total      int
	Succeeded  int
	Failed     int
	Errors     map[route.Code]int
	IndexSize  int
	Duplicates []termindex.Duplicate
	Skipped    []string
	Routes     []string
	Cells      []string
	StartedAt  time.Time
	Duration   time.Duration
}

// Run executes the batch described by cfg. Inputs are read through fsys;
// outputs are always written to the real filesystem so locks can be probed.
func Run(fsys afero.Fs, cfg *config.Config, opts Options) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sum := &Summary{
		RunID:     uuid.NewString(),
		Errors:    make(map[route.Code]int),
		StartedAt: time.Now(),
	}
	log := logging.Log.With("run", sum.RunID)

	idx, err := termindex.Build(fsys, cfg.Sources.Extension, cfg.IndexSources()...)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	sum.IndexSize = idx.Len()
	sum.Duplicates = idx.Duplicates()
	sum.Skipped = idx.Skipped()
	log.Infof("[landingroute] Found %d configuration files", idx.Len())
	for _, p := range idx.Skipped() {
		log.Warnw("[landingroute] skipped unreadable path while indexing", "path", p)
	}
	if cfg.Sources.ReportDuplicates {
		for _, d := range sum.Duplicates {
			log.Warnw("[landingroute] duplicate term configuration", "term", d.Term, "kept", d.Kept, "shadowed", d.Shadowed)
		}
	}

	tbl, err := dataset.Load(fsys, cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	termCol, err := tbl.Column(cfg.Dataset.TermColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dataset.ErrUnreadable, err)
	}
	entityCol, err := tbl.Column(cfg.Dataset.EntityColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dataset.ErrUnreadable, err)
	}
	log.Infof("[landingroute] Processing %d rows from %s", tbl.Len(), cfg.Dataset.Path)

	resolver := route.NewResolver(fsys, idx, cfg.RouteOptions())
	sum.Cells = make([]string, tbl.Len())
	for i := range tbl.Records {
		term := tbl.Value(i, termCol)
		entity := tbl.Value(i, entityCol)

		res := resolver.Resolve(term, entity)
		sum.Cells[i] = res.Cell()
		if res.OK() {
			sum.Routes = append(sum.Routes, res.Path)
			log.Debugw("[landingroute] resolved", "row", i, "term", term, "entity", entity, "route", res.Path)
			continue
		}
		sum.Errors[res.Err.Code]++
		log.Debugw("[landingroute] unresolved", "row", i, "term", term, "entity", entity, "error", res.Err.Error())
	}
	sum.Total = tbl.Len()
	sum.Succeeded = len(sum.Routes)
	sum.Failed = sum.Total - sum.Succeeded

	if err := tbl.SetColumn(cfg.Dataset.RouteColumn, sum.Cells); err != nil {
		return nil, err
	}

	defer func() { sum.Duration = time.Since(sum.StartedAt) }()
	if opts.DryRun {
		log.Infoln("[landingroute] Dry run, no files written")
		return sum, nil
	}

	if err := writeOutputs(cfg, tbl, sum); err != nil {
		return nil, err
	}
	return sum, nil
}

func writeOutputs(cfg *config.Config, tbl *dataset.Table, sum *Summary) error {
	targets := []string{cfg.Dataset.Output, cfg.Output.RoutesFile}
	if cfg.Output.ReportFile != "" {
		targets = append(targets, cfg.Output.ReportFile)
	}
	for _, p := range targets {
		if err := atomicfile.Probe(p); err != nil {
			return lockedOr(err)
		}
	}

	data, err := tbl.Encode()
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := atomicfile.WriteFile(cfg.Dataset.Output, data, 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", cfg.Dataset.Output, lockedOr(err))
	}
	logging.Log.Infof("[landingroute] Updated dataset saved to %s", cfg.Dataset.Output)

	if err := atomicfile.WriteFile(cfg.Output.RoutesFile, []byte(RouteList(sum.Routes)), 0o644); err != nil {
		return fmt.Errorf("write routes %s: %w", cfg.Output.RoutesFile, lockedOr(err))
	}
	logging.Log.Infof("[landingroute] %d routes saved to %s", len(sum.Routes), cfg.Output.RoutesFile)

	if cfg.Output.ReportFile != "" {
		if err := WriteReport(cfg.Output.ReportFile, cfg, sum); err != nil {
			return fmt.Errorf("write report %s: %w", cfg.Output.ReportFile, lockedOr(err))
		}
	}
	return nil
}

// lockedOr maps lock errors to ErrOutputLocked and passes the rest through.
func lockedOr(err error) error {
	if errors.Is(err, atomicfile.ErrLocked) {
		return fmt.Errorf("%w (%w)", ErrOutputLocked, err)
	}
	return err
}

// RouteList renders routes one per line.
func RouteList(routes []string) string {
	var b strings.Builder
	for _, r := range routes {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	return b.String()
}
