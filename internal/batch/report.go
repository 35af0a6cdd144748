package batch

import (
	"sort"
	"time"

	"github.com/mfulz/landingroute/internal/atomicfile"
	"github.com/mfulz/landingroute/internal/config"
	"github.com/mfulz/landingroute/internal/route"
	"github.com/mfulz/landingroute/internal/termindex"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document written to output.report_file.
type Report struct {
	RunID      string                `yaml:"run_id"`
	StartedAt  time.Time             `yaml:"started_at"`
	Dataset    string                `yaml:"dataset"`
	Output     string                `yaml:"output"`
	RoutesFile string                `yaml:"routes_file"`
	IndexSize  int                   `yaml:"index_size"`
	Total      int                   `yaml:"total"`
	Succeeded  int                   `yaml:"succeeded"`
	Failed     int                   `yaml:"failed"`
	Errors     []ErrorCount          `yaml:"errors,omitempty"`
	Duplicates []termindex.Duplicate `yaml:"duplicates,omitempty"`
	Skipped    []string              `yaml:"skipped,omitempty"`
}

// ErrorCount is one line of the error breakdown.
type ErrorCount struct {
	Code  route.Code `yaml:"code"`
	Count int        `yaml:"count"`
}

// Breakdown returns the non-zero error counts sorted by code.
func (s *Summary) Breakdown() []ErrorCount {
	out := make([]ErrorCount, 0, len(s.Errors))
	for code, n := range s.Errors {
		if n > 0 {
			out = append(out, ErrorCount{Code: code, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// NewReport builds the report document for a finished run.
func NewReport(cfg *config.Config, sum *Summary) *Report {
	return &Report{
		RunID:      sum.RunID,
		StartedAt:  sum.StartedAt.UTC(),
		Dataset:    cfg.Dataset.Path,
		Output:     cfg.Dataset.Output,
		RoutesFile: cfg.Output.RoutesFile,
		IndexSize:  sum.IndexSize,
		Total:      sum.Total,
		Succeeded:  sum.Succeeded,
		Failed:     sum.Failed,
		Errors:     sum.Breakdown(),
		Duplicates: sum.Duplicates,
		Skipped:    sum.Skipped,
	}
}

// WriteReport marshals the run report as YAML and writes it atomically.
func WriteReport(path string, cfg *config.Config, sum *Summary) error {
	data, err := yaml.Marshal(NewReport(cfg, sum))
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, 0o644)
}
