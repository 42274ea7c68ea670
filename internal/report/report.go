package report

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/geotally/internal/loader"
	"github.com/KaramelBytes/geotally/internal/tally"
	"github.com/KaramelBytes/geotally/internal/utils"
)

// Report captures the metadata of one render run. It is written as a yaml
// sidecar next to the HTML output so runs can be told apart later.
type Report struct {
	ID         string    `yaml:"id"`
	CreatedAt  time.Time `yaml:"created_at"`
	Source     string    `yaml:"source"`
	Output     string    `yaml:"output"`
	Rows       int       `yaml:"rows"`
	Counted    int       `yaml:"counted"`
	ShortRows  int       `yaml:"short_rows"`
	Blank      int       `yaml:"blank"`
	Distinct   int       `yaml:"distinct"`
	ScaleBound int       `yaml:"scale_bound"`
	// Partial marks runs that continued past a mid-read failure.
	Partial bool `yaml:"partial,omitempty"`
}

// New builds a report for one run from the loader and tally results.
func New(source, output string, res *loader.Result, t *tally.Table, partial bool) *Report {
	return &Report{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		Source:     source,
		Output:     output,
		Rows:       res.Rows,
		Counted:    t.Total(),
		ShortRows:  res.ShortRows,
		Blank:      res.Blank,
		Distinct:   t.Distinct(),
		ScaleBound: t.ScaleBound(),
		Partial:    partial,
	}
}

// Save writes the report to path as yaml.
func (r *Report) Save(path string) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Load reads a previously saved report.
func Load(path string) (*Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &r, nil
}
