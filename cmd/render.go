package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/geotally/internal/chart"
	cfgpkg "github.com/KaramelBytes/geotally/internal/config"
	"github.com/KaramelBytes/geotally/internal/loader"
	"github.com/KaramelBytes/geotally/internal/report"
	"github.com/KaramelBytes/geotally/internal/tally"
)

var (
	renderColumn    int
	renderDelim     string
	renderSheetName string
	renderSheetIdx  int
	renderOutput    string
	renderMapType   string
	renderTitle     string
	renderSubtitle  string
	renderSeries    string
	renderMargin    int
	renderReport    bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Tally a label column and render the distribution as an HTML map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		if err := applyRenderFlags(cmd, c); err != nil {
			return err
		}
		// Pipeline failures are reported here and never surface as a
		// process error: partial or missing data ends the run, not the tool.
		runRender(args[0], c)
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderColumn, "column", 0, "zero-based column holding the label (overrides config)")
	renderCmd.Flags().StringVar(&renderDelim, "delimiter", "", "CSV delimiter: ','|';'|'tab' (overrides config)")
	renderCmd.Flags().StringVar(&renderSheetName, "sheet-name", "", "XLSX sheet name (overrides config)")
	renderCmd.Flags().IntVar(&renderSheetIdx, "sheet-index", 0, "XLSX sheet index, 1-based (overrides config)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output HTML path (overrides config)")
	renderCmd.Flags().StringVar(&renderMapType, "map", "", "geographic map type, e.g. china (overrides config)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "map title (overrides config)")
	renderCmd.Flags().StringVar(&renderSubtitle, "subtitle", "", "map subtitle (overrides config)")
	renderCmd.Flags().StringVar(&renderSeries, "series", "", "series name shown in tooltips (overrides config)")
	renderCmd.Flags().IntVar(&renderMargin, "scale-margin", -1, "margin added to the color-scale maximum (overrides config)")
	renderCmd.Flags().BoolVar(&renderReport, "report", false, "write a yaml run report next to the HTML output")
	rootCmd.AddCommand(renderCmd)
}

func applyRenderFlags(cmd *cobra.Command, c *cfgpkg.Global) error {
	f := cmd.Flags()
	if f.Changed("column") {
		if renderColumn < 0 {
			return fmt.Errorf("--column must be >= 0")
		}
		c.FieldIndex = renderColumn
	}
	if f.Changed("delimiter") {
		c.Delimiter = renderDelim
	}
	if _, err := delimRune(c.Delimiter); err != nil {
		return err
	}
	if f.Changed("sheet-name") {
		c.SheetName = renderSheetName
	}
	if f.Changed("sheet-index") {
		c.SheetIndex = renderSheetIdx
	}
	if f.Changed("output") {
		c.Output = renderOutput
	}
	if f.Changed("map") {
		c.MapType = renderMapType
	}
	if f.Changed("title") {
		c.Title = renderTitle
	}
	if f.Changed("subtitle") {
		c.Subtitle = renderSubtitle
	}
	if f.Changed("series") {
		c.SeriesName = renderSeries
	}
	if f.Changed("scale-margin") && renderMargin >= 0 {
		c.ScaleMargin = renderMargin
	}
	if f.Changed("report") {
		c.WriteReport = renderReport
	}
	return nil
}

func delimRune(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ",":
		return 0, nil // sniffed from extension
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'tab')", s)
	}
}

func loaderOptions(c *cfgpkg.Global) loader.Options {
	delim, _ := delimRune(c.Delimiter)
	return loader.Options{
		FieldIndex: c.FieldIndex,
		Delimiter:  delim,
		SheetName:  c.SheetName,
		SheetIndex: c.SheetIndex,
	}
}

// runRender executes one full load → tally → render pass. Every failure
// kind is recovered here with a human-readable message; the process always
// terminates normally.
func runRender(path string, c *cfgpkg.Global) {
	res, err := loader.Load(path, loaderOptions(c))
	partial := false
	if err != nil {
		var readErr *loader.ReadError
		if errors.As(err, &readErr) && len(res.Labels) > 0 {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %v; continuing with %d labels read before the failure\n", err, len(res.Labels))
			partial = true
		} else {
			fmt.Fprintln(os.Stderr, "✗", err)
			return
		}
	}
	fmt.Printf("✓ Loaded %d labels from %s (%d rows, %d short rows skipped, %d blank)\n",
		len(res.Labels), path, res.Rows, res.ShortRows, res.Blank)

	table, err := tally.Count(res.Labels)
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗", err)
		return
	}
	if debug {
		fmt.Printf("  %d distinct labels, max count %d\n", table.Distinct(), table.ScaleBound())
	}

	opt := chart.Options{
		MapType:     c.MapType,
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		SeriesName:  c.SeriesName,
		ScaleMargin: c.ScaleMargin,
		Width:       c.Width,
		Height:      c.Height,
	}
	if err := chart.WriteHTML(table, opt, c.Output); err != nil {
		fmt.Fprintln(os.Stderr, "✗", err)
		return
	}
	abs, err := filepath.Abs(c.Output)
	if err != nil {
		abs = c.Output
	}
	fmt.Printf("✓ Wrote map to %s (%d regions)\n", abs, table.Distinct())

	if c.WriteReport {
		rep := report.New(path, c.Output, res, table, partial)
		rpath := c.Output + ".report.yaml"
		if err := rep.Save(rpath); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: failed to write run report: %v\n", err)
			return
		}
		fmt.Printf("✓ Run %s recorded in %s\n", rep.ID, rpath)
	}
}
