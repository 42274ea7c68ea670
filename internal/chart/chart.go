package chart

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KaramelBytes/geotally/internal/tally"
	"github.com/KaramelBytes/geotally/internal/utils"
)

// Options describes the presentation side of the rendered map. Value-to-color
// bounds are derived from the tally; everything else comes from config/flags.
type Options struct {
	MapType    string // geographic map identifier, e.g. "china"
	Title      string
	Subtitle   string
	SeriesName string
	// ScaleMargin is added to the tally maximum when setting the upper color
	// bound so the densest region stays short of full saturation.
	ScaleMargin int
	Width       string
	Height      string
}

// RenderError indicates the map document could not be produced or written.
type RenderError struct{ Err error }

func (e *RenderError) Error() string { return fmt.Sprintf("render map: %v", e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

// WriteHTML renders the choropleth for the given table and writes one
// self-contained HTML document to path. Labels the map engine does not
// recognize simply show as no-data regions; they are never dropped here.
func WriteHTML(t *tally.Table, o Options, path string) error {
	var buf bytes.Buffer
	if err := Render(t, o, &buf); err != nil {
		return &RenderError{Err: err}
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return &RenderError{Err: err}
	}
	return nil
}

// Render writes the chart document to w.
func Render(t *tally.Table, o Options, w io.Writer) error {
	m := charts.NewMap()
	m.RegisterMapType(o.MapType)
	m.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     o.Width,
			Height:    o.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    o.Title,
			Subtitle: o.Subtitle,
			Left:     "center",
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(t.ScaleBound() + o.ScaleMargin),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c}",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	data := make([]opts.MapData, 0, t.Distinct())
	for _, p := range t.Pairs() {
		data = append(data, opts.MapData{Name: p.Label, Value: float64(p.Count)})
	}
	m.AddSeries(o.SeriesName, data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return m.Render(w)
}
