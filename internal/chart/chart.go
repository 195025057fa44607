// Package chart renders dashboard panels with go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	ErrUnknownKind   = errors.New("unknown chart kind")
	ErrUnknownFormat = errors.New("unknown image format")
	ErrNoData        = errors.New("panel has no data to draw")
)

type Kind string

const (
	KindDistribution Kind = "distribution"
	KindProportion   Kind = "proportion"
	KindStacked      Kind = "stacked"
	KindMeans        Kind = "means"
	KindCategories   Kind = "categories"
	KindRadar        Kind = "radar"
)

// Kinds lists every panel in dashboard menu order.
var Kinds = []Kind{KindDistribution, KindProportion, KindStacked, KindMeans, KindCategories, KindRadar}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg"; empty means png.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) provider() gochart.RendererProvider {
	if f == SVG {
		return gochart.SVG
	}
	return gochart.PNG
}

// ContentType is the MIME type of the rendered image.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Value is one labelled bar, slice or radar spoke.
type Value struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Stack is one stacked bar (a question) made of per-code segments.
type Stack struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// Panel is the data for one dashboard chart.
type Panel struct {
	Kind   Kind    `json:"kind"`
	Title  string  `json:"title"`
	Values []Value `json:"values,omitempty"`
	Stacks []Stack `json:"stacks,omitempty"`
	// AxisMax fixes the value axis upper bound; zero means derive it from the data.
	AxisMax float64 `json:"axis_max,omitempty"`
}

const (
	defaultWidth  = 960
	defaultHeight = 540
)

// Render draws p to w in the given format.
func Render(w io.Writer, p Panel, f Format) error {
	var err error
	switch p.Kind {
	case KindDistribution, KindMeans, KindCategories:
		err = renderBar(w, p, f)
	case KindProportion:
		err = renderPie(w, p, f)
	case KindStacked:
		err = renderStacked(w, p, f)
	case KindRadar:
		err = renderRadar(w, p, f)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", p.Kind, err)
	}
	return nil
}

func styled(v Value, i int) gochart.Value {
	out := gochart.Value{Label: v.Label, Value: v.Value}
	if v.Color != "" {
		c := drawing.ColorFromHex(strings.TrimPrefix(v.Color, "#"))
		out.Style = gochart.Style{FillColor: c, StrokeColor: c}
	} else {
		c := gochart.GetDefaultColor(i)
		out.Style = gochart.Style{FillColor: c, StrokeColor: c}
	}
	return out
}

func axisMax(p Panel, values []float64) float64 {
	if p.AxisMax > 0 {
		return p.AxisMax
	}
	m := 0.0
	for _, v := range values {
		m = math.Max(m, v)
	}
	if m == 0 {
		return 1
	}
	return math.Ceil(m * 1.1)
}

func renderBar(w io.Writer, p Panel, f Format) error {
	if len(p.Values) == 0 {
		return ErrNoData
	}
	bars := make([]gochart.Value, len(p.Values))
	raw := make([]float64, len(p.Values))
	for i, v := range p.Values {
		bars[i] = styled(v, i)
		raw[i] = v.Value
	}

	barWidth := (defaultWidth - 120) / (2 * len(bars))
	if barWidth > 80 {
		barWidth = 80
	}
	if barWidth < 8 {
		barWidth = 8
	}

	c := gochart.BarChart{
		Title:      p.Title,
		Width:      defaultWidth,
		Height:     defaultHeight,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: axisMax(p, raw)},
		},
		Bars: bars,
	}
	return c.Render(f.provider(), w)
}

func renderPie(w io.Writer, p Panel, f Format) error {
	var slices []gochart.Value
	var total float64
	for _, v := range p.Values {
		total += v.Value
	}
	for i, v := range p.Values {
		if v.Value <= 0 {
			continue
		}
		s := styled(v, i)
		s.Label = fmt.Sprintf("%s %.1f%%", v.Label, v.Value/total*100)
		slices = append(slices, s)
	}
	if len(slices) == 0 {
		return ErrNoData
	}

	c := gochart.PieChart{
		Title:  p.Title,
		Width:  defaultHeight,
		Height: defaultHeight,
		Values: slices,
	}
	return c.Render(f.provider(), w)
}

func renderStacked(w io.Writer, p Panel, f Format) error {
	bars, legend, peak := stackBars(p)
	if peak <= 0 {
		return ErrNoData
	}

	barWidth := (defaultWidth-200)/len(bars) - stackSpacing
	barWidth = max(8, min(barWidth, 60))
	for i := range bars {
		bars[i].Width = barWidth
	}

	c := gochart.StackedBarChart{
		Title:      fmt.Sprintf("%s (full height = %.0f)", p.Title, peak),
		Width:      defaultWidth,
		Height:     defaultHeight,
		BarSpacing: stackSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      gochart.Style{Hidden: true},
		Bars:       bars,
		Elements:   []gochart.Renderable{stackLegend(legend)},
	}
	return c.Render(f.provider(), w)
}

// stackBars converts stacks to go-chart bars plus one legend entry per label.
// go-chart scales each bar by its own sum, so every bar leads with a
// transparent segment topping it up to the peak total.
func stackBars(p Panel) ([]gochart.StackedBar, []gochart.Value, float64) {
	totals := make([]float64, len(p.Stacks))
	peak := 0.0
	for i, s := range p.Stacks {
		for _, v := range s.Values {
			totals[i] += v.Value
		}
		peak = math.Max(peak, totals[i])
	}

	spacer := gochart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent}
	var legend []gochart.Value
	seen := make(map[string]bool)
	bars := make([]gochart.StackedBar, len(p.Stacks))
	for i, s := range p.Stacks {
		vals := []gochart.Value{{Value: peak - totals[i], Style: spacer}}
		for j, v := range s.Values {
			seg := styled(v, j)
			if !seen[v.Label] {
				seen[v.Label] = true
				legend = append(legend, seg)
			}
			if v.Value <= 0 {
				continue
			}
			seg.Label = ""
			vals = append(vals, seg)
		}
		bars[i] = gochart.StackedBar{Name: s.Name, Values: vals}
	}
	return bars, legend, peak
}

const stackSpacing = 12

// stackLegend lists the segment colors to the right of the bars.
func stackLegend(entries []gochart.Value) gochart.Renderable {
	return func(r gochart.Renderer, cb gochart.Box, defaults gochart.Style) {
		x, y := cb.Right+24, cb.Top
		for _, e := range entries {
			gochart.Draw.Box(r, gochart.Box{Top: y, Left: x, Right: x + 12, Bottom: y + 12}, e.Style)
			// Draw.Box resets the text style.
			r.SetFont(defaults.GetFont())
			r.SetFontSize(10)
			r.SetFontColor(gochart.DefaultTextColor)
			r.Text(e.Label, x+18, y+11)
			y += 20
		}
	}
}
