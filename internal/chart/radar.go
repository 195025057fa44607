package chart

import (
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MinRadarSpokes is the fewest values a radar panel can draw.
const MinRadarSpokes = 3

const ringSegments = 72

// RadarPoints projects values onto unit-radius spokes, starting at twelve
// o'clock and going clockwise. The first point is repeated to close the polygon.
func RadarPoints(values []float64, limit float64) (xs, ys []float64) {
	n := len(values)
	if n == 0 || limit <= 0 {
		return nil, nil
	}
	xs = make([]float64, 0, n+1)
	ys = make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		v := values[i%n] / limit
		theta := spokeAngle(i%n, n)
		xs = append(xs, v*math.Cos(theta))
		ys = append(ys, v*math.Sin(theta))
	}
	return xs, ys
}

func spokeAngle(i, n int) float64 {
	return math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
}

func ring(r float64) ([]float64, []float64) {
	xs := make([]float64, ringSegments+1)
	ys := make([]float64, ringSegments+1)
	for i := 0; i <= ringSegments; i++ {
		theta := 2 * math.Pi * float64(i) / ringSegments
		xs[i] = r * math.Cos(theta)
		ys[i] = r * math.Sin(theta)
	}
	return xs, ys
}

func renderRadar(w io.Writer, p Panel, f Format) error {
	if len(p.Values) < MinRadarSpokes {
		return ErrNoData
	}

	raw := make([]float64, len(p.Values))
	for i, v := range p.Values {
		raw[i] = v.Value
	}
	limit := axisMax(p, raw)

	grid := gochart.Style{StrokeColor: drawing.ColorFromHex("d0d0d0"), StrokeWidth: 1}
	var series []gochart.Series

	for _, r := range []float64{0.25, 0.5, 0.75, 1} {
		xs, ys := ring(r)
		series = append(series, gochart.ContinuousSeries{Style: grid, XValues: xs, YValues: ys})
	}

	labels := make([]gochart.Value2, len(p.Values))
	for i, v := range p.Values {
		theta := spokeAngle(i, len(p.Values))
		series = append(series, gochart.ContinuousSeries{
			Style:   grid,
			XValues: []float64{0, math.Cos(theta)},
			YValues: []float64{0, math.Sin(theta)},
		})
		labels[i] = gochart.Value2{
			XValue: 1.12 * math.Cos(theta),
			YValue: 1.12 * math.Sin(theta),
			Label:  v.Label,
		}
	}

	xs, ys := RadarPoints(raw, limit)
	series = append(series,
		gochart.ContinuousSeries{
			Name:    p.Title,
			Style:   gochart.Style{StrokeColor: gochart.ColorBlue, StrokeWidth: 2},
			XValues: xs,
			YValues: ys,
		},
		gochart.AnnotationSeries{Annotations: labels},
	)

	bounds := &gochart.ContinuousRange{Min: -1.3, Max: 1.3}
	c := gochart.Chart{
		Title:  p.Title,
		Width:  defaultHeight,
		Height: defaultHeight,
		XAxis:  gochart.XAxis{Style: gochart.Hidden(), Range: bounds},
		YAxis:  gochart.YAxis{Style: gochart.Hidden(), Range: &gochart.ContinuousRange{Min: -1.3, Max: 1.3}},
		Series: series,
	}
	return c.Render(f.provider(), w)
}
