package present

import (
	"errors"
	"io"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNoTags = errors.New("no tags to chart")

const (
	chartTitle    = "Unsolved Problems by Tag"
	chartWidth    = 800
	chartHeight   = 400
	chartBarWidth = 18
	chartBarSpace = 6

	xAxisName  = "Tags"
	yAxisTitle = "Number of Problems"
	maxTicks   = 10
)

var (
	barFill   = drawing.Color{R: 75, G: 192, B: 200, A: 153}
	barStroke = drawing.Color{R: 75, G: 192, B: 192, A: 255}
)

// RenderTagChart writes a PNG bar chart with one bar per tag, in the order
// given. The canvas widens when the bars do not fit the default width.
func RenderTagChart(w io.Writer, tags []Tag) error {
	if len(tags) == 0 {
		return ErrNoTags
	}
	graph := newTagChart(tags)
	return graph.Render(chart.PNG, w)
}

func newTagChart(tags []Tag) chart.BarChart {
	bars := make([]chart.Value, len(tags))
	maxCount := 0
	for i, t := range tags {
		maxCount = max(maxCount, t.Count)
		bars[i] = chart.Value{
			Label: t.Tag,
			Value: float64(t.Count),
			Style: chart.Style{
				FillColor:   barFill,
				StrokeColor: barStroke,
				StrokeWidth: 1,
			},
		}
	}

	width := max(chartWidth, len(tags)*(chartBarWidth+chartBarSpace)+120)
	ticks := countTicks(maxCount)

	return chart.BarChart{
		Title:      chartTitle,
		Width:      width,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpace,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 120},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 90,
		},
		YAxis: chart.YAxis{
			Name:  yAxisTitle,
			Range: &chart.ContinuousRange{Min: 0, Max: ticks[len(ticks)-1].Value},
			Ticks: ticks,
		},
		Bars:     bars,
		Elements: []chart.Renderable{xAxisTitle(chartHeight)},
	}
}

// countTicks returns whole-number y ticks from 0 up to at least maxCount,
// using at most maxTicks steps.
func countTicks(maxCount int) []chart.Tick {
	step := max(1, (maxCount+maxTicks-1)/maxTicks)
	top := max(step, (maxCount+step-1)/step*step)

	ticks := make([]chart.Tick, 0, top/step+1)
	for v := 0; v <= top; v += step {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

// xAxisTitle draws the axis name centred under the rotated tag labels.
// BarChart only takes a style for its x axis, so the name is an element.
func xAxisTitle(height int) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		style := chart.Style{
			FontSize:            10,
			FontColor:           drawing.ColorBlack,
			TextHorizontalAlign: chart.TextHorizontalAlignCenter,
			TextVerticalAlign:   chart.TextVerticalAlignMiddle,
		}.InheritFrom(defaults)

		box := chart.Box{
			Top:    height - 24,
			Left:   canvasBox.Left,
			Right:  canvasBox.Right,
			Bottom: height - 4,
		}
		chart.Draw.TextWithin(r, xAxisName, box, style)
	}
}
