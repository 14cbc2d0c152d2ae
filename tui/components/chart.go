package components

import (
	"fmt"
	"math"
	"strings"
)

// chartBlocks are block characters from empty to full, used for rendering
// the chart area. Index 0 is empty (space), index 8 is full block.
var chartBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// thresholdRune marks the threshold row in cells the data does not reach.
const thresholdRune = '┄'

// ChartOptions controls scaling and labelling of RenderChart.
type ChartOptions struct {
	// Max pins the top of the Y axis. Zero means scale to the data.
	Max float64
	// Threshold draws a dashed line at this value when greater than zero.
	Threshold float64
	// Label formats Y-axis values. Defaults to a plain %.0f.
	Label func(float64) string
	// XStart and XEnd are printed under the left and right edge of the plot.
	XStart string
	XEnd   string
}

// RenderChart renders an ASCII bar chart using block characters.
// data: values to plot (oldest to newest, left to right)
// width: total width in characters (including Y-axis labels)
// height: total height in characters (including title and axis rows)
func RenderChart(data []float64, width, height int, title string, opts ChartOptions) string {
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}
	label := opts.Label
	if label == nil {
		label = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}

	labelWidth := 8
	chartWidth := width - labelWidth
	if chartWidth < 2 {
		chartWidth = 2
	}
	chartHeight := height - 2 // title row and X-axis row
	if chartHeight < 2 {
		chartHeight = 2
	}

	var lines []string
	lines = append(lines, centerText(title, width))

	if len(data) > chartWidth {
		data = data[len(data)-chartWidth:]
	}

	minVal, maxVal := 0.0, opts.Max
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if opts.Max == 0 && v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}
	spread := maxVal - minVal

	thresholdRow := -1
	if opts.Threshold > minVal && opts.Threshold <= maxVal {
		thresholdRow = int((opts.Threshold - minVal) / spread * float64(chartHeight))
		if thresholdRow >= chartHeight {
			thresholdRow = chartHeight - 1
		}
	}

	padding := chartWidth - len(data)
	for row := chartHeight - 1; row >= 0; row-- {
		cellBottom := minVal + spread*float64(row)/float64(chartHeight)
		cellTop := minVal + spread*float64(row+1)/float64(chartHeight)

		yLabel := fmt.Sprintf("%7s ", label(cellTop))
		if len(yLabel) > labelWidth {
			yLabel = yLabel[len(yLabel)-labelWidth:]
		}

		empty := ' '
		if row == thresholdRow {
			empty = thresholdRune
		}

		rowChars := make([]rune, 0, chartWidth)
		for p := 0; p < padding; p++ {
			rowChars = append(rowChars, empty)
		}
		for _, v := range data {
			rowChars = append(rowChars, cellRune(v, cellBottom, cellTop, empty))
		}
		lines = append(lines, yLabel+string(rowChars))
	}

	lines = append(lines, xAxis(labelWidth, chartWidth, opts.XStart, opts.XEnd))
	return strings.Join(lines, "\n")
}

func cellRune(v, bottom, top float64, empty rune) rune {
	switch {
	case v <= bottom:
		return empty
	case v >= top:
		return chartBlocks[8]
	}
	idx := int(math.Round((v - bottom) / (top - bottom) * 8))
	if idx <= 0 {
		return empty
	}
	if idx > 8 {
		idx = 8
	}
	return chartBlocks[idx]
}

func xAxis(labelWidth, chartWidth int, start, end string) string {
	gap := chartWidth - len(start) - len(end)
	if gap < 1 {
		return strings.Repeat(" ", labelWidth+chartWidth)
	}
	return strings.Repeat(" ", labelWidth) + start + strings.Repeat(" ", gap) + end
}

// centerText centers s within the given width, padding with spaces.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(s)-pad)
}
