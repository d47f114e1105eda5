// Package plot draws learning curves as PNG images
package plot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/pegsolitaire/utils/intutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Plotting parameters
const (
	Width  = 800
	Height = 500
	margin = 60.0

	// SmoothingWindow is the number of episodes the running mean of
	// the performance curve is computed over
	SmoothingWindow = 50
)

var (
	background  = color.White
	axisColour  = color.Black
	rawColour   = color.RGBA{0x9d, 0xb8, 0xe0, 0xff}
	meanColour  = color.RGBA{0xc0, 0x39, 0x2b, 0xff}
	labelColour = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

// Performance plots the number of pegs remaining at the end of each
// episode against the episode number, along with its running mean, and
// saves the plot as a PNG image at filename
func Performance(remaining []int, filename string) error {
	if len(remaining) == 0 {
		return fmt.Errorf("performance: no episodes to plot")
	}
	data := intutils.ToFloat(remaining)

	dc := gg.NewContext(Width, Height)
	dc.SetColor(background)
	dc.Clear()

	maxX := math.Max(float64(len(data)-1), 1)
	maxY := math.Ceil(floats.Max(data))
	if maxY < 1 {
		maxY = 1
	}
	toPixel := func(x, y float64) (float64, float64) {
		px := margin + x/maxX*(Width-2*margin)
		py := Height - margin - y/maxY*(Height-2*margin)
		return px, py
	}

	drawAxes(dc, len(data), maxY, toPixel)

	dc.SetLineWidth(1.0)
	drawLine(dc, data, rawColour, toPixel)

	dc.SetLineWidth(2.5)
	drawLine(dc, RunningMean(data, SmoothingWindow), meanColour, toPixel)

	dc.SetColor(labelColour)
	dc.DrawStringAnchored("Episode", Width/2, Height-margin/4, 0.5, 0)
	dc.DrawStringAnchored("Remaining pegs", margin/2, margin/2, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Performance over %d episodes",
		len(data)), Width/2, margin/2, 0.5, 0.5)

	return dc.SavePNG(filename)
}

// RunningMean returns the mean of each element of data and up to
// window-1 elements preceding it
func RunningMean(data []float64, window int) []float64 {
	if window < 1 {
		panic(fmt.Sprintf("runningMean: window must be positive, have %d",
			window))
	}

	means := make([]float64, len(data))
	for i := range data {
		start := intutils.Max(0, i-window+1)
		means[i] = stat.Mean(data[start:i+1], nil)
	}
	return means
}

func drawLine(dc *gg.Context, data []float64, c color.Color,
	toPixel func(x, y float64) (float64, float64)) {
	dc.SetColor(c)
	for i, y := range data {
		px, py := toPixel(float64(i), y)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.Stroke()
}

func drawAxes(dc *gg.Context, episodes int, maxY float64,
	toPixel func(x, y float64) (float64, float64)) {
	dc.SetColor(axisColour)
	dc.SetLineWidth(1.5)

	x0, y0 := toPixel(0, 0)
	x1, _ := toPixel(math.Max(float64(episodes-1), 1), 0)
	_, y1 := toPixel(0, maxY)
	dc.DrawLine(x0, y0, x1, y0)
	dc.DrawLine(x0, y0, x0, y1)
	dc.Stroke()

	// One tick per peg count on the y axis
	for y := 0.0; y <= maxY; y++ {
		px, py := toPixel(0, y)
		dc.DrawLine(px-4, py, px, py)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", y), px-8, py, 1, 0.5)
	}

	// Five ticks on the x axis
	for i := 0; i <= 4; i++ {
		episode := float64(episodes-1) * float64(i) / 4
		px, py := toPixel(episode, 0)
		dc.DrawLine(px, py, px, py+4)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", episode), px, py+8, 0.5, 1)
	}
	dc.Stroke()
}
