package pegsolitaire

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/pegsolitaire/environment"
)

// Rendering parameters
const (
	ViewportW  float64 = 480
	ViewportH  float64 = 480
	pegRadius  float64 = 14
	edgeMargin float64 = 40
)

var (
	background = color.RGBA{0xf4, 0xee, 0xe0, 0xff}
	pegColour  = color.RGBA{0x2b, 0x4c, 0x7e, 0xff}
	holeColour = color.RGBA{0x9e, 0x9e, 0x9e, 0xff}
	edgeColour = color.RGBA{0x60, 0x50, 0x40, 0xff}
)

// Render saves the current board as a PNG frame in the configured
// render directory. Frames are numbered in the order they are rendered
// since the last Reset. Render does nothing unless DisplayGame is set.
func (b *Board) Render() error {
	if !b.config.DisplayGame {
		return nil
	}

	filename := filepath.Join(b.config.RenderDir,
		fmt.Sprintf("frame-%04d.png", b.frame))
	b.frame++

	return RenderSnapshot(b.BoardState(), b.config.BoardType, b.config.Size,
		filename)
}

// RenderSnapshot draws the board described by snapshot and saves it as a
// PNG image at filename
func RenderSnapshot(snapshot environment.Snapshot, t BoardType, size int,
	filename string) error {
	dc := gg.NewContext(int(ViewportW), int(ViewportH))
	dc.SetColor(background)
	dc.Clear()

	spacing := holeSpacing(t, size)

	// Draw the lines between neighbouring holes first so that holes are
	// drawn over them
	s, err := newShape(t, size)
	if err != nil {
		return fmt.Errorf("renderSnapshot: %v", err)
	}
	dc.SetColor(edgeColour)
	dc.SetLineWidth(2.0)
	for _, p := range s.positions {
		x1, y1 := pixelCoords(p, t, size, spacing)
		for _, d := range s.directions {
			q := s.step(p, d, 1)
			if !s.onBoard[q] || q.Less(p) {
				continue
			}
			x2, y2 := pixelCoords(q, t, size, spacing)
			dc.DrawLine(x1, y1, x2, y2)
		}
	}
	dc.Stroke()

	for _, p := range s.positions {
		x, y := pixelCoords(p, t, size, spacing)
		dc.DrawCircle(x, y, pegRadius)
		if snapshot[p] == environment.Peg {
			dc.SetColor(pegColour)
		} else {
			dc.SetColor(holeColour)
		}
		dc.Fill()
	}

	return dc.SavePNG(filename)
}

// holeSpacing returns the distance in pixels between neighbouring holes
// such that the whole board fits in the viewport
func holeSpacing(t BoardType, size int) float64 {
	gaps := math.Max(float64(size-1), 1)
	if t == Diamond {
		// A diamond is (size-1)*√3 spacings tall
		return (ViewportH - 2*edgeMargin) / (gaps * math.Sqrt(3))
	}
	return (ViewportW - 2*edgeMargin) / gaps
}

// pixelCoords converts a board position to the pixel coordinates of the
// centre of its hole
func pixelCoords(p environment.Position, t BoardType, size int,
	spacing float64) (float64, float64) {
	rowHeight := spacing * math.Sqrt(3) / 2

	if t == Diamond {
		// Diamonds are drawn with (0, 0) at the top, rows running down
		// to the left and columns down to the right, 60 degrees apart
		x := ViewportW/2 + float64(p.Col-p.Row)*spacing/2
		y := edgeMargin + float64(p.Row+p.Col)*rowHeight
		return x, y
	}

	x := ViewportW/2 + (float64(p.Col)-float64(p.Row)/2)*spacing
	y := edgeMargin + float64(p.Row)*rowHeight
	return x, y
}
