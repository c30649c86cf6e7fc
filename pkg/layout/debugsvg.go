package layout

import (
	"bytes"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/tdsim/pkg/contracts"
)

// DebugSVGOptions configures the static snapshot renderer. This is
// debug-only tooling: the kernel's live/animated rendering is explicitly out
// of scope, but a single static image of a grid snapshot is useful for
// inspecting a maze layout or a failing test's occupancy state.
type DebugSVGOptions struct {
	CellPixels int
	Title      string
}

// DefaultDebugSVGOptions returns sensible defaults for a small grid snapshot.
func DefaultDebugSVGOptions() DebugSVGOptions {
	return DebugSVGOptions{CellPixels: 16, Title: "grid snapshot"}
}

// RenderDebugSVG draws one static frame of an occupancy snapshot: walls,
// towers, and bugs as colored cells over a grid.
func RenderDebugSVG(occ contracts.OccupancyView, opts DebugSVGOptions) []byte {
	if opts.CellPixels <= 0 {
		opts.CellPixels = 16
	}

	width := occ.Width * opts.CellPixels
	height := occ.Height * opts.CellPixels

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#111111")

	for row := 0; row < occ.Height; row++ {
		for col := 0; col < occ.Width; col++ {
			cell := contracts.Cell{Col: col, Row: row}
			x, y := col*opts.CellPixels, row*opts.CellPixels

			style := ""
			switch {
			case occ.IsWall(cell):
				style = "fill:#444444"
			case occ.TowerAt[cell] != 0:
				style = "fill:#2a6fdb"
			case occ.BugAt[cell] != 0:
				style = "fill:#c0392b"
			default:
				continue
			}
			canvas.Rect(x, y, opts.CellPixels, opts.CellPixels, style)
		}
	}

	if opts.Title != "" {
		canvas.Text(4, height-4, opts.Title, "fill:#dddddd;font-size:10px")
	}

	canvas.End()
	return buf.Bytes()
}
