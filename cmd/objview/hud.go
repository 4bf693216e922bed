package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

// HUD draws a status line with model info over the top row.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD.
func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{
		filename:  filename,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// SetModel updates the model info after a reload.
func (h *HUD) SetModel(filename string, polyCount int) {
	h.filename = filename
	h.polyCount = polyCount
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

var (
	hudFg = color.RGBA{230, 230, 230, 255}
	hudBg = color.RGBA{0, 0, 0, 255}
)

// Draw writes the status line into the first row of area.
func (h *HUD) Draw(scr uv.Screen, area image.Rectangle, v *viewer) {
	mode := "shaded"
	if v.wireframe {
		mode = "wireframe"
	}
	spin := fmt.Sprintf("%.2f rad/s", v.speed)
	if v.paused {
		spin = "paused"
	}

	line := fmt.Sprintf(" %s | %d tris | %.0f FPS | %s | %s | %.0f° ",
		h.filename, h.polyCount, h.fps, mode, spin, v.rotationDegrees())

	style := uv.Style{Fg: hudFg, Bg: hudBg}
	x := area.Min.X
	for _, r := range line {
		if x >= area.Max.X {
			break
		}
		scr.SetCell(x, area.Min.Y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		x++
	}
}
