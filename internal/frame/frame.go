// Package frame provides the render surface components draw into.
//
// A Frame wraps an ultraviolet screen buffer for one draw pass. Components
// compose their view as a lipgloss-styled string and place it into their
// rectangular region; the terminal flushes the composed buffer once per
// render event. The whole surface is repainted every pass, which is fine at
// interactive list sizes and a bounded frame rate.
package frame

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Rect is a rectangular region of the terminal in cell coordinates.
type Rect = uv.Rectangle

// NewRect returns the rectangle with origin (x, y), width w and height h.
func NewRect(x, y, w, h int) Rect {
	return uv.Rect(x, y, w, h)
}

// Frame is the surface for one render pass.
type Frame struct {
	scr    uv.ScreenBuffer
	width  int
	height int
}

// New creates a frame of the given size in cells.
func New(width, height int) *Frame {
	return &Frame{
		scr:    uv.NewScreenBuffer(width, height),
		width:  width,
		height: height,
	}
}

// Size returns the frame dimensions in cells.
func (f *Frame) Size() (width, height int) {
	return f.width, f.height
}

// Bounds returns the full frame area.
func (f *Frame) Bounds() Rect {
	return uv.Rect(0, 0, f.width, f.height)
}

// DrawString paints a (possibly styled) multi-line string into the given
// region. Content beyond the region is clipped by the buffer.
func (f *Frame) DrawString(view string, area Rect) {
	uv.NewStyledString(view).Draw(f.scr, area)
}

// Render flattens the buffer into the string written to the terminal.
func (f *Frame) Render() string {
	return f.scr.Render()
}
