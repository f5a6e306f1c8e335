// Package editor implements the manual touch-up session: a stateful
// interactive canvas with pan/zoom, brush-based erase/restore, and a
// bounded linear undo history. The session owns its canvas and history
// exclusively; on save it emits a fresh raster for the collection to adopt,
// and closing without saving has no effect on the item being edited.
package editor

import (
	"image"

	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
	"github.com/lehigh-university-libraries/stickerpress/internal/raster"
)

// Tool is the selected editing tool. Tool selection is orthogonal to the
// input gesture in progress: panning can be entered from any tool with the
// middle button or a modifier key.
type Tool int

const (
	ToolMove Tool = iota
	ToolEraser
	ToolRestore
)

// Viewport zoom limits and the per-wheel-event step.
const (
	MinZoom  = 0.1
	MaxZoom  = 10.0
	ZoomStep = 0.1
)

// DefaultBrushSize is the starting brush diameter in canvas pixels.
const DefaultBrushSize = 24.0

// Session is one touch-up invocation. It is not safe for concurrent use;
// the caller opens at most one session at a time.
type Session struct {
	original *image.NRGBA // pre-matting pixels, read-only
	canvas   *image.NRGBA // live editing buffer
	settings matting.Settings
	history  *History

	tool      Tool
	brushSize float64

	scale      float64
	panX, panY float64

	panning bool
	drawing bool
	lastX   float64
	lastY   float64
}

// NewSession opens a session over an item's original pixels. processed is
// the item's current matted raster; if nil the session derives it from the
// original using the given settings, so re-opening an item always starts
// from its last automatic result.
func NewSession(original *image.NRGBA, processed *image.NRGBA, settings matting.Settings) *Session {
	canvas := processed
	if canvas == nil {
		canvas = matting.Apply(original, settings.Mode, settings.Threshold)
	} else {
		canvas = raster.Clone(canvas)
	}
	return &Session{
		original:  raster.Clone(original),
		canvas:    canvas,
		settings:  settings,
		history:   NewHistory(DefaultHistoryLimit, canvas),
		tool:      ToolMove,
		brushSize: DefaultBrushSize,
		scale:     1.0,
	}
}

// SetTool selects the active tool. Changing tools mid-gesture is ignored
// until the gesture ends.
func (s *Session) SetTool(t Tool) {
	if s.panning || s.drawing {
		return
	}
	s.tool = t
}

// SetBrushSize sets the brush diameter in canvas pixels.
func (s *Session) SetBrushSize(d float64) {
	if d > 0 {
		s.brushSize = d
	}
}

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Scale returns the current zoom factor.
func (s *Session) Scale() float64 { return s.scale }

// Pan returns the current pan offset in screen pixels.
func (s *Session) Pan() (x, y float64) { return s.panX, s.panY }

// Settings returns the session's current matting settings.
func (s *Session) Settings() matting.Settings { return s.settings }

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// Canvas returns a copy of the live editing buffer.
func (s *Session) Canvas() *image.NRGBA { return raster.Clone(s.canvas) }

// PointerDown begins an input gesture at screen position (x, y). The move
// tool, the middle button, or a held modifier key start a panning gesture;
// otherwise the eraser/restore tools start a drawing gesture and stamp the
// brush immediately.
func (s *Session) PointerDown(x, y float64, middleButton, modifier bool) {
	s.lastX, s.lastY = x, y
	if s.tool == ToolMove || middleButton || modifier {
		s.panning = true
		return
	}
	s.drawing = true
	s.stamp(x, y)
}

// PointerMove continues the active gesture. Pan offsets accumulate the raw
// pointer delta: pan lives in screen space, so no scale correction applies.
func (s *Session) PointerMove(x, y float64) {
	switch {
	case s.panning:
		s.panX += x - s.lastX
		s.panY += y - s.lastY
	case s.drawing:
		s.stamp(x, y)
	}
	s.lastX, s.lastY = x, y
}

// PointerUp ends the gesture. A completed drawing gesture commits the
// canvas as a new undo snapshot.
func (s *Session) PointerUp() {
	if s.drawing {
		s.history.Push(s.canvas)
	}
	s.panning = false
	s.drawing = false
}

// Wheel adjusts zoom by a fixed step per event, clamped to [MinZoom, MaxZoom].
func (s *Session) Wheel(delta float64) {
	if delta > 0 {
		s.scale += ZoomStep
	} else if delta < 0 {
		s.scale -= ZoomStep
	}
	if s.scale < MinZoom {
		s.scale = MinZoom
	}
	if s.scale > MaxZoom {
		s.scale = MaxZoom
	}
}

// stamp applies the brush at a screen position. Screen coordinates convert
// to canvas coordinates by dividing by the zoom scale; the pan offset is
// irrelevant because only the canvas's on-screen presentation is panned,
// not the surface being drawn on.
func (s *Session) stamp(x, y float64) {
	cx := x / s.scale
	cy := y / s.scale
	switch s.tool {
	case ToolEraser:
		raster.EraseCircle(s.canvas, cx, cy, s.brushSize)
	case ToolRestore:
		raster.RestoreCircle(s.canvas, s.original, cx, cy, s.brushSize)
	}
}

// ApplyMatting re-runs the automatic matting step with new settings. The
// result is always re-derived from the original pixels, never from the
// current canvas, and is committed as a new undo snapshot; manual edits made
// before the re-run stay reachable only through undo.
func (s *Session) ApplyMatting(mode matting.Mode, threshold uint8) {
	s.canvas = matting.Apply(s.original, mode, threshold)
	s.settings = matting.Settings{Mode: mode, Threshold: threshold}
	s.history.Push(s.canvas)
}

// Undo restores the previous snapshot. At the oldest retained snapshot it
// is a no-op.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.canvas = snap
	return true
}

// Save emits the session's output: the current raster and the settings that
// produced its last automatic pass. The caller replaces the item's
// processed raster and settings atomically with these values.
func (s *Session) Save() (*image.NRGBA, matting.Settings) {
	return raster.Clone(s.canvas), s.settings
}
