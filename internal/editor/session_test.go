package editor

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
	"github.com/lehigh-university-libraries/stickerpress/internal/raster"
)

func whiteSquare(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func newTestSession() *Session {
	return NewSession(whiteSquare(64), nil, matting.Settings{Mode: matting.ModeNone})
}

func TestEraserGestureCommitsOneSnapshot(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolEraser)
	s.SetBrushSize(10)

	s.PointerDown(32, 32, false, false)
	s.PointerMove(40, 32)
	s.PointerUp()

	canvas := s.Canvas()
	if canvas.NRGBAAt(32, 32).A != 0 {
		t.Error("eraser stroke did not clear alpha at the stroke start")
	}
	if canvas.NRGBAAt(40, 32).A != 0 {
		t.Error("eraser stroke did not clear alpha along the drag")
	}
	if canvas.NRGBAAt(5, 5).A != 255 {
		t.Error("eraser cleared pixels outside the stroke")
	}

	if !s.CanUndo() {
		t.Fatal("completed drawing gesture should be undoable")
	}
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if s.Canvas().NRGBAAt(32, 32).A != 255 {
		t.Error("undo did not restore the pre-stroke canvas")
	}
	if s.Undo() {
		t.Error("second undo should be a no-op on a single-stroke session")
	}
}

func TestRestoreUndoesErasure(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolEraser)
	s.SetBrushSize(20)
	s.PointerDown(32, 32, false, false)
	s.PointerUp()
	if s.Canvas().NRGBAAt(32, 32).A != 0 {
		t.Fatal("setup: erase did not take effect")
	}

	s.SetTool(ToolRestore)
	s.PointerDown(32, 32, false, false)
	s.PointerUp()
	if s.Canvas().NRGBAAt(32, 32).A != 255 {
		t.Error("restore did not bring back original pixels")
	}
}

func TestMoveToolPansWithoutDrawing(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolMove)

	s.PointerDown(10, 10, false, false)
	s.PointerMove(25, 4)
	s.PointerUp()

	if x, y := s.Pan(); x != 15 || y != -6 {
		t.Errorf("pan = (%v, %v), want (15, -6)", x, y)
	}
	if s.CanUndo() {
		t.Error("panning must not commit undo snapshots")
	}
}

func TestMiddleButtonAndModifierPanFromDrawingTools(t *testing.T) {
	for _, tc := range []struct {
		name             string
		middle, modifier bool
	}{
		{"middle button", true, false},
		{"modifier key", false, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession()
			s.SetTool(ToolEraser)
			s.PointerDown(10, 10, tc.middle, tc.modifier)
			s.PointerMove(20, 20)
			s.PointerUp()

			if x, y := s.Pan(); x != 10 || y != 10 {
				t.Errorf("pan = (%v, %v), want (10, 10)", x, y)
			}
			if s.Canvas().NRGBAAt(10, 10).A != 255 {
				t.Error("panning gesture erased pixels")
			}
		})
	}
}

func TestBrushCoordinatesDivideByZoom(t *testing.T) {
	s := newTestSession()
	// Zoom in to 2x; pointer at screen (60, 60) must hit canvas (30, 30).
	for i := 0; i < 10; i++ {
		s.Wheel(1)
	}
	if math.Abs(s.Scale()-2.0) > 1e-9 {
		t.Fatalf("scale = %v, want 2.0", s.Scale())
	}

	s.SetTool(ToolEraser)
	s.SetBrushSize(4)
	s.PointerDown(60, 60, false, false)
	s.PointerUp()

	canvas := s.Canvas()
	if canvas.NRGBAAt(30, 30).A != 0 {
		t.Error("brush did not land at screen position divided by zoom")
	}
	if canvas.NRGBAAt(60, 60).A != 255 {
		t.Error("brush landed at raw screen coordinates")
	}
}

func TestWheelClampsZoom(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 200; i++ {
		s.Wheel(1)
	}
	if s.Scale() != MaxZoom {
		t.Errorf("scale = %v, want clamped to %v", s.Scale(), MaxZoom)
	}
	for i := 0; i < 400; i++ {
		s.Wheel(-1)
	}
	if math.Abs(s.Scale()-MinZoom) > 1e-9 {
		t.Errorf("scale = %v, want clamped to %v", s.Scale(), MinZoom)
	}
}

func TestApplyMattingRederivesFromOriginal(t *testing.T) {
	s := newTestSession()

	// Manually erase a region, then re-run automatic matting with none.
	s.SetTool(ToolEraser)
	s.SetBrushSize(30)
	s.PointerDown(32, 32, false, false)
	s.PointerUp()

	s.ApplyMatting(matting.ModeNone, 0)
	if s.Canvas().NRGBAAt(32, 32).A != 255 {
		t.Error("re-run did not re-derive from the original pixels")
	}
	// The superseded manual edit stays reachable through undo.
	if !s.Undo() {
		t.Fatal("undo after matting re-run failed")
	}
	if s.Canvas().NRGBAAt(32, 32).A != 0 {
		t.Error("undo did not restore the manual edit")
	}

	s2 := newTestSession()
	s2.ApplyMatting(matting.ModeWhite, 200)
	if s2.Canvas().NRGBAAt(1, 1).A != 0 {
		t.Error("white matting on white canvas left pixels opaque")
	}
	if got := s2.Settings(); got.Mode != matting.ModeWhite || got.Threshold != 200 {
		t.Errorf("settings = %+v after re-run", got)
	}
}

func TestSaveEmitsCurrentState(t *testing.T) {
	s := newTestSession()
	s.ApplyMatting(matting.ModeWhite, 128)
	out, settings := s.Save()
	if settings.Mode != matting.ModeWhite || settings.Threshold != 128 {
		t.Errorf("saved settings = %+v", settings)
	}
	if out.NRGBAAt(0, 0).A != 0 {
		t.Error("saved raster does not reflect the matted canvas")
	}
	// Saved raster is a copy, not the live buffer.
	out.SetNRGBA(5, 5, color.NRGBA{A: 255})
	if s.Canvas().NRGBAAt(5, 5).A != 0 {
		t.Error("saved raster aliases the session canvas")
	}
}

func TestSessionDoesNotAliasInputs(t *testing.T) {
	original := whiteSquare(8)
	processed := raster.Clone(original)
	s := NewSession(original, processed, matting.Settings{Mode: matting.ModeNone})

	original.SetNRGBA(0, 0, color.NRGBA{})
	processed.SetNRGBA(1, 1, color.NRGBA{})

	s.SetTool(ToolRestore)
	s.SetBrushSize(2)
	s.PointerDown(0, 0, false, false)
	s.PointerUp()
	if s.Canvas().NRGBAAt(0, 0).A != 255 {
		t.Error("session original aliased the caller's buffer")
	}
	if s.Canvas().NRGBAAt(1, 1).A != 255 {
		t.Error("session canvas aliased the caller's processed buffer")
	}
}

func TestScriptReplay(t *testing.T) {
	s := newTestSession()
	toX, toY := 40.0, 32.0
	panX, panY := 15.0, 5.0
	script := Script{Ops: []Op{
		{Action: "matte", Mode: "white", Threshold: 200},
		{Action: "undo"},
		{Action: "brush", Size: 10},
		{Action: "erase", X: 32, Y: 32, ToX: &toX, ToY: &toY},
		{Action: "restore", X: 32, Y: 32},
		{Action: "pan", X: 10, Y: 0, ToX: &panX, ToY: &panY},
	}}
	if err := s.Run(script); err != nil {
		t.Fatalf("Run: %v", err)
	}
	canvas := s.Canvas()
	if canvas.NRGBAAt(32, 32).A != 255 {
		t.Error("restore op did not rewind the erase at the stroke start")
	}
	if canvas.NRGBAAt(40, 32).A != 0 {
		t.Error("erase drag end should remain transparent")
	}
	if x, y := s.Pan(); x != 5 || y != 5 {
		t.Errorf("pan op moved viewport to (%v, %v), want (5, 5)", x, y)
	}

	if err := s.Run(Script{Ops: []Op{{Action: "sharpen"}}}); err == nil {
		t.Error("unknown action must fail the run")
	}
}
