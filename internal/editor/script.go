package editor

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
	"gopkg.in/yaml.v3"
)

// Op is one scripted editing operation. Scripts replay through the same
// pointer state machine the interactive surface uses, so a script is a
// reproducible record of a manual touch-up.
type Op struct {
	// Action is one of: matte, erase, restore, pan, undo, zoom, brush.
	Action string `yaml:"action" json:"action"`

	// Stroke coordinates in screen space, for erase/restore/pan.
	X float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y float64 `yaml:"y,omitempty" json:"y,omitempty"`
	// Optional stroke end point; when set the stroke drags from (x,y).
	ToX *float64 `yaml:"to_x,omitempty" json:"to_x,omitempty"`
	ToY *float64 `yaml:"to_y,omitempty" json:"to_y,omitempty"`

	// Size sets the brush diameter for brush, or the wheel delta for zoom.
	Size float64 `yaml:"size,omitempty" json:"size,omitempty"`

	// Matting parameters for matte.
	Mode      string `yaml:"mode,omitempty" json:"mode,omitempty"`
	Threshold uint8  `yaml:"threshold,omitempty" json:"threshold,omitempty"`
}

// Script is an ordered list of operations.
type Script struct {
	Ops []Op `yaml:"ops"`
}

// LoadScript reads a touch-up script from a YAML file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse script: %w", err)
	}
	return s, nil
}

// Run replays a script against the session. Unknown actions fail the run;
// everything applied before the failure stays applied, matching how a user
// abandoning a session mid-edit would leave it.
func (s *Session) Run(script Script) error {
	for i, op := range script.Ops {
		if err := s.apply(op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Action, err)
		}
	}
	return nil
}

func (s *Session) apply(op Op) error {
	switch op.Action {
	case "matte":
		mode, err := matting.ParseMode(op.Mode)
		if err != nil {
			return err
		}
		s.ApplyMatting(mode, op.Threshold)
	case "erase", "restore":
		if op.Action == "erase" {
			s.SetTool(ToolEraser)
		} else {
			s.SetTool(ToolRestore)
		}
		s.PointerDown(op.X, op.Y, false, false)
		if op.ToX != nil && op.ToY != nil {
			s.PointerMove(*op.ToX, *op.ToY)
		}
		s.PointerUp()
	case "pan":
		s.SetTool(ToolMove)
		s.PointerDown(op.X, op.Y, false, false)
		if op.ToX != nil && op.ToY != nil {
			s.PointerMove(*op.ToX, *op.ToY)
		}
		s.PointerUp()
	case "undo":
		s.Undo()
	case "zoom":
		s.Wheel(op.Size)
	case "brush":
		s.SetBrushSize(op.Size)
	default:
		return fmt.Errorf("unknown action %q", op.Action)
	}
	return nil
}
