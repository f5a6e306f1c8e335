// Package pack describes the submission target: how many stickers a pack
// holds and which canvas sizes each exported artifact must have. The
// dimensions here are a compatibility contract with the platform's
// submission pipeline and must match exactly.
package pack

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Type selects the sticker canvas family.
type Type string

const (
	TypeStandard   Type = "standard"
	TypeFullscreen Type = "fullscreen"
)

// Tab image dimensions are the same for every pack type.
const (
	TabWidth  = 96
	TabHeight = 74
)

// Padding is the transparent margin, in pixels, kept on every side of the
// drawn content inside an exported canvas.
const Padding = 10

// ValidCounts are the pack sizes the platform accepts.
var ValidCounts = []int{8, 16, 24, 32, 40}

// Config is the immutable-per-session target specification.
type Config struct {
	Count int  `yaml:"count"`
	Type  Type `yaml:"type"`
}

// Validate checks the config against the platform's accepted values.
func (c Config) Validate() error {
	if !slices.Contains(ValidCounts, c.Count) {
		return fmt.Errorf("invalid sticker count %d (must be one of %v)", c.Count, ValidCounts)
	}
	switch c.Type {
	case TypeStandard, TypeFullscreen:
		return nil
	}
	return fmt.Errorf("invalid pack type %q (must be standard or fullscreen)", c.Type)
}

// StickerSize returns the canvas dimensions for numbered sticker images.
func (t Type) StickerSize() (w, h int) {
	if t == TypeFullscreen {
		return 480, 480
	}
	return 370, 320
}

// MainSize returns the canvas dimensions for the pack's main image.
func (t Type) MainSize() (w, h int) {
	if t == TypeFullscreen {
		return 480, 480
	}
	return 240, 240
}

// Load reads a pack config from a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read pack config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse pack config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
