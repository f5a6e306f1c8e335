package pack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"smallest standard pack", Config{Count: 8, Type: TypeStandard}, false},
		{"largest fullscreen pack", Config{Count: 40, Type: TypeFullscreen}, false},
		{"count not a pack size", Config{Count: 12, Type: TypeStandard}, true},
		{"zero count", Config{Count: 0, Type: TypeStandard}, true},
		{"unknown type", Config{Count: 8, Type: "animated"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSizes(t *testing.T) {
	if w, h := TypeStandard.StickerSize(); w != 370 || h != 320 {
		t.Errorf("standard sticker size = %dx%d, want 370x320", w, h)
	}
	if w, h := TypeStandard.MainSize(); w != 240 || h != 240 {
		t.Errorf("standard main size = %dx%d, want 240x240", w, h)
	}
	if w, h := TypeFullscreen.StickerSize(); w != 480 || h != 480 {
		t.Errorf("fullscreen sticker size = %dx%d, want 480x480", w, h)
	}
	if w, h := TypeFullscreen.MainSize(); w != 480 || h != 480 {
		t.Errorf("fullscreen main size = %dx%d, want 480x480", w, h)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	if err := os.WriteFile(path, []byte("count: 16\ntype: standard\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Count != 16 || got.Type != TypeStandard {
		t.Errorf("Load = %+v", got)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("count: 13\ntype: standard\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected validation error for count 13")
	}
}
