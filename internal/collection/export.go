package collection

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/pack"
	"github.com/lehigh-university-libraries/stickerpress/internal/transform"
)

// ErrNoEligibleItems is returned when export is attempted and no item in
// the collection is done.
var ErrNoEligibleItems = errors.New("no processed stickers to export")

// Artifact is one named file of the export set.
type Artifact struct {
	Name string
	Data []byte
}

// ProgressFunc receives a monotonically increasing completion fraction in
// [0, 1] as artifacts are produced. On export failure the caller should
// reset any progress indicator; no partial artifact set is returned.
type ProgressFunc func(fraction float64)

// Export produces the full submission-ready artifact set from a collection
// snapshot: min(done, config.Count) numbered stickers, main.png, and
// tab.png, each resized onto its exact target canvas. Any stage failure
// aborts the whole export.
func Export(items []Item, cfg pack.Config, progress ProgressFunc) ([]Artifact, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = func(float64) {}
	}

	var done []Item
	for _, it := range items {
		if it.Status == StatusDone {
			done = append(done, it)
		}
	}
	if len(done) == 0 {
		return nil, ErrNoEligibleItems
	}

	main := done[0]
	tab := done[0]
	for _, it := range done {
		if it.IsMain {
			main = it
			break
		}
	}
	for _, it := range done {
		if it.IsTab {
			tab = it
			break
		}
	}

	exportCount := min(len(done), cfg.Count)
	total := exportCount + 2
	slog.Info("Exporting pack", "stickers", exportCount, "type", cfg.Type, "main", main.ID, "tab", tab.ID)

	artifacts := make([]Artifact, 0, total)
	stickerW, stickerH := cfg.Type.StickerSize()
	for i := 0; i < exportCount; i++ {
		name := fmt.Sprintf("%02d.png", i+1)
		data, err := render(done[i], stickerW, stickerH)
		if err != nil {
			return nil, fmt.Errorf("sticker %s: %w", name, err)
		}
		artifacts = append(artifacts, Artifact{Name: name, Data: data})
		progress(float64(i+1) / float64(total))
	}

	mainW, mainH := cfg.Type.MainSize()
	data, err := render(main, mainW, mainH)
	if err != nil {
		return nil, fmt.Errorf("main image: %w", err)
	}
	artifacts = append(artifacts, Artifact{Name: "main.png", Data: data})
	progress(float64(exportCount+1) / float64(total))

	data, err = render(tab, pack.TabWidth, pack.TabHeight)
	if err != nil {
		return nil, fmt.Errorf("tab image: %w", err)
	}
	artifacts = append(artifacts, Artifact{Name: "tab.png", Data: data})
	progress(1)

	return artifacts, nil
}

func render(it Item, w, h int) ([]byte, error) {
	canvas, err := transform.ResizeToSpec(it.Processed, w, h, pack.Padding)
	if err != nil {
		return nil, err
	}
	return imageio.EncodePNG(canvas)
}
