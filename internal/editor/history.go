package editor

import (
	"image"

	"github.com/lehigh-university-libraries/stickerpress/internal/raster"
)

// DefaultHistoryLimit bounds how many raster snapshots a session retains.
const DefaultHistoryLimit = 15

// History is a bounded linear undo stack of raster snapshots plus a current
// index. Pushing while not at the tail discards the redo branch; pushing
// past the limit evicts the oldest snapshot. Snapshots are immutable: the
// live editing buffer is cloned on the way in and on the way out, never
// aliased.
type History struct {
	snaps []*image.NRGBA
	index int
	limit int
}

// NewHistory creates a history seeded with the initial canvas state.
func NewHistory(limit int, initial *image.NRGBA) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{
		snaps: []*image.NRGBA{raster.Clone(initial)},
		limit: limit,
	}
}

// Push commits the current canvas as a new snapshot.
func (h *History) Push(canvas *image.NRGBA) {
	h.snaps = append(h.snaps[:h.index+1], raster.Clone(canvas))
	if len(h.snaps) > h.limit {
		h.snaps = h.snaps[len(h.snaps)-h.limit:]
	}
	h.index = len(h.snaps) - 1
}

// Undo steps back one snapshot and returns a copy of it. At the oldest
// retained snapshot it is a no-op and returns false.
func (h *History) Undo() (*image.NRGBA, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return raster.Clone(h.snaps[h.index]), true
}

// CanUndo reports whether a step back is possible.
func (h *History) CanUndo() bool { return h.index > 0 }

// Len returns the number of retained snapshots.
func (h *History) Len() int { return len(h.snaps) }
