// Package collection owns the set of candidate stickers: their processing
// lifecycle, role assignment, and the export pipeline that turns done items
// into submission-sized artifacts.
package collection

import (
	"image"

	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
)

// Status is an item's processing state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// Role is an exclusive pack-level flag an item can carry.
type Role string

const (
	RoleMain Role = "main"
	RoleTab  Role = "tab"
)

// Item is one candidate sticker. Items are handled as values: every
// mutation goes through the manager, which replaces the whole item list so
// readers always observe a consistent snapshot.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Source holds the immutable decoded pixels the item was derived from.
	// Nil only when decoding the upload failed.
	Source *image.NRGBA `json:"-"`
	// Processed holds the matted pixels. Non-nil exactly when Status is
	// StatusDone.
	Processed *image.NRGBA `json:"-"`

	Status Status `json:"status"`
	// Err carries the failure detail when Status is StatusError.
	Err string `json:"error,omitempty"`

	IsMain bool `json:"is_main"`
	IsTab  bool `json:"is_tab"`

	// Settings is the last-applied matting configuration, persisted so a
	// re-opened touch-up session starts from the last automatic result.
	Settings matting.Settings `json:"settings"`
}

// Width returns the source pixel width, or zero when decoding failed.
func (it Item) Width() int {
	if it.Source == nil {
		return 0
	}
	return it.Source.Bounds().Dx()
}

// Height returns the source pixel height, or zero when decoding failed.
func (it Item) Height() int {
	if it.Source == nil {
		return 0
	}
	return it.Source.Bounds().Dy()
}
