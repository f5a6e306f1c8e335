package collection

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
	"github.com/lehigh-university-libraries/stickerpress/internal/raster"
)

// ErrItemNotFound is returned for operations against an unknown item ID.
var ErrItemNotFound = errors.New("sticker item not found")

// Manager owns the item list. All mutations replace the list wholesale
// (copy-on-write), so a snapshot taken by Items or an export iteration is
// never affected by reentrant updates from an in-flight operation.
type Manager struct {
	mu    sync.RWMutex
	items []Item
}

// NewManager creates an empty collection.
func NewManager() *Manager {
	return &Manager{}
}

// Add creates a pending item from a decoded image. The image is copied;
// the caller's buffer is not retained.
func (m *Manager) Add(name string, img image.Image) Item {
	item := Item{
		ID:       uuid.NewString(),
		Name:     name,
		Source:   raster.ToNRGBA(img),
		Status:   StatusPending,
		Settings: matting.Settings{Mode: matting.ModeNone},
	}
	m.replace(func(items []Item) []Item {
		return append(items, item)
	})
	slog.Info("Sticker added", "id", item.ID, "name", name, "width", item.Width(), "height", item.Height())
	return item
}

// AddBytes decodes raw upload bytes and adds the result. A decode failure
// still creates an item, in error state, so the failure is visible in the
// collection instead of propagating.
func (m *Manager) AddBytes(name string, data []byte) Item {
	img, err := imageio.DecodeBytes(data)
	if err != nil {
		item := Item{
			ID:       uuid.NewString(),
			Name:     name,
			Status:   StatusError,
			Err:      err.Error(),
			Settings: matting.Settings{Mode: matting.ModeNone},
		}
		m.replace(func(items []Item) []Item {
			return append(items, item)
		})
		slog.Warn("Upload could not be decoded", "name", name, "err", err)
		return item
	}
	return m.Add(name, img)
}

// Items returns a snapshot of the current item list.
func (m *Manager) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items)
}

// Get returns the item with the given ID.
func (m *Manager) Get(id string) (Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Remove deletes an item from the collection.
func (m *Manager) Remove(id string) bool {
	removed := false
	m.replace(func(items []Item) []Item {
		next := items[:0]
		for _, it := range items {
			if it.ID == id {
				removed = true
				continue
			}
			next = append(next, it)
		}
		return next
	})
	if removed {
		slog.Info("Sticker removed", "id", id)
	}
	return removed
}

// SetRole assigns an exclusive role to an item, clearing the flag from
// whichever item held it before.
func (m *Manager) SetRole(id string, role Role) error {
	if role != RoleMain && role != RoleTab {
		return fmt.Errorf("invalid role %q", role)
	}
	if _, ok := m.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	m.replace(func(items []Item) []Item {
		for i := range items {
			switch role {
			case RoleMain:
				items[i].IsMain = items[i].ID == id
			case RoleTab:
				items[i].IsTab = items[i].ID == id
			}
		}
		return items
	})
	slog.Info("Role assigned", "id", id, "role", role)
	return nil
}

// Process runs automatic matting on one item. The item moves through
// processing to done, or to error with the failure captured on the item;
// processing always starts from the item's original decoded pixels.
func (m *Manager) Process(ctx context.Context, id string, settings matting.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	item, ok := m.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	// Processed is non-nil exactly when the item is done, so a re-edit
	// drops the previous result on entering processing.
	m.update(id, func(it *Item) {
		it.Status = StatusProcessing
		it.Processed = nil
	})

	if item.Source == nil {
		m.update(id, func(it *Item) {
			it.Status = StatusError
			if it.Err == "" {
				it.Err = "no decoded pixels"
			}
		})
		slog.Warn("Sticker has no decoded pixels", "id", id, "name", item.Name)
		return nil
	}

	processed := matting.Apply(item.Source, settings.Mode, settings.Threshold)
	m.update(id, func(it *Item) {
		it.Status = StatusDone
		it.Err = ""
		it.Processed = processed
		it.Settings = settings
	})
	slog.Info("Sticker processed", "id", id, "name", item.Name, "mode", settings.Mode, "threshold", settings.Threshold)
	return nil
}

// ProcessAll runs matting over every item that is not already done,
// strictly sequentially. Per-item failures are captured on the item and
// never abort the rest of the batch; only context cancellation stops the
// loop early.
func (m *Manager) ProcessAll(ctx context.Context, settings matting.Settings) error {
	for _, it := range m.Items() {
		if it.Status == StatusDone {
			continue
		}
		if err := m.Process(ctx, it.ID, settings); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEdit replaces an item's processed raster and settings atomically
// with a touch-up session's saved output, marking the item done.
func (m *Manager) ApplyEdit(id string, processed *image.NRGBA, settings matting.Settings) error {
	if _, ok := m.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	snapshot := raster.Clone(processed)
	m.update(id, func(it *Item) {
		it.Status = StatusDone
		it.Err = ""
		it.Processed = snapshot
		it.Settings = settings
	})
	slog.Info("Touch-up applied", "id", id)
	return nil
}

// replace applies fn to a copy of the item list and swaps the copy in.
func (m *Manager) replace(fn func([]Item) []Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = fn(slices.Clone(m.items))
}

func (m *Manager) update(id string, fn func(*Item)) {
	m.replace(func(items []Item) []Item {
		for i := range items {
			if items[i].ID == id {
				fn(&items[i])
			}
		}
		return items
	})
}
