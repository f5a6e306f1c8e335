// Package handlers exposes the sticker collection over a local HTTP API:
// upload, grid crop, processing, role assignment, touch-up sessions, and
// pack export. This is the browser-facing surface; all raster work happens
// in the core packages.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/lehigh-university-libraries/stickerpress/internal/collection"
	"github.com/lehigh-university-libraries/stickerpress/internal/storage"
)

type Handler struct {
	manager *collection.Manager
	edits   *storage.EditRegistry

	mu   sync.Mutex
	seen map[string]string // upload content hash -> item ID
}

func New() *Handler {
	return &Handler{
		manager: collection.NewManager(),
		edits:   storage.New(),
		seen:    make(map[string]string),
	}
}

// Manager exposes the collection for command-level wiring.
func (h *Handler) Manager() *collection.Manager {
	return h.manager
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

func (h *Handler) getItemOrError(w http.ResponseWriter, id string) (collection.Item, bool) {
	item, exists := h.manager.Get(id)
	if !exists {
		h.writeError(w, "Sticker not found", http.StatusNotFound)
		return collection.Item{}, false
	}
	return item, true
}
