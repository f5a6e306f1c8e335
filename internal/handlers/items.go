package handlers

import (
	"net/http"
	"strings"
)

type itemSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	IsMain    bool   `json:"is_main"`
	IsTab     bool   `json:"is_tab"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Mode      string `json:"mode"`
	Threshold uint8  `json:"threshold"`
}

// HandleItems lists the collection in insertion order.
func (h *Handler) HandleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	items := h.manager.Items()
	out := make([]itemSummary, 0, len(items))
	for _, it := range items {
		out = append(out, itemSummary{
			ID:        it.ID,
			Name:      it.Name,
			Status:    string(it.Status),
			Error:     it.Err,
			IsMain:    it.IsMain,
			IsTab:     it.IsTab,
			Width:     it.Width(),
			Height:    it.Height(),
			Mode:      string(it.Settings.Mode),
			Threshold: it.Settings.Threshold,
		})
	}
	h.writeJSON(w, out)
}

// HandleItemDetail serves /api/items/{id}: GET for the summary, DELETE to
// remove the item from the collection.
func (h *Handler) HandleItemDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/items/")
	if id == "" {
		h.writeError(w, "Missing item ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		item, ok := h.getItemOrError(w, id)
		if !ok {
			return
		}
		h.writeJSON(w, itemSummary{
			ID:        item.ID,
			Name:      item.Name,
			Status:    string(item.Status),
			Error:     item.Err,
			IsMain:    item.IsMain,
			IsTab:     item.IsTab,
			Width:     item.Width(),
			Height:    item.Height(),
			Mode:      string(item.Settings.Mode),
			Threshold: item.Settings.Threshold,
		})
	case "DELETE":
		if !h.manager.Remove(id) {
			h.writeError(w, "Sticker not found", http.StatusNotFound)
			return
		}
		h.writeJSON(w, map[string]any{"removed": id})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandlePreview serves /previews/{id}.png: the item's processed raster when
// available, its source otherwise.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/previews/"), ".png")
	item, ok := h.getItemOrError(w, id)
	if !ok {
		return
	}

	img := item.Processed
	if img == nil {
		img = item.Source
	}
	if img == nil {
		h.writeError(w, "Sticker has no decoded pixels", http.StatusNotFound)
		return
	}
	h.servePNG(w, img)
}
