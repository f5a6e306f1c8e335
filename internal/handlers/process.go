package handlers

import (
	"encoding/json"
	"image"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/stickerpress/internal/collection"
	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/matting"
)

// HandleProcess runs automatic matting over one item (when id is set) or
// every non-done item. With auto set, the settings come from the border
// color suggestion of each item instead of the request.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var request struct {
		ID        string `json:"id,omitempty"`
		Mode      string `json:"mode"`
		Threshold uint8  `json:"threshold"`
		Auto      bool   `json:"auto,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	settings := matting.Settings{Threshold: request.Threshold}
	if !request.Auto {
		mode, err := matting.ParseMode(request.Mode)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		settings.Mode = mode
	}

	ctx := r.Context()
	if request.ID != "" {
		item, ok := h.getItemOrError(w, request.ID)
		if !ok {
			return
		}
		if request.Auto {
			settings = h.suggestFor(item.Source, settings)
		}
		if err := h.manager.Process(ctx, request.ID, settings); err != nil {
			h.writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	} else if request.Auto {
		// Sequential, one suggestion + one matting pass per item; failures
		// stay on the item.
		for _, it := range h.manager.Items() {
			if it.Status == collection.StatusDone {
				continue
			}
			if err := h.manager.Process(ctx, it.ID, h.suggestFor(it.Source, settings)); err != nil {
				h.writeError(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
	} else {
		if err := h.manager.ProcessAll(ctx, settings); err != nil {
			h.writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	h.writeJSON(w, map[string]any{"message": "processing complete"})
}

func (h *Handler) suggestFor(src *image.NRGBA, fallback matting.Settings) matting.Settings {
	if src == nil {
		return fallback
	}
	suggested, err := matting.Suggest(src)
	if err != nil {
		slog.Warn("Threshold suggestion failed, using request settings", "err", err)
		return fallback
	}
	return suggested
}

// HandleSuggest returns the recommended matting settings for one item.
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	item, ok := h.getItemOrError(w, r.URL.Query().Get("id"))
	if !ok {
		return
	}
	if item.Source == nil {
		h.writeError(w, "Sticker has no decoded pixels", http.StatusBadRequest)
		return
	}
	settings, err := matting.Suggest(item.Source)
	if err != nil {
		h.writeError(w, "Suggestion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, settings)
}

// HandleRole assigns the exclusive main or tab flag to an item.
func (h *Handler) HandleRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var request struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.manager.SetRole(request.ID, collection.Role(request.Role)); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, map[string]any{"id": request.ID, "role": request.Role})
}

func (h *Handler) servePNG(w http.ResponseWriter, img *image.NRGBA) {
	data, err := imageio.EncodePNG(img)
	if err != nil {
		h.writeError(w, "Failed to encode preview: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(data); err != nil {
		slog.Error("Unable to write preview", "err", err)
	}
}
