package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lehigh-university-libraries/stickerpress/internal/archive"
	"github.com/lehigh-university-libraries/stickerpress/internal/collection"
	"github.com/lehigh-university-libraries/stickerpress/internal/pack"
)

// HandleExport builds the pack zip from every done item and serves it as a
// download. Export failure never produces a partial archive; the response
// is either the full zip or an error status.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil {
		h.writeError(w, "Invalid count", http.StatusBadRequest)
		return
	}
	cfg := pack.Config{Count: count, Type: pack.Type(r.URL.Query().Get("type"))}
	if err := cfg.Validate(); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	artifacts, err := collection.Export(h.manager.Items(), cfg, nil)
	if errors.Is(err, collection.ErrNoEligibleItems) {
		h.writeError(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		h.writeError(w, "Export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	blob, err := archive.BuildZip(artifacts)
	if err != nil {
		h.writeError(w, "Export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	exportCount := len(artifacts) - 2
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+archive.Filename(exportCount)+`"`)
	if _, err := w.Write(blob); err != nil {
		slog.Error("Unable to write archive", "err", err)
	}
}
