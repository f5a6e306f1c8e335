package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/transform"
	"github.com/lehigh-university-libraries/stickerpress/internal/utils"
)

const maxUploadBytes = 32 << 20

// HandleUpload accepts one or more image files as multipart form data, or a
// remote image via the url form value, and adds each as a pending sticker.
// Identical files (by content hash) are added once.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, "Failed to parse upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	if url := r.FormValue("url"); url != "" {
		h.handleURLUpload(w, url)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		h.writeError(w, "No files in upload", http.StatusBadRequest)
		return
	}

	added := make([]string, 0, len(files))
	skipped := 0
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}

		hash := utils.CalculateDataMD5(data)
		h.mu.Lock()
		if _, dup := h.seen[hash]; dup {
			h.mu.Unlock()
			skipped++
			continue
		}
		item := h.manager.AddBytes(fh.Filename, data)
		h.seen[hash] = item.ID
		h.mu.Unlock()
		added = append(added, item.ID)
	}

	h.writeJSON(w, map[string]any{
		"added":   added,
		"skipped": skipped,
	})
}

// handleURLUpload fetches an image from a URL and adds it like a file
// upload, with the same content-hash deduplication.
func (h *Handler) handleURLUpload(w http.ResponseWriter, url string) {
	resp, err := http.Get(url)
	if err != nil {
		h.writeError(w, "Failed to fetch URL: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		h.writeError(w, "URL returned status "+resp.Status, http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadBytes))
	if err != nil {
		h.writeError(w, "Failed to read URL response: "+err.Error(), http.StatusBadRequest)
		return
	}

	hash := utils.CalculateDataMD5(data)
	h.mu.Lock()
	if _, dup := h.seen[hash]; dup {
		h.mu.Unlock()
		h.writeJSON(w, map[string]any{"added": []string{}, "skipped": 1})
		return
	}
	item := h.manager.AddBytes(filepath.Base(url), data)
	h.seen[hash] = item.ID
	h.mu.Unlock()
	h.writeJSON(w, map[string]any{"added": []string{item.ID}, "skipped": 0})
}

// HandleCrop accepts a single sheet image plus rows/cols form values,
// slices it into a grid, and adds every cell as a pending sticker.
func (h *Handler) HandleCrop(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := strconv.Atoi(r.FormValue("rows"))
	if err != nil {
		h.writeError(w, "Invalid rows value", http.StatusBadRequest)
		return
	}
	cols, err := strconv.Atoi(r.FormValue("cols"))
	if err != nil {
		h.writeError(w, "Invalid cols value", http.StatusBadRequest)
		return
	}

	sheet, err := imageio.Decode(file)
	if err != nil {
		h.writeError(w, "Failed to decode sheet: "+err.Error(), http.StatusBadRequest)
		return
	}
	cells, err := transform.CropGrid(sheet, rows, cols)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	added := make([]string, 0, len(cells))
	for i, cell := range cells {
		item := h.manager.Add(fmt.Sprintf("%s_cell%02d", header.Filename, i+1), cell)
		added = append(added, item.ID)
	}
	h.writeJSON(w, map[string]any{"added": added})
}
