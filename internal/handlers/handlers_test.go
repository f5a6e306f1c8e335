package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
)

func imageTest(v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func pngUpload(t *testing.T, field, name string, v uint8) (*bytes.Buffer, string) {
	t.Helper()
	img := imageTest(v)
	data, err := imageio.EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	mw.Close()
	return &body, mw.FormDataContentType()
}

func postJSON(t *testing.T, fn http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func TestUploadProcessExportFlow(t *testing.T) {
	h := New()

	// Upload a white square.
	body, contentType := pngUpload(t, "files", "a.png", 250)
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.HandleUpload(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status %d: %s", w.Code, w.Body.String())
	}
	var uploaded struct {
		Added []string `json:"added"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &uploaded); err != nil {
		t.Fatal(err)
	}
	if len(uploaded.Added) != 1 {
		t.Fatalf("added = %v, want one item", uploaded.Added)
	}
	id := uploaded.Added[0]

	// Re-uploading the identical file is deduplicated.
	body, contentType = pngUpload(t, "files", "a-again.png", 250)
	req = httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	h.HandleUpload(w, req)
	if !strings.Contains(w.Body.String(), `"skipped":1`) {
		t.Errorf("duplicate upload not skipped: %s", w.Body.String())
	}

	// Matte it.
	w = postJSON(t, h.HandleProcess, "/api/process", map[string]any{
		"id": id, "mode": "white", "threshold": 200,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("process status %d: %s", w.Code, w.Body.String())
	}
	item, ok := h.Manager().Get(id)
	if !ok || item.Processed == nil {
		t.Fatal("processing did not produce matted pixels")
	}
	if item.Processed.NRGBAAt(0, 0).A != 0 {
		t.Error("white matting did not clear the background")
	}

	// Assign it the main role.
	w = postJSON(t, h.HandleRole, "/api/role", map[string]any{"id": id, "role": "main"})
	if w.Code != http.StatusOK {
		t.Fatalf("role status %d: %s", w.Code, w.Body.String())
	}

	// Export downloads a zip.
	req = httptest.NewRequest("GET", "/api/export?count=8&type=standard", nil)
	w = httptest.NewRecorder()
	h.HandleExport(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("export content type = %s", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "LINE_Stickers_1.zip") {
		t.Errorf("Content-Disposition = %s", w.Header().Get("Content-Disposition"))
	}
}

func TestExportWithNothingDoneConflicts(t *testing.T) {
	h := New()
	req := httptest.NewRequest("GET", "/api/export?count=8&type=standard", nil)
	w := httptest.NewRecorder()
	h.HandleExport(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 for empty collection", w.Code)
	}
}

func TestPreviewRejectsNonGET(t *testing.T) {
	h := New()
	item := h.Manager().Add("a.png", imageTest(1))

	req := httptest.NewRequest("POST", "/previews/"+item.ID+".png", nil)
	w := httptest.NewRecorder()
	h.HandlePreview(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}

	req = httptest.NewRequest("GET", "/previews/"+item.ID+".png", nil)
	w = httptest.NewRecorder()
	h.HandlePreview(w, req)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("GET preview: status %d, content type %s", w.Code, w.Header().Get("Content-Type"))
	}
}

func TestEditSessionFlow(t *testing.T) {
	h := New()
	item := h.Manager().Add("a.png", imageTest(250))

	w := postJSON(t, h.HandleEdit, "/api/edit/open", map[string]any{"id": item.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("open status %d: %s", w.Code, w.Body.String())
	}
	// A second open conflicts while the first is held.
	w = postJSON(t, h.HandleEdit, "/api/edit/open", map[string]any{"id": item.ID})
	if w.Code != http.StatusConflict {
		t.Errorf("second open status = %d, want 409", w.Code)
	}

	w = postJSON(t, h.HandleEdit, "/api/edit/op", map[string]any{
		"ops": []map[string]any{
			{"action": "brush", "size": 8},
			{"action": "erase", "x": 4, "y": 4},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("op status %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, h.HandleEdit, "/api/edit/save", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("save status %d: %s", w.Code, w.Body.String())
	}
	got, _ := h.Manager().Get(item.ID)
	if got.Processed == nil || got.Processed.NRGBAAt(4, 4).A != 0 {
		t.Error("saved touch-up not adopted onto the item")
	}
	// Save released the session.
	w = postJSON(t, h.HandleEdit, "/api/edit/open", map[string]any{"id": item.ID})
	if w.Code != http.StatusOK {
		t.Errorf("open after save status = %d", w.Code)
	}
}
