package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehigh-university-libraries/stickerpress/internal/editor"
)

// HandleEdit serves /api/edit/{action}. One touch-up session can be open at
// a time; ops replay through the same state machine scripted touch-ups use.
//
//	open   {"id": "..."}          check the item out into a session
//	op     {"ops": [...]}         apply editor operations to the session
//	undo   {}                     step the session back one snapshot
//	save   {}                     adopt the session result onto the item
//	close  {}                     discard the session, item untouched
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/edit/open":
		h.handleEditOpen(w, r)
	case "/api/edit/op":
		h.handleEditOp(w, r)
	case "/api/edit/undo":
		h.handleEditUndo(w)
	case "/api/edit/save":
		h.handleEditSave(w)
	case "/api/edit/close":
		h.edits.Close()
		h.writeJSON(w, map[string]any{"message": "session discarded"})
	default:
		h.writeError(w, "Unknown edit action", http.StatusNotFound)
	}
}

// HandleEditCanvas serves the open session's live canvas as PNG.
func (h *Handler) HandleEditCanvas(w http.ResponseWriter, r *http.Request) {
	_, session, ok := h.edits.Current()
	if !ok {
		h.writeError(w, "No touch-up session open", http.StatusNotFound)
		return
	}
	h.servePNG(w, session.Canvas())
}

func (h *Handler) handleEditOpen(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	item, ok := h.getItemOrError(w, request.ID)
	if !ok {
		return
	}
	if item.Source == nil {
		h.writeError(w, "Sticker has no decoded pixels", http.StatusBadRequest)
		return
	}

	session := editor.NewSession(item.Source, item.Processed, item.Settings)
	if err := h.edits.Open(item.ID, session); err != nil {
		h.writeError(w, err.Error(), http.StatusConflict)
		return
	}
	h.writeJSON(w, map[string]any{"id": item.ID, "message": "session open"})
}

func (h *Handler) handleEditOp(w http.ResponseWriter, r *http.Request) {
	_, session, ok := h.edits.Current()
	if !ok {
		h.writeError(w, "No touch-up session open", http.StatusNotFound)
		return
	}
	var request struct {
		Ops []editor.Op `json:"ops"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := session.Run(editor.Script{Ops: request.Ops}); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, map[string]any{"can_undo": session.CanUndo()})
}

func (h *Handler) handleEditUndo(w http.ResponseWriter) {
	_, session, ok := h.edits.Current()
	if !ok {
		h.writeError(w, "No touch-up session open", http.StatusNotFound)
		return
	}
	undone := session.Undo()
	h.writeJSON(w, map[string]any{"undone": undone, "can_undo": session.CanUndo()})
}

func (h *Handler) handleEditSave(w http.ResponseWriter) {
	itemID, session, ok := h.edits.Current()
	if !ok {
		h.writeError(w, "No touch-up session open", http.StatusNotFound)
		return
	}
	raster, settings := session.Save()
	if err := h.manager.ApplyEdit(itemID, raster, settings); err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.edits.Close()
	h.writeJSON(w, map[string]any{"id": itemID, "message": "touch-up saved"})
}
