package handlers

import "net/http"

// GET /health
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/openapi.json
func (h *Handlers) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	if h.doc == nil {
		WriteError(w, http.StatusNotFound, ErrorResponse{Error: "api document is not loaded"})
		return
	}
	WriteJSON(w, http.StatusOK, h.doc)
}
