package http

import (
	"net/http"

	"github.com/MKhiriev/escrow-api/models"
)

func (h *Handler) supportChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	reply, err := h.services.SupportService.Reply(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.ChatResponse{Reply: reply}, http.StatusOK)
}
