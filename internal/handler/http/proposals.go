package http

import (
	"net/http"

	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/internal/utils"
	"github.com/MKhiriev/escrow-api/models"
)

func (h *Handler) applyToJob(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetIdentityFromContext(r.Context())

	jobID, err := idFromPath(r, service.ErrJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.CreateProposalRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	proposal, err := h.services.ProposalService.Apply(r.Context(), caller, jobID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.ProposalResponse{
		Message:  "Proposal submitted successfully",
		Proposal: proposal,
	}, http.StatusCreated)
}

func (h *Handler) listProposals(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetIdentityFromContext(r.Context())

	jobID, err := idFromPath(r, service.ErrJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	proposals, err := h.services.ProposalService.ListForJob(r.Context(), caller, jobID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.ProposalsResponse{Proposals: proposals}, http.StatusOK)
}
