package http

import (
	"net/http"

	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/internal/utils"
	"github.com/MKhiriev/escrow-api/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	profile, err := h.services.UserService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.ProfileResponse{User: profile}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req models.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    user,
	}, http.StatusOK)
}

func (h *Handler) getMyJobs(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetIdentityFromContext(r.Context())

	jobs, err := h.services.JobService.ListMine(r.Context(), caller, models.JobStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.JobsResponse{Jobs: jobs}, http.StatusOK)
}

func (h *Handler) listFreelancers(w http.ResponseWriter, r *http.Request) {
	filter, err := freelancerFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	freelancers, pagination, err := h.services.UserService.ListFreelancers(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.FreelancersPage{Freelancers: freelancers, Pagination: pagination}, http.StatusOK)
}

func (h *Handler) getFreelancer(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, service.ErrFreelancerNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	freelancer, err := h.services.UserService.GetFreelancer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.FreelancerResponse{Freelancer: freelancer}, http.StatusOK)
}
