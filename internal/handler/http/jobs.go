package http

import (
	"net/http"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/internal/utils"
	"github.com/MKhiriev/escrow-api/models"
)

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetIdentityFromContext(r.Context())

	var req models.CreateJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.services.JobService.Create(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("job_id", job.ID).Msg("job created")

	writeJSON(w, r, models.JobResponse{Message: "Job created successfully", Job: job}, http.StatusCreated)
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	filter, err := jobFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	jobs, pagination, err := h.services.JobService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.JobsPage{Jobs: jobs, Pagination: pagination}, http.StatusOK)
}

// getJob counts every successful read as one view.
func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, service.ErrJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.services.JobService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.JobResponse{Job: job}, http.StatusOK)
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetIdentityFromContext(r.Context())

	id, err := idFromPath(r, service.ErrJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// a non-owner is refused whatever the body holds
	if err = h.services.JobService.AuthorizeUpdate(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateJobRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.services.JobService.Update(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.JobResponse{Message: "Job updated successfully", Job: job}, http.StatusOK)
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetIdentityFromContext(r.Context())

	id, err := idFromPath(r, service.ErrJobNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.JobService.Delete(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("job_id", id).Msg("job deleted")

	writeMessage(w, r, "Job deleted successfully", http.StatusOK)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.JobService.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.CategoriesResponse{Categories: categories}, http.StatusOK)
}
