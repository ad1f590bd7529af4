package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/models"
)

func sampleJob(id int64, views int) models.Job {
	category := "Web Development"
	return models.Job{
		ID:          id,
		UserID:      clientIdentity.ID,
		Title:       "Build a landing page",
		Description: "Need a responsive landing page for a product launch",
		Budget:      1500,
		BudgetType:  models.BudgetTypeFixed,
		Category:    &category,
		Tags:        models.StringList{"react"},
		Status:      models.JobStatusOpen,
		ViewCount:   views,
		Owner:       &models.UserSummary{ID: clientIdentity.ID, Name: clientIdentity.Name},
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestListJobs_ParsesQuery(t *testing.T) {
	h, m := newMockedHandler(t)

	minBudget, maxBudget := 100.0, 5000.0
	m.jobs.EXPECT().List(gomock.Any(), models.JobFilter{
		PageRequest:  models.PageRequest{Page: 2, Limit: 100},
		Search:       "landing",
		Category:     "Web Development",
		Location:     "Remote",
		MinBudget:    &minBudget,
		MaxBudget:    &maxBudget,
		Status:       models.JobStatusOpen,
		FeaturedOnly: true,
		SortBy:       "budget",
		SortOrder:    "asc",
	}).Return([]models.Job{sampleJob(1, 0)}, models.Pagination{Page: 2, Limit: 100, Total: 101, Pages: 2}, nil)

	rr := serve(t, h, http.MethodGet,
		"/api/jobs?page=2&limit=500&search=+landing+&category=Web+Development&location=Remote"+
			"&minBudget=100&maxBudget=5000&status=open&isFeatured=true&sortBy=budget&sortOrder=asc", "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[models.JobsPage](t, rr)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 100, Total: 101, Pages: 2}, resp.Pagination)
	assert.Contains(t, rr.Body.String(), `"user":{"id":1`)
}

func TestListJobs_EmptyPageIsArray(t *testing.T) {
	h, m := newMockedHandler(t)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).
		Return([]models.Job{}, models.Pagination{Page: 9, Limit: 10, Total: 3, Pages: 1}, nil)

	rr := serve(t, h, http.MethodGet, "/api/jobs?page=9", "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"jobs":[]`)
}

func TestListJobs_BadNumber(t *testing.T) {
	h, _ := newMockedHandler(t)

	rr := serve(t, h, http.MethodGet, "/api/jobs?minBudget=cheap", "", "")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	resp := errorBody(t, rr)
	assert.Equal(t, "Invalid Request", resp.Message)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "minBudget", resp.Errors[0].Field)
}

func TestGetJob(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		setup       func(m testServices)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "found",
			path: "/api/jobs/5",
			setup: func(m testServices) {
				m.jobs.EXPECT().Get(gomock.Any(), int64(5)).Return(sampleJob(5, 3), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing",
			path: "/api/jobs/404",
			setup: func(m testServices) {
				m.jobs.EXPECT().Get(gomock.Any(), int64(404)).Return(models.Job{}, service.ErrJobNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Job not found",
		},
		{
			name:        "malformed id",
			path:        "/api/jobs/abc",
			setup:       func(m testServices) {},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Job not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			tt.setup(m)

			rr := serve(t, h, http.MethodGet, tt.path, "", "")

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, errorBody(t, rr).Message)
				return
			}
			resp := decodeBody[models.JobResponse](t, rr)
			assert.Equal(t, 3, resp.Job.ViewCount)
		})
	}
}

func TestCreateJob(t *testing.T) {
	const body = `{"title":"Build a landing page","description":"Need a responsive landing page for a product launch","budget":1500}`

	t.Run("client creates", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.jobs.EXPECT().Create(gomock.Any(), clientIdentity, models.CreateJobRequest{
			Title:       "Build a landing page",
			Description: "Need a responsive landing page for a product launch",
			Budget:      1500,
		}).Return(sampleJob(7, 0), nil)

		rr := serve(t, h, http.MethodPost, "/api/jobs", body, clientToken)

		require.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeBody[models.JobResponse](t, rr)
		assert.Equal(t, "Job created successfully", resp.Message)
		assert.Equal(t, int64(7), resp.Job.ID)
	})

	t.Run("freelancer is refused", func(t *testing.T) {
		h, _ := newMockedHandler(t)

		rr := serve(t, h, http.MethodPost, "/api/jobs", body, freelancerToken)

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Access denied. client role required.", errorBody(t, rr).Message)
	})

	t.Run("anonymous is refused", func(t *testing.T) {
		h, _ := newMockedHandler(t)

		rr := serve(t, h, http.MethodPost, "/api/jobs", body, "")

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateJob(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		body        string
		authErr     error
		wantUpdate  bool
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "owner updates",
			token:       clientToken,
			body:        `{"status":"in_progress"}`,
			wantUpdate:  true,
			wantStatus:  http.StatusOK,
			wantMessage: "Job updated successfully",
		},
		{
			name:        "stranger with invalid payload still gets 403",
			token:       freelancerToken,
			body:        `{"title":"x"}`,
			authErr:     service.ErrNotAuthorizedToUpdateJob,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Not authorized to update this job",
		},
		{
			name:        "stranger with mistyped payload still gets 403",
			token:       freelancerToken,
			body:        `{"title":5}`,
			authErr:     service.ErrNotAuthorizedToUpdateJob,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Not authorized to update this job",
		},
		{
			name:        "stranger with malformed json still gets 403",
			token:       freelancerToken,
			body:        `{not json`,
			authErr:     service.ErrNotAuthorizedToUpdateJob,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Not authorized to update this job",
		},
		{
			name:        "owner with malformed json",
			token:       clientToken,
			body:        `{not json`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid JSON was passed",
		},
		{
			name:        "missing job",
			token:       clientToken,
			body:        `{"title":"A brand new title"}`,
			authErr:     service.ErrJobNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Job not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			m.jobs.EXPECT().AuthorizeUpdate(gomock.Any(), gomock.Any(), int64(5)).Return(tt.authErr)
			if tt.wantUpdate {
				updated := sampleJob(5, 0)
				updated.Status = models.JobStatusInProgress
				m.jobs.EXPECT().Update(gomock.Any(), clientIdentity, int64(5), gomock.Any()).Return(updated, nil)
			}

			rr := serve(t, h, http.MethodPut, "/api/jobs/5", tt.body, tt.token)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, decodeBody[models.JobResponse](t, rr).Message)
		})
	}
}

func TestDeleteJob(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.jobs.EXPECT().Delete(gomock.Any(), clientIdentity, int64(5)).Return(nil)

		rr := serve(t, h, http.MethodDelete, "/api/jobs/5", "", clientToken)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Job deleted successfully", decodeBody[models.MessageResponse](t, rr).Message)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.jobs.EXPECT().Delete(gomock.Any(), freelancerIdentity, int64(5)).Return(service.ErrNotAuthorizedToDeleteJob)

		rr := serve(t, h, http.MethodDelete, "/api/jobs/5", "", freelancerToken)

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Not authorized to delete this job", errorBody(t, rr).Message)
	})
}

func TestListCategories(t *testing.T) {
	h, m := newMockedHandler(t)
	m.jobs.EXPECT().Categories(gomock.Any()).Return([]models.CategoryCount{
		{Category: "Design", Count: 2},
		{Category: "Web Development", Count: 5},
	}, nil)

	rr := serve(t, h, http.MethodGet, "/api/jobs/categories", "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[models.CategoriesResponse](t, rr)
	assert.Len(t, resp.Categories, 2)
}

func TestListCategories_Failure(t *testing.T) {
	h, m := newMockedHandler(t)
	m.jobs.EXPECT().Categories(gomock.Any()).Return(nil, errors.New("boom"))

	rr := serve(t, h, http.MethodGet, "/api/jobs/categories", "", "")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal Server Error", errorBody(t, rr).Message)
}
