package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
)

// jobService implements JobService. Every mutation reloads the job and runs
// authorizeOwner before anything else, so a non-owner is refused the same
// way whatever the body holds.
type jobService struct {
	jobRepository store.JobRepository
	validator     validators.Validator

	logger *logger.Logger
}

func NewJobService(jobRepository store.JobRepository, validator validators.Validator, logger *logger.Logger) JobService {
	return &jobService{
		jobRepository: jobRepository,
		validator:     validator,
		logger:        logger,
	}
}

func (s *jobService) Create(ctx context.Context, owner models.Identity, req models.CreateJobRequest) (models.Job, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Job{}, err
	}

	budgetType := models.BudgetTypeFixed
	if req.BudgetType != nil {
		budgetType = models.BudgetType(*req.BudgetType)
	}

	job, err := s.jobRepository.CreateJob(ctx, models.Job{
		UserID:      owner.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Budget:      req.Budget,
		MinBudget:   req.MinBudget,
		MaxBudget:   req.MaxBudget,
		BudgetType:  budgetType,
		Duration:    req.Duration,
		Category:    req.Category,
		Location:    req.Location,
		Tags:        models.StringList(req.Tags).Normalize(false),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", owner.ID).Msg("job creation failed")
		return models.Job{}, fmt.Errorf("job creation failed: %w", err)
	}

	return job, nil
}

func (s *jobService) List(ctx context.Context, filter models.JobFilter) ([]models.Job, models.Pagination, error) {
	if err := s.validator.Validate(ctx, filter); err != nil {
		return nil, models.Pagination{}, err
	}
	filter.PageRequest = filter.PageRequest.Normalize()

	jobs, total, err := s.jobRepository.ListJobs(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("listing jobs failed: %w", err)
	}

	return jobs, models.NewPagination(filter.PageRequest, total), nil
}

func (s *jobService) Get(ctx context.Context, id int64) (models.Job, error) {
	job, err := s.jobRepository.IncrementViews(ctx, id)
	if err != nil {
		return models.Job{}, s.mapJobError(err)
	}
	return job, nil
}

func (s *jobService) AuthorizeUpdate(ctx context.Context, caller models.Identity, id int64) error {
	_, err := s.authorizeOwner(ctx, caller, id, ErrNotAuthorizedToUpdateJob)
	return err
}

// Update applies a partial update for the owner of the job.
// Order of checks: existence (404), ownership (403), body (400).
func (s *jobService) Update(ctx context.Context, caller models.Identity, id int64, req models.UpdateJobRequest) (models.Job, error) {
	job, err := s.authorizeOwner(ctx, caller, id, ErrNotAuthorizedToUpdateJob)
	if err != nil {
		return models.Job{}, err
	}

	if err = s.validator.Validate(ctx, req); err != nil {
		return models.Job{}, err
	}

	update := jobUpdateFromRequest(req)

	// the range must hold against the stored bound that was not sent
	lo, hi := job.MinBudget, job.MaxBudget
	if update.MinBudget != nil {
		lo = update.MinBudget
	}
	if update.MaxBudget != nil {
		hi = update.MaxBudget
	}
	if lo != nil && hi != nil && *lo > *hi {
		return models.Job{}, validators.NewValidationError(validators.FieldMaxBudget, "Maximum budget must not be less than minimum budget")
	}

	updated, err := s.jobRepository.UpdateJob(ctx, id, update)
	if err != nil {
		return models.Job{}, s.mapJobError(err)
	}

	logger.FromContext(ctx).Info().Int64("job_id", id).Int64("user_id", caller.ID).Msg("job updated")
	return updated, nil
}

func (s *jobService) Delete(ctx context.Context, caller models.Identity, id int64) error {
	if _, err := s.authorizeOwner(ctx, caller, id, ErrNotAuthorizedToDeleteJob); err != nil {
		return err
	}

	if err := s.jobRepository.DeleteJob(ctx, id); err != nil {
		return s.mapJobError(err)
	}

	logger.FromContext(ctx).Info().Int64("job_id", id).Int64("user_id", caller.ID).Msg("job deleted")
	return nil
}

func (s *jobService) ListMine(ctx context.Context, caller models.Identity, status models.JobStatus) ([]models.Job, error) {
	if status != "" && !status.Valid() {
		return nil, validators.NewValidationError(validators.FieldStatus, "Status must be one of open, in_progress, completed, cancelled")
	}

	jobs, err := s.jobRepository.ListJobsByOwner(ctx, caller.ID, status)
	if err != nil {
		return nil, fmt.Errorf("listing own jobs failed: %w", err)
	}
	return jobs, nil
}

func (s *jobService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	categories, err := s.jobRepository.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories failed: %w", err)
	}
	return categories, nil
}

// authorizeOwner loads the job and returns denied unless caller owns it.
func (s *jobService) authorizeOwner(ctx context.Context, caller models.Identity, jobID int64, denied error) (models.Job, error) {
	return authorizeJobOwner(ctx, s.jobRepository, caller, jobID, denied)
}

func authorizeJobOwner(ctx context.Context, jobs store.JobRepository, caller models.Identity, jobID int64, denied error) (models.Job, error) {
	job, err := jobs.FindJobByID(ctx, jobID)
	if errors.Is(err, store.ErrJobNotFound) {
		return models.Job{}, ErrJobNotFound
	}
	if err != nil {
		return models.Job{}, fmt.Errorf("loading job failed: %w", err)
	}

	if job.UserID != caller.ID {
		logger.FromContext(ctx).Warn().
			Int64("job_id", jobID).
			Int64("owner_id", job.UserID).
			Int64("caller_id", caller.ID).
			Msg("ownership check failed")
		return models.Job{}, denied
	}

	return job, nil
}

func (s *jobService) mapJobError(err error) error {
	if errors.Is(err, store.ErrJobNotFound) {
		return ErrJobNotFound
	}
	return fmt.Errorf("job storage failed: %w", err)
}

func jobUpdateFromRequest(req models.UpdateJobRequest) models.JobUpdate {
	update := models.JobUpdate{
		Description: req.Description,
		Budget:      req.Budget,
		MinBudget:   req.MinBudget,
		MaxBudget:   req.MaxBudget,
		Duration:    req.Duration,
		Category:    req.Category,
		Location:    req.Location,
		Tags:        models.StringList(req.Tags).Normalize(false),
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		update.Title = &title
	}
	if req.BudgetType != nil {
		bt := models.BudgetType(*req.BudgetType)
		update.BudgetType = &bt
	}
	if req.Status != nil {
		st := models.JobStatus(*req.Status)
		update.Status = &st
	}
	return update
}
