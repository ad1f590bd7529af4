package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/models"
)

// jobRepository is the PostgreSQL-backed implementation of [JobRepository].
// Every read joins the owner summary and the computed proposal count.
type jobRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewJobRepository(db *DB, logger *logger.Logger) JobRepository {
	logger.Debug().Msg("creating job repository")
	return &jobRepository{
		db:     db,
		logger: logger,
	}
}

func (r *jobRepository) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	row := r.db.QueryRowContext(ctx, createJob, job.UserID, job.Title, job.Description, job.Budget,
		job.MinBudget, job.MaxBudget, string(job.BudgetType), job.Duration, job.Category, job.Location, job.Tags)

	created, err := scanJob(row)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*jobRepository.CreateJob").
			Bool("retryable", r.db.retryable(err)).Msg("error inserting job")
		return models.Job{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

func (r *jobRepository) FindJobByID(ctx context.Context, id int64) (models.Job, error) {
	return r.queryJob(ctx, "*jobRepository.FindJobByID", findJobByID, id)
}

func (r *jobRepository) IncrementViews(ctx context.Context, id int64) (models.Job, error) {
	return r.queryJob(ctx, "*jobRepository.IncrementViews", incrementJobViews, id)
}

// UpdateJob applies the non-nil fields of update. An empty update degrades to
// a plain lookup so updated_at is not bumped for a no-op.
func (r *jobRepository) UpdateJob(ctx context.Context, id int64, update models.JobUpdate) (models.Job, error) {
	if update.IsEmpty() {
		return r.FindJobByID(ctx, id)
	}

	query, args, err := buildUpdateJobQuery(id, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*jobRepository.UpdateJob").Msg("error building query")
		return models.Job{}, err
	}

	return r.queryJob(ctx, "*jobRepository.UpdateJob", query, args...)
}

func (r *jobRepository) queryJob(ctx context.Context, fn, query string, args ...any) (models.Job, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Job{}, ErrJobNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).
			Bool("retryable", r.db.retryable(err)).Msg("error querying job")
		return models.Job{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return job, nil
}

// DeleteJob removes the job; its proposals go with it through the foreign
// key cascade.
func (r *jobRepository) DeleteJob(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteJob, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*jobRepository.DeleteJob").Msg("error deleting job")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountJobsQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*jobRepository.ListJobs").Msg("error counting jobs")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildListJobsQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	jobs, err := r.queryJobs(ctx, "*jobRepository.ListJobs", query, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) ListJobsByOwner(ctx context.Context, ownerID int64, status models.JobStatus) ([]models.Job, error) {
	query, args, err := buildListJobsByOwnerQuery(ownerID, status)
	if err != nil {
		return nil, err
	}
	return r.queryJobs(ctx, "*jobRepository.ListJobsByOwner", query, args...)
}

func (r *jobRepository) queryJobs(ctx context.Context, fn, query string, args ...any) ([]models.Job, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Bool("retryable", r.db.retryable(err)).Msg("error listing jobs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return jobs, nil
}

func (r *jobRepository) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx, listJobCategories)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*jobRepository.ListCategories").Msg("error listing categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.CategoryCount, 0)
	for rows.Next() {
		var c models.CategoryCount
		if err = rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}
