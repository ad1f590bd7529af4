package store

import (
	"context"
	"time"

	"github.com/MKhiriev/escrow-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists marketplace accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error)
	CountActivity(ctx context.Context, id int64) (jobs int, proposals int, err error)

	// SetPresence writes the online flag and last seen timestamp.
	SetPresence(ctx context.Context, id int64, online bool, seenAt time.Time) error
	// MarkStaleOffline flips users last seen before seenBefore to offline and
	// reports how many rows changed.
	MarkStaleOffline(ctx context.Context, seenBefore time.Time) (int64, error)

	ListFreelancers(ctx context.Context, filter models.FreelancerFilter) ([]models.Freelancer, int, error)
	FindFreelancerByID(ctx context.Context, id int64) (models.Freelancer, error)
}

// JobRepository persists job postings.
type JobRepository interface {
	CreateJob(ctx context.Context, job models.Job) (models.Job, error)
	FindJobByID(ctx context.Context, id int64) (models.Job, error)
	// IncrementViews bumps the view counter and returns the job as stored
	// after the increment.
	IncrementViews(ctx context.Context, id int64) (models.Job, error)
	UpdateJob(ctx context.Context, id int64, update models.JobUpdate) (models.Job, error)
	DeleteJob(ctx context.Context, id int64) error
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error)
	ListJobsByOwner(ctx context.Context, ownerID int64, status models.JobStatus) ([]models.Job, error)
	ListCategories(ctx context.Context) ([]models.CategoryCount, error)
}

// ProposalRepository persists freelancer applications.
type ProposalRepository interface {
	CreateProposal(ctx context.Context, proposal models.Proposal) (models.Proposal, error)
	ListProposalsByJob(ctx context.Context, jobID int64) ([]models.Proposal, error)
}

// ErrorClassificator decides whether a failed database call could succeed
// if repeated. Requests are never retried; the classification is logged so
// operators can tell outages from bad input.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
