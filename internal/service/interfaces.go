package service

import (
	"context"
	"time"

	"github.com/MKhiriev/escrow-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(ctx context.Context, userID int64) (models.Token, error)
	// Verify returns the user id carried by tokenString. Failures are one of
	// ErrTokenMalformed, ErrTokenExpired, ErrTokenSignatureMismatch or
	// ErrTokenInvalid.
	Verify(ctx context.Context, tokenString string) (int64, error)
}

// AuthService owns the credential lifecycle.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error)
	Signin(ctx context.Context, req models.SigninRequest) (models.User, models.Token, error)
	Logout(ctx context.Context, userID int64) error

	// Authenticate resolves a bearer token into the identity of an existing
	// user.
	Authenticate(ctx context.Context, tokenString string) (models.Identity, error)
}

type UserService interface {
	Profile(ctx context.Context, userID int64) (models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)

	ListFreelancers(ctx context.Context, filter models.FreelancerFilter) ([]models.Freelancer, models.Pagination, error)
	GetFreelancer(ctx context.Context, id int64) (models.Freelancer, error)

	// TouchPresence marks the user online as of now.
	TouchPresence(ctx context.Context, userID int64) error
	// SweepStalePresence marks offline every user inactive for longer than ttl.
	SweepStalePresence(ctx context.Context, ttl time.Duration) (int64, error)
}

type JobService interface {
	Create(ctx context.Context, owner models.Identity, req models.CreateJobRequest) (models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, models.Pagination, error)
	// Get returns the job after bumping its view counter.
	Get(ctx context.Context, id int64) (models.Job, error)
	// AuthorizeUpdate runs the ownership guard of Update on its own, so the
	// transport can refuse a non-owner before reading the body.
	AuthorizeUpdate(ctx context.Context, caller models.Identity, id int64) error
	Update(ctx context.Context, caller models.Identity, id int64, req models.UpdateJobRequest) (models.Job, error)
	Delete(ctx context.Context, caller models.Identity, id int64) error
	ListMine(ctx context.Context, caller models.Identity, status models.JobStatus) ([]models.Job, error)
	Categories(ctx context.Context) ([]models.CategoryCount, error)
}

type ProposalService interface {
	Apply(ctx context.Context, freelancer models.Identity, jobID int64, req models.CreateProposalRequest) (models.Proposal, error)
	ListForJob(ctx context.Context, caller models.Identity, jobID int64) ([]models.Proposal, error)
}

// SupportService answers the support chat widget.
type SupportService interface {
	Reply(ctx context.Context, req models.ChatRequest) (string, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
