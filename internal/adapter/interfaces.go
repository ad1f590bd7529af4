// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client of the marketplace REST API.
//
// [APIAdapter] hides the transport from its callers: requests and responses
// are models types and failures are mapped to the sentinel errors of this
// package, so callers can use [errors.Is] (e.g. [ErrForbidden] for 403,
// [ErrUnauthorized] for 401) and [errors.As] with [*APIError] to read the
// server message and field errors.
package adapter

import (
	"context"

	"github.com/MKhiriev/escrow-api/models"
)

// APIAdapter talks to the marketplace API on behalf of one user.
// Implementations attach the stored bearer token to protected calls.
type APIAdapter interface {
	// SetToken stores the bearer token used by subsequent protected calls.
	// Signup and Signin call it on success.
	SetToken(token string)
	Token() string

	Health(ctx context.Context) (models.HealthResponse, error)

	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error)
	Signin(ctx context.Context, req models.SigninRequest) (models.AuthResponse, error)
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (models.UserProfile, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)
	MyJobs(ctx context.Context, status models.JobStatus) ([]models.Job, error)

	ListFreelancers(ctx context.Context, filter models.FreelancerFilter) (models.FreelancersPage, error)
	GetFreelancer(ctx context.Context, id int64) (models.Freelancer, error)

	ListJobs(ctx context.Context, filter models.JobFilter) (models.JobsPage, error)
	Categories(ctx context.Context) ([]models.CategoryCount, error)
	GetJob(ctx context.Context, id int64) (models.Job, error)
	CreateJob(ctx context.Context, req models.CreateJobRequest) (models.Job, error)
	UpdateJob(ctx context.Context, id int64, req models.UpdateJobRequest) (models.Job, error)
	DeleteJob(ctx context.Context, id int64) error

	Apply(ctx context.Context, jobID int64, req models.CreateProposalRequest) (models.Proposal, error)
	ListProposals(ctx context.Context, jobID int64) ([]models.Proposal, error)

	Chat(ctx context.Context, message string) (string, error)
}
