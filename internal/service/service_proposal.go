package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
)

type proposalService struct {
	proposalRepository store.ProposalRepository
	jobRepository      store.JobRepository
	validator          validators.Validator

	logger *logger.Logger
}

func NewProposalService(proposals store.ProposalRepository, jobs store.JobRepository, validator validators.Validator, logger *logger.Logger) ProposalService {
	return &proposalService{
		proposalRepository: proposals,
		jobRepository:      jobs,
		validator:          validator,
		logger:             logger,
	}
}

// Apply submits a pending proposal. Only open jobs accept proposals and a
// freelancer may apply to a job once.
func (s *proposalService) Apply(ctx context.Context, freelancer models.Identity, jobID int64, req models.CreateProposalRequest) (models.Proposal, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Proposal{}, err
	}

	job, err := s.jobRepository.FindJobByID(ctx, jobID)
	if errors.Is(err, store.ErrJobNotFound) {
		return models.Proposal{}, ErrJobNotFound
	}
	if err != nil {
		return models.Proposal{}, fmt.Errorf("loading job failed: %w", err)
	}
	if job.Status != models.JobStatusOpen {
		return models.Proposal{}, ErrJobNotOpen
	}

	proposal, err := s.proposalRepository.CreateProposal(ctx, models.Proposal{
		JobID:        jobID,
		FreelancerID: freelancer.ID,
		CoverLetter:  req.CoverLetter,
		BidAmount:    req.BidAmount,
	})
	switch {
	case errors.Is(err, store.ErrProposalAlreadyExists):
		return models.Proposal{}, ErrAlreadyApplied
	case errors.Is(err, store.ErrJobNotFound):
		return models.Proposal{}, ErrJobNotFound
	case err != nil:
		return models.Proposal{}, fmt.Errorf("proposal creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("job_id", jobID).Int64("freelancer_id", freelancer.ID).Msg("proposal submitted")
	return proposal, nil
}

// ListForJob returns the proposals of a job to its owner.
func (s *proposalService) ListForJob(ctx context.Context, caller models.Identity, jobID int64) ([]models.Proposal, error) {
	if _, err := authorizeJobOwner(ctx, s.jobRepository, caller, jobID, ErrNotAuthorizedToViewJob); err != nil {
		return nil, err
	}

	proposals, err := s.proposalRepository.ListProposalsByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing proposals failed: %w", err)
	}
	return proposals, nil
}
