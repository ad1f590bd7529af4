package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/models"
	"github.com/jackc/pgerrcode"
)

type proposalRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewProposalRepository(db *DB, logger *logger.Logger) ProposalRepository {
	logger.Debug().Msg("creating proposal repository")
	return &proposalRepository{
		db:     db,
		logger: logger,
	}
}

// CreateProposal stores a pending proposal.
//
// Error handling:
//   - unique_violation (23505) on (job_id, freelancer_id) → [ErrProposalAlreadyExists].
//   - foreign_key_violation (23503) → [ErrJobNotFound].
func (r *proposalRepository) CreateProposal(ctx context.Context, proposal models.Proposal) (models.Proposal, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createProposal, proposal.JobID, proposal.FreelancerID, proposal.CoverLetter, proposal.BidAmount)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*proposalRepository.CreateProposal").
			Bool("retryable", r.db.retryable(err)).Msg("error inserting proposal")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Proposal{}, ErrProposalAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.Proposal{}, ErrJobNotFound
		default:
			return models.Proposal{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	created, err := scanProposal(row)
	if err != nil {
		log.Err(err).Str("func", "*proposalRepository.CreateProposal").Msg("error: scanning error")
		return models.Proposal{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return created, nil
}

// ListProposalsByJob returns the proposals of a job, newest first.
func (r *proposalRepository) ListProposalsByJob(ctx context.Context, jobID int64) ([]models.Proposal, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listProposalsByJob, jobID)
	if err != nil {
		log.Err(err).Str("func", "*proposalRepository.ListProposalsByJob").Msg("error listing proposals")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	proposals := make([]models.Proposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		proposals = append(proposals, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return proposals, nil
}
