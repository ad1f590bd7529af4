package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/mock"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var freelancer = models.Identity{ID: 20, UserType: models.UserTypeFreelancer}

func newTestProposalSvc(t *testing.T) (ProposalService, *mock.MockProposalRepository, *mock.MockJobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	proposals := mock.NewMockProposalRepository(ctrl)
	jobs := mock.NewMockJobRepository(ctrl)
	return NewProposalService(proposals, jobs, validators.NewRequestValidator(), logger.Nop()), proposals, jobs
}

func validProposal() models.CreateProposalRequest {
	return models.CreateProposalRequest{
		CoverLetter: "I have built many landing pages in React.",
		BidAmount:   450,
	}
}

func TestProposalService_Apply(t *testing.T) {
	openJob := models.Job{ID: 1, UserID: owner.ID, Status: models.JobStatusOpen}

	tests := []struct {
		name    string
		req     models.CreateProposalRequest
		setup   func(proposals *mock.MockProposalRepository, jobs *mock.MockJobRepository)
		wantErr error
	}{
		{
			name: "submitted",
			req:  validProposal(),
			setup: func(proposals *mock.MockProposalRepository, jobs *mock.MockJobRepository) {
				jobs.EXPECT().FindJobByID(gomock.Any(), int64(1)).Return(openJob, nil)
				proposals.EXPECT().CreateProposal(gomock.Any(), models.Proposal{
					JobID:        1,
					FreelancerID: freelancer.ID,
					CoverLetter:  validProposal().CoverLetter,
					BidAmount:    450,
				}).Return(models.Proposal{ID: 5, Status: models.ProposalStatusPending}, nil)
			},
		},
		{
			name:    "invalid body",
			req:     models.CreateProposalRequest{CoverLetter: "short", BidAmount: 0},
			setup:   func(*mock.MockProposalRepository, *mock.MockJobRepository) {},
			wantErr: validators.ErrValidation,
		},
		{
			name: "job missing",
			req:  validProposal(),
			setup: func(_ *mock.MockProposalRepository, jobs *mock.MockJobRepository) {
				jobs.EXPECT().FindJobByID(gomock.Any(), int64(1)).Return(models.Job{}, store.ErrJobNotFound)
			},
			wantErr: ErrJobNotFound,
		},
		{
			name: "job closed",
			req:  validProposal(),
			setup: func(_ *mock.MockProposalRepository, jobs *mock.MockJobRepository) {
				closed := openJob
				closed.Status = models.JobStatusCompleted
				jobs.EXPECT().FindJobByID(gomock.Any(), int64(1)).Return(closed, nil)
			},
			wantErr: ErrJobNotOpen,
		},
		{
			name: "second application",
			req:  validProposal(),
			setup: func(proposals *mock.MockProposalRepository, jobs *mock.MockJobRepository) {
				jobs.EXPECT().FindJobByID(gomock.Any(), int64(1)).Return(openJob, nil)
				proposals.EXPECT().CreateProposal(gomock.Any(), gomock.Any()).Return(models.Proposal{}, store.ErrProposalAlreadyExists)
			},
			wantErr: ErrAlreadyApplied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, proposals, jobs := newTestProposalSvc(t)
			tt.setup(proposals, jobs)

			p, err := svc.Apply(context.Background(), freelancer, 1, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), p.ID)
		})
	}
}

func TestProposalService_ListForJob(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		svc, proposals, jobs := newTestProposalSvc(t)
		jobs.EXPECT().FindJobByID(gomock.Any(), int64(1)).Return(models.Job{ID: 1, UserID: owner.ID}, nil)
		proposals.EXPECT().ListProposalsByJob(gomock.Any(), int64(1)).Return([]models.Proposal{{ID: 1}, {ID: 2}}, nil)

		list, err := svc.ListForJob(context.Background(), owner, 1)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("not the owner", func(t *testing.T) {
		svc, _, jobs := newTestProposalSvc(t)
		jobs.EXPECT().FindJobByID(gomock.Any(), int64(1)).Return(models.Job{ID: 1, UserID: owner.ID}, nil)

		_, err := svc.ListForJob(context.Background(), freelancer, 1)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
