package models

import "time"

// ProposalStatus is the review state of a proposal.
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// Proposal is a freelancer's application to a job.
// A freelancer may apply to a given job once.
type Proposal struct {
	ID           int64          `json:"id"`
	JobID        int64          `json:"jobId"`
	FreelancerID int64          `json:"freelancerId"`
	CoverLetter  string         `json:"coverLetter"`
	BidAmount    float64        `json:"bidAmount"`
	Status       ProposalStatus `json:"status"`
	Freelancer   *UserSummary   `json:"freelancer,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Proposal model.
func (p Proposal) TableName() string {
	return "proposals"
}
