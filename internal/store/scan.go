package store

import (
	"github.com/MKhiriev/escrow-api/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.UserType, &u.Avatar, &u.Bio,
		&u.Location, &u.Skills, &u.HourlyRate, &u.IsVerified, &u.IsOnline, &u.LastSeen,
		&u.Rating, &u.ReviewCount, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func scanFreelancer(row rowScanner) (models.Freelancer, error) {
	var f models.Freelancer
	err := row.Scan(&f.ID, &f.Name, &f.Avatar, &f.Bio, &f.Location, &f.Skills, &f.HourlyRate,
		&f.Rating, &f.ReviewCount, &f.IsVerified, &f.IsOnline, &f.LastSeen, &f.CreatedAt)
	return f, err
}

func scanJob(row rowScanner) (models.Job, error) {
	var (
		j     models.Job
		owner models.UserSummary
	)
	err := row.Scan(&j.ID, &j.UserID, &j.Title, &j.Description, &j.Budget, &j.MinBudget, &j.MaxBudget,
		&j.BudgetType, &j.Duration, &j.Category, &j.Location, &j.Tags, &j.Status, &j.IsFeatured,
		&j.ViewCount, &j.CreatedAt, &j.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Avatar, &owner.IsVerified, &owner.Rating,
		&j.ProposalCount)
	if err != nil {
		return models.Job{}, err
	}
	j.Owner = &owner
	return j, nil
}

func scanProposal(row rowScanner) (models.Proposal, error) {
	var (
		p          models.Proposal
		freelancer models.UserSummary
	)
	err := row.Scan(&p.ID, &p.JobID, &p.FreelancerID, &p.CoverLetter, &p.BidAmount, &p.Status, &p.CreatedAt,
		&freelancer.ID, &freelancer.Name, &freelancer.Avatar, &freelancer.IsVerified, &freelancer.Rating)
	if err != nil {
		return models.Proposal{}, err
	}
	p.Freelancer = &freelancer
	return p, nil
}
