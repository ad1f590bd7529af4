package store

import "github.com/MKhiriev/escrow-api/internal/logger"

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	UserRepository     UserRepository
	JobRepository      JobRepository
	ProposalRepository ProposalRepository
}

// NewStorages builds all repositories on top of a single connection pool.
// A nil categories cache leaves category counts uncached.
func NewStorages(db *DB, categories CategoryCache, log *logger.Logger) *Storages {
	var jobs JobRepository = NewJobRepository(db, log)
	if categories != nil {
		jobs = newCachedJobRepository(jobs, categories)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		JobRepository:      jobs,
		ProposalRepository: NewProposalRepository(db, log),
	}
}
