package models

import "math"

// Page bounds applied to every listing.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far inside the bigint range of OFFSET.
	MaxPage      = math.MaxInt32
)

// PageRequest is the requested window of a listing.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize replaces out-of-range values with the defaults and caps the
// limit at MaxLimit.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	return p
}

// Offset is the number of rows skipped before the page starts.
func (p PageRequest) Offset() uint64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return uint64(p.Page-1) * uint64(p.Limit)
}

// JobFilter narrows GET /api/jobs.
type JobFilter struct {
	PageRequest
	Search       string
	Category     string
	Location     string
	MinBudget    *float64
	MaxBudget    *float64
	Status       JobStatus
	FeaturedOnly bool
	SortBy       string
	SortOrder    string
}

// FreelancerFilter narrows GET /api/users/freelancers.
type FreelancerFilter struct {
	PageRequest
	Search        string
	Skills        []string
	Location      string
	MinRating     *float64
	MaxHourlyRate *float64
	VerifiedOnly  bool
}

// Pagination describes the window returned by a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes Pages as ceil(total/limit).
func NewPagination(req PageRequest, total int) Pagination {
	pages := 0
	if req.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(req.Limit)))
	}
	return Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
		Pages: pages,
	}
}
