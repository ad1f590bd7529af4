package models

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// ProfileResponse is returned by GET /api/user/profile.
type ProfileResponse struct {
	User UserProfile `json:"user"`
}

// UpdateProfileResponse is returned by PUT /api/user/profile.
type UpdateProfileResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// FreelancersPage is one page of freelancer cards.
type FreelancersPage struct {
	Freelancers []Freelancer `json:"freelancers"`
	Pagination  Pagination   `json:"pagination"`
}

// FreelancerResponse wraps a single freelancer card.
type FreelancerResponse struct {
	Freelancer Freelancer `json:"freelancer"`
}

// JobResponse wraps a single job. Message is set on mutations.
type JobResponse struct {
	Message string `json:"message,omitempty"`
	Job     Job    `json:"job"`
}

// JobsPage is one page of jobs.
type JobsPage struct {
	Jobs       []Job      `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}

// JobsResponse is an unpaginated list of jobs.
type JobsResponse struct {
	Jobs []Job `json:"jobs"`
}

// CategoriesResponse is returned by GET /api/jobs/categories.
type CategoriesResponse struct {
	Categories []CategoryCount `json:"categories"`
}

// ProposalResponse wraps a single proposal.
type ProposalResponse struct {
	Message  string   `json:"message,omitempty"`
	Proposal Proposal `json:"proposal"`
}

// ProposalsResponse lists proposals of a job.
type ProposalsResponse struct {
	Proposals []Proposal `json:"proposals"`
}

// ChatResponse is the support bot reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}
