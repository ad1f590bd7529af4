package models

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Name       string   `json:"name"`
	UserType   string   `json:"userType"`
	Avatar     *string  `json:"avatar,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
}

// SigninRequest is the body of POST /api/auth/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of PUT /api/user/profile.
// Only fields present in the body are applied.
type UpdateProfileRequest struct {
	Name       *string  `json:"name,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
	Avatar     *string  `json:"avatar,omitempty"`
}

// CreateJobRequest is the body of POST /api/jobs.
type CreateJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      float64  `json:"budget"`
	MinBudget   *float64 `json:"minBudget,omitempty"`
	MaxBudget   *float64 `json:"maxBudget,omitempty"`
	BudgetType  *string  `json:"budgetType,omitempty"`
	Duration    *string  `json:"duration,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateJobRequest is the body of PUT /api/jobs/{id}.
// Only fields present in the body are applied.
type UpdateJobRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	MinBudget   *float64 `json:"minBudget,omitempty"`
	MaxBudget   *float64 `json:"maxBudget,omitempty"`
	BudgetType  *string  `json:"budgetType,omitempty"`
	Duration    *string  `json:"duration,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

// CreateProposalRequest is the body of POST /api/jobs/{id}/proposals.
type CreateProposalRequest struct {
	CoverLetter string  `json:"coverLetter"`
	BidAmount   float64 `json:"bidAmount"`
}

// ChatRequest is the body of POST /api/support/chat.
type ChatRequest struct {
	Message string `json:"message"`
}
