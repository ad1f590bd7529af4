package models

import "time"

// JobStatus is the lifecycle marker of a job posting. Owners may move a job
// between any two statuses.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// BudgetType tells whether Budget is a one-off amount or an hourly rate.
type BudgetType string

const (
	BudgetTypeFixed  BudgetType = "fixed"
	BudgetTypeHourly BudgetType = "hourly"
)

// Valid reports whether b is a known budget type.
func (b BudgetType) Valid() bool {
	return b == BudgetTypeFixed || b == BudgetTypeHourly
}

// Job is a posting created by a client.
//
// UserID is fixed at creation; ProposalCount is computed on read and never
// stored. Owner is populated by list and detail queries.
type Job struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"userId"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Budget        float64      `json:"budget"`
	MinBudget     *float64     `json:"minBudget"`
	MaxBudget     *float64     `json:"maxBudget"`
	BudgetType    BudgetType   `json:"budgetType"`
	Duration      *string      `json:"duration"`
	Category      *string      `json:"category"`
	Location      *string      `json:"location"`
	Tags          StringList   `json:"tags"`
	Status        JobStatus    `json:"status"`
	IsFeatured    bool         `json:"isFeatured"`
	ViewCount     int          `json:"viewCount"`
	ProposalCount int          `json:"proposalCount"`
	Owner         *UserSummary `json:"user,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Job model.
func (j Job) TableName() string {
	return "jobs"
}

// JobUpdate is a partial update of a job posting. Nil fields are left
// unchanged.
type JobUpdate struct {
	Title       *string
	Description *string
	Budget      *float64
	MinBudget   *float64
	MaxBudget   *float64
	BudgetType  *BudgetType
	Duration    *string
	Category    *string
	Location    *string
	Tags        StringList
	Status      *JobStatus
}

// IsEmpty reports whether the update touches no column.
func (u JobUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Budget == nil &&
		u.MinBudget == nil && u.MaxBudget == nil && u.BudgetType == nil &&
		u.Duration == nil && u.Category == nil && u.Location == nil &&
		u.Tags == nil && u.Status == nil
}

// CategoryCount is one row of the category histogram.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
