package models

import "time"

// UserType is the role chosen at signup. It never changes afterwards.
type UserType string

const (
	UserTypeClient     UserType = "client"
	UserTypeFreelancer UserType = "freelancer"
)

// Valid reports whether t is one of the known roles.
func (t UserType) Valid() bool {
	return t == UserTypeClient || t == UserTypeFreelancer
}

// User is a marketplace account as stored in the users table.
// PasswordHash holds the bcrypt digest and is never serialized.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	UserType     UserType   `json:"userType"`
	Avatar       *string    `json:"avatar"`
	Bio          *string    `json:"bio"`
	Location     *string    `json:"location"`
	Skills       StringList `json:"skills"`
	HourlyRate   *float64   `json:"hourlyRate"`
	IsVerified   bool       `json:"isVerified"`
	IsOnline     bool       `json:"isOnline"`
	LastSeen     *time.Time `json:"lastSeen"`
	Rating       float64    `json:"rating"`
	ReviewCount  int        `json:"reviewCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity returns the non-secret projection of u that is attached to an
// authenticated request.
func (u User) Identity() Identity {
	return Identity{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		UserType:   u.UserType,
		Avatar:     u.Avatar,
		IsVerified: u.IsVerified,
		IsOnline:   u.IsOnline,
		LastSeen:   u.LastSeen,
		CreatedAt:  u.CreatedAt,
	}
}

// Identity describes the caller of an authenticated request.
type Identity struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	UserType   UserType   `json:"userType"`
	Avatar     *string    `json:"avatar"`
	IsVerified bool       `json:"isVerified"`
	IsOnline   bool       `json:"isOnline"`
	LastSeen   *time.Time `json:"lastSeen"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// UserProfile is the caller's own profile enriched with activity counters.
type UserProfile struct {
	User
	JobCount      int `json:"jobCount"`
	ProposalCount int `json:"proposalCount"`
}

// Freelancer is the public card of a freelancer shown in listings.
// Contact details are deliberately absent.
type Freelancer struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Avatar      *string    `json:"avatar"`
	Bio         *string    `json:"bio"`
	Location    *string    `json:"location"`
	Skills      StringList `json:"skills"`
	HourlyRate  *float64   `json:"hourlyRate"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"reviewCount"`
	IsVerified  bool       `json:"isVerified"`
	IsOnline    bool       `json:"isOnline"`
	LastSeen    *time.Time `json:"lastSeen"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UserSummary is the short author card embedded into jobs and proposals.
type UserSummary struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Avatar     *string `json:"avatar"`
	IsVerified bool    `json:"isVerified"`
	Rating     float64 `json:"rating"`
}

// ProfileUpdate is a partial update of a user profile. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name       *string
	Bio        *string
	Location   *string
	Avatar     *string
	Skills     StringList
	HourlyRate *float64
}

// IsEmpty reports whether the update touches no column.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Bio == nil && p.Location == nil &&
		p.Avatar == nil && p.Skills == nil && p.HourlyRate == nil
}
