package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")

	ErrUserNotFound       = errors.New("user not found")
	ErrFreelancerNotFound = errors.New("freelancer not found")
	ErrJobNotFound        = errors.New("job not found")

	// ErrForbidden is matched by every ownership failure.
	ErrForbidden = errors.New("forbidden")

	ErrNotAuthorizedToUpdateJob = fmt.Errorf("%w: not authorized to update this job", ErrForbidden)
	ErrNotAuthorizedToDeleteJob = fmt.Errorf("%w: not authorized to delete this job", ErrForbidden)
	ErrNotAuthorizedToViewJob   = fmt.Errorf("%w: not authorized to view proposals of this job", ErrForbidden)

	ErrJobNotOpen     = errors.New("job is not open for proposals")
	ErrAlreadyApplied = errors.New("you have already applied to this job")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Token failures. All of them match ErrUnauthenticated.
var (
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrTokenMalformed         = fmt.Errorf("%w: token is malformed", ErrUnauthenticated)
	ErrTokenExpired           = fmt.Errorf("%w: token is expired", ErrUnauthenticated)
	ErrTokenSignatureMismatch = fmt.Errorf("%w: token signature mismatch", ErrUnauthenticated)
	ErrTokenInvalid           = fmt.Errorf("%w: token is invalid", ErrUnauthenticated)

	ErrTokenCreationFailed = errors.New("token creation failed")
)
