package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	now func() time.Time

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validator,
		now:            time.Now,
		logger:         logger,
	}
}

// Profile returns the caller's account with its job and proposal counters.
func (s *userService) Profile(ctx context.Context, userID int64) (models.UserProfile, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.UserProfile{}, ErrUserNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("loading profile failed: %w", err)
	}

	jobs, proposals, err := s.userRepository.CountActivity(ctx, userID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("counting activity failed: %w", err)
	}

	return models.UserProfile{User: user, JobCount: jobs, ProposalCount: proposals}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	update := models.ProfileUpdate{
		Bio:        req.Bio,
		Location:   req.Location,
		Avatar:     req.Avatar,
		Skills:     models.StringList(req.Skills).Normalize(true),
		HourlyRate: req.HourlyRate,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		update.Name = &name
	}

	user, err := s.userRepository.UpdateProfile(ctx, userID, update)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return user, nil
}

func (s *userService) ListFreelancers(ctx context.Context, filter models.FreelancerFilter) ([]models.Freelancer, models.Pagination, error) {
	if err := s.validator.Validate(ctx, filter); err != nil {
		return nil, models.Pagination{}, err
	}
	filter.PageRequest = filter.PageRequest.Normalize()

	freelancers, total, err := s.userRepository.ListFreelancers(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("listing freelancers failed: %w", err)
	}

	return freelancers, models.NewPagination(filter.PageRequest, total), nil
}

func (s *userService) GetFreelancer(ctx context.Context, id int64) (models.Freelancer, error) {
	freelancer, err := s.userRepository.FindFreelancerByID(ctx, id)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Freelancer{}, ErrFreelancerNotFound
	}
	if err != nil {
		return models.Freelancer{}, fmt.Errorf("loading freelancer failed: %w", err)
	}
	return freelancer, nil
}

func (s *userService) TouchPresence(ctx context.Context, userID int64) error {
	return s.userRepository.SetPresence(ctx, userID, true, s.now())
}

func (s *userService) SweepStalePresence(ctx context.Context, ttl time.Duration) (int64, error) {
	n, err := s.userRepository.MarkStaleOffline(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("presence sweep failed: %w", err)
	}
	return n, nil
}
