package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, profile edits, presence and the freelancer
// directory against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with server-assigned
// fields (ID, timestamps, defaults) populated.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.PasswordHash, user.Name, string(user.UserType),
		user.Avatar, user.Bio, user.Location, user.Skills, user.HourlyRate)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").
			Bool("retryable", r.db.retryable(err)).Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindUserByEmail returns the account registered under email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

// FindUserByID returns the account with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", findUserByID, id)
}

func (r *userRepository) findUser(ctx context.Context, fn, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", fn).Bool("retryable", r.db.retryable(err)).Msg("error querying user")
		switch postgresError(err) {
		case pgerrcode.NoDataFound:
			return models.User{}, ErrNoUserWasFound
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateProfile applies the non-nil fields of update and returns the stored
// row. An empty update degrades to a plain lookup.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error) {
	if update.IsEmpty() {
		return r.FindUserByID(ctx, id)
	}

	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(id, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error building query")
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").
			Bool("retryable", r.db.retryable(err)).Msg("error updating profile")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// CountActivity returns the number of jobs posted and proposals sent by the
// user.
func (r *userRepository) CountActivity(ctx context.Context, id int64) (int, int, error) {
	var jobs, proposals int
	if err := r.db.QueryRowContext(ctx, countUserActivity, id).Scan(&jobs, &proposals); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.CountActivity").Msg("error counting activity")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return jobs, proposals, nil
}

func (r *userRepository) SetPresence(ctx context.Context, id int64, online bool, seenAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, setUserPresence, online, seenAt, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.SetPresence").
			Int64("user_id", id).Msg("error updating presence")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *userRepository) MarkStaleOffline(ctx context.Context, seenBefore time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, markStaleUsersOffline, seenBefore)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.MarkStaleOffline").Msg("error marking users offline")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return res.RowsAffected()
}

// ListFreelancers returns one page of the freelancer directory together with
// the total number of matches.
func (r *userRepository) ListFreelancers(ctx context.Context, filter models.FreelancerFilter) ([]models.Freelancer, int, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountFreelancersQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.ListFreelancers").Msg("error counting freelancers")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildListFreelancersQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListFreelancers").
			Bool("retryable", r.db.retryable(err)).Msg("error listing freelancers")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	freelancers := make([]models.Freelancer, 0)
	for rows.Next() {
		f, err := scanFreelancer(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListFreelancers").Msg("error: scanning error")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		freelancers = append(freelancers, f)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return freelancers, total, nil
}

// FindFreelancerByID returns the public card of a freelancer. Clients are not
// visible through this lookup.
func (r *userRepository) FindFreelancerByID(ctx context.Context, id int64) (models.Freelancer, error) {
	f, err := scanFreelancer(r.db.QueryRowContext(ctx, findFreelancerByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Freelancer{}, ErrNoUserWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.FindFreelancerByID").Msg("error finding freelancer")
		return models.Freelancer{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return f, nil
}
