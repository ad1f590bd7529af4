package store

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var (
	userRowColumns = []string{"id", "email", "password_hash", "name", "user_type", "avatar", "bio",
		"location", "skills", "hourly_rate", "is_verified", "is_online", "last_seen", "rating",
		"review_count", "created_at", "updated_at"}

	freelancerRowColumns = []string{"id", "name", "avatar", "bio", "location", "skills", "hourly_rate",
		"rating", "review_count", "is_verified", "is_online", "last_seen", "created_at"}

	jobRowColumns = []string{"id", "user_id", "title", "description", "budget", "min_budget", "max_budget",
		"budget_type", "duration", "category", "location", "tags", "status", "is_featured",
		"view_count", "created_at", "updated_at",
		"owner_id", "owner_name", "owner_avatar", "owner_is_verified", "owner_rating",
		"proposal_count"}

	proposalRowColumns = []string{"id", "job_id", "freelancer_id", "cover_letter", "bid_amount", "status",
		"created_at", "f_id", "f_name", "f_avatar", "f_is_verified", "f_rating"}

	fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return newDBFromSQL(conn), mock
}

func newDBFromSQL(conn *sql.DB) *DB {
	return newDB(conn, logger.Nop())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRow(id int64, email string) []driver.Value {
	return []driver.Value{id, email, "$2a$10$hash", "Jane Doe", "client", nil, nil,
		nil, []byte(`[]`), nil, false, false, nil, 0.0, 0, fixedTime, fixedTime}
}

func freelancerRow(id int64, name string) []driver.Value {
	return []driver.Value{id, name, nil, "Go developer", "Berlin", []byte(`["go","sql"]`), 45.0,
		4.8, 12, true, true, fixedTime, fixedTime}
}

func jobRow(id, ownerID int64, title string) []driver.Value {
	return []driver.Value{id, ownerID, title, "A long enough description for a job.", 500.0, nil, nil,
		"fixed", nil, "Web Development", nil, []byte(`["go"]`), "open", false,
		3, fixedTime, fixedTime,
		ownerID, "Jane Doe", nil, true, 4.5,
		2}
}

func proposalRow(id, jobID, freelancerID int64) []driver.Value {
	return []driver.Value{id, jobID, freelancerID, "I am the right person for this job.", 450.0, "pending",
		fixedTime, freelancerID, "John Smith", nil, false, 4.1}
}
