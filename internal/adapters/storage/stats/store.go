package stats

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Totals are the whole-table counters on the admin dashboard.
type Totals struct {
	TotalMembers  int `db:"total_members" json:"totalMembers"`
	TotalClasses  int `db:"total_classes" json:"totalClasses"`
	TotalBookings int `db:"total_bookings" json:"totalBookings"`
	TotalAttended int `db:"total_attended" json:"totalAttended"`
}

// EntityCounts are the row counts reported by the system status endpoint.
type EntityCounts struct {
	Users    int `db:"users" json:"users"`
	Classes  int `db:"classes" json:"classes"`
	Bookings int `db:"bookings" json:"bookings"`
	Awards   int `db:"awards" json:"awards"`
}

// Store runs cross-entity aggregate queries.
type Store interface {
	Totals(ctx context.Context) (Totals, error)
	// CountActiveMembersSince counts member-role users with at least one
	// non-canceled booking created at or after the cutoff.
	CountActiveMembersSince(ctx context.Context, cutoff string) (int, error)
	// CountMembersCreatedSince counts member-role users created at or after
	// the cutoff.
	CountMembersCreatedSince(ctx context.Context, cutoff string) (int, error)
	EntityCounts(ctx context.Context) (EntityCounts, error)
}

// SQLStore implements Store over sqlx.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps the raw database handle for aggregate reads.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: sqlx.NewDb(db, "sqlite")}
}

// Totals reads the dashboard counters in one round trip.
func (s *SQLStore) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.db.GetContext(ctx, &t, `SELECT
		(SELECT COUNT(*) FROM user WHERE role = 'member') AS total_members,
		(SELECT COUNT(*) FROM class) AS total_classes,
		(SELECT COUNT(*) FROM booking) AS total_bookings,
		(SELECT COUNT(*) FROM booking WHERE status = 'attended') AS total_attended`)
	return t, err
}

// CountActiveMembersSince counts distinct members who booked since cutoff.
// PRE: cutoff is an RFC3339 timestamp string
func (s *SQLStore) CountActiveMembersSince(ctx context.Context, cutoff string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(DISTINCT b.user_id)
		FROM booking b JOIN user u ON u.id = b.user_id
		WHERE u.role = 'member' AND b.status != 'canceled' AND b.created_at >= ?`, cutoff)
	return n, err
}

// CountMembersCreatedSince counts members who signed up since cutoff.
// PRE: cutoff is an RFC3339 timestamp string
func (s *SQLStore) CountMembersCreatedSince(ctx context.Context, cutoff string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM user WHERE role = 'member' AND created_at >= ?`, cutoff)
	return n, err
}

// EntityCounts reads the per-table row counts in one round trip.
func (s *SQLStore) EntityCounts(ctx context.Context) (EntityCounts, error) {
	var c EntityCounts
	err := s.db.GetContext(ctx, &c, `SELECT
		(SELECT COUNT(*) FROM user) AS users,
		(SELECT COUNT(*) FROM class) AS classes,
		(SELECT COUNT(*) FROM booking) AS bookings,
		(SELECT COUNT(*) FROM award) AS awards`)
	return c, err
}
