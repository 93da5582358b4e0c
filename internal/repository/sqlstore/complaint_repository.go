package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"math"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/pkg/errors"
)

var _ repository.ComplaintRepository = (*ComplaintStore)(nil)

type ComplaintStore struct {
	db    *DB
	clock *monotonicClock
}

// NewComplaintRepository creates the store over an open connection
func NewComplaintRepository(db *DB) *ComplaintStore {
	return &ComplaintStore{db: db, clock: newMonotonicClock(nil)}
}

// NewComplaintRepositoryWithClock lets callers control insert timestamps
func NewComplaintRepositoryWithClock(db *DB, now func() time.Time) *ComplaintStore {
	return &ComplaintStore{db: db, clock: newMonotonicClock(now)}
}

// complaintRow mirrors the table; legacy rows may hold NULL intensity
type complaintRow struct {
	ID          int64          `db:"id"`
	IssueType   string         `db:"issue_type"`
	Intensity   sql.NullInt64  `db:"intensity"`
	Lat         float64        `db:"lat"`
	Lon         float64        `db:"lon"`
	Timestamp   string         `db:"timestamp"`
	Description sql.NullString `db:"description"`
	PhotoPath   sql.NullString `db:"photo_path"`
	Votes       int            `db:"votes"`
}

func (r complaintRow) toDomain() (domain.Complaint, error) {
	ts, err := ParseTimestamp(r.Timestamp)
	if err != nil {
		return domain.Complaint{}, err
	}

	c := domain.Complaint{
		ID:        r.ID,
		IssueType: r.IssueType,
		Intensity: domain.ClampIntensity(int(r.Intensity.Int64)),
		Lat:       r.Lat,
		Lon:       r.Lon,
		Timestamp: ts,
		Votes:     r.Votes,
	}
	if r.Description.Valid {
		v := r.Description.String
		c.Description = &v
	}
	if r.PhotoPath.Valid {
		v := r.PhotoPath.String
		c.PhotoPath = &v
	}
	return c, nil
}

const selectComplaints = `
	SELECT
		c.id, c.issue_type, c.intensity, c.lat, c.lon, c.timestamp,
		c.description, c.photo_path,
		COALESCE(c.votes, 0) + (
			SELECT COUNT(*) FROM complaint_votes v WHERE v.complaint_id = c.id
		) AS votes
	FROM complaints c`

func (r *ComplaintStore) Initialize(ctx context.Context) error {
	if err := r.db.Migrate(ctx); err != nil {
		return errors.ErrStorage.WithCause(err)
	}
	return nil
}

func (r *ComplaintStore) Insert(ctx context.Context, nc domain.NewComplaint) (int64, error) {
	if !finite(nc.Lat) || !finite(nc.Lon) {
		return 0, errors.ErrValidation.WithDetails(map[string]interface{}{
			"lat": nc.Lat,
			"lon": nc.Lon,
		}).WithCause(stderrors.New("coordinates must be finite"))
	}
	nc = nc.Sanitized()

	return r.insert(ctx, r.clock.Next(), nc)
}

func (r *ComplaintStore) insert(ctx context.Context, ts time.Time, nc domain.NewComplaint) (int64, error) {
	return r.insertWith(ctx, r.db, ts, nc)
}

// insertWith runs the insert on q, which is either the pool or an open
// transaction.
func (r *ComplaintStore) insertWith(ctx context.Context, q sqlx.QueryerContext, ts time.Time, nc domain.NewComplaint) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO complaints (issue_type, intensity, lat, lon, timestamp, description, photo_path, votes)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
		RETURNING id`)

	var id int64
	err := q.QueryRowxContext(ctx, query,
		nc.IssueType,
		nc.Intensity,
		nc.Lat,
		nc.Lon,
		FormatTimestamp(ts),
		nc.Description,
		nc.PhotoPath,
	).Scan(&id)
	if err != nil {
		r.db.logger.Error("Failed to insert complaint", zap.Error(err))
		return 0, errors.ErrStorage.WithCause(err)
	}

	r.db.logger.Debug("Complaint stored",
		zap.Int64("id", id),
		zap.String("issue_type", nc.IssueType),
		zap.Int("intensity", nc.Intensity),
	)
	return id, nil
}

func (r *ComplaintStore) LoadAll(ctx context.Context) ([]domain.Complaint, error) {
	var rows []complaintRow
	if err := r.db.SelectContext(ctx, &rows, selectComplaints+` ORDER BY c.id`); err != nil {
		r.db.logger.Error("Failed to load complaints", zap.Error(err))
		return nil, errors.ErrStorage.WithCause(err)
	}

	out := make([]domain.Complaint, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, errors.ErrStorage.WithCause(err)
		}
		out = append(out, c)
	}

	// rows are in id order, so ties on timestamp stay ordered by id
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *ComplaintStore) Get(ctx context.Context, id int64) (*domain.Complaint, error) {
	var row complaintRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(selectComplaints+` WHERE c.id = ?`), id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrComplaintNotFound.WithDetails(map[string]interface{}{"id": id})
	}
	if err != nil {
		return nil, errors.ErrStorage.WithCause(err)
	}

	c, err := row.toDomain()
	if err != nil {
		return nil, errors.ErrStorage.WithCause(err)
	}
	return &c, nil
}

// AddVote appends a row to complaint_votes; the complaint row itself is
// never updated.
func (r *ComplaintStore) AddVote(ctx context.Context, id int64) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(1) FROM complaints WHERE id = ?`), id); err != nil {
		return 0, errors.ErrStorage.WithCause(err)
	}
	if exists == 0 {
		return 0, errors.ErrComplaintNotFound.WithDetails(map[string]interface{}{"id": id})
	}

	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO complaint_votes (complaint_id, created_at) VALUES (?, ?)`),
		id, FormatTimestamp(time.Now()),
	); err != nil {
		return 0, errors.ErrStorage.WithCause(err)
	}

	var total int
	if err := tx.GetContext(ctx, &total, tx.Rebind(`
		SELECT COALESCE(c.votes, 0) + (SELECT COUNT(*) FROM complaint_votes v WHERE v.complaint_id = c.id)
		FROM complaints c WHERE c.id = ?`), id,
	); err != nil {
		return 0, errors.ErrStorage.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.ErrStorage.WithCause(err)
	}
	return total, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
