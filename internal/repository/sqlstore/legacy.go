package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/pkg/errors"
)

// Alternate column names found in older databases, preferred name first
var legacyColumns = map[string][]string{
	"issue_type":  {"issue_type", "type", "categorie", "category", "probleme", "issue"},
	"intensity":   {"intensity", "intensite"},
	"lat":         {"lat", "latitude"},
	"lon":         {"lon", "longitude", "lng"},
	"timestamp":   {"timestamp", "date_heure", "date"},
	"description": {"description"},
	"photo_path":  {"photo_path", "photo"},
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type legacyRow struct {
	IssueType   sql.NullString  `db:"issue_type"`
	Intensity   sql.NullFloat64 `db:"intensity"`
	Lat         sql.NullFloat64 `db:"lat"`
	Lon         sql.NullFloat64 `db:"lon"`
	Timestamp   sql.NullString  `db:"timestamp"`
	Description sql.NullString  `db:"description"`
	PhotoPath   sql.NullString  `db:"photo_path"`
}

// ErrAlreadyImported is returned when a source table was imported before
var ErrAlreadyImported = stderrors.New("legacy table already imported")

// ImportResult counts the outcome of a legacy import
type ImportResult struct {
	Imported int
	Skipped  int
	// Columns maps canonical names to the source columns that were used
	Columns map[string]string
}

// ImportLegacy copies rows from a legacy sqlite table whose columns may use
// alternate names. Issue types pass through normalize; original timestamps
// are kept. Rows without coordinates or a readable timestamp are skipped.
//
// The copy runs in one transaction and is recorded in legacy_imports under
// (source, table); importing the same pair again fails with
// ErrAlreadyImported.
func (r *ComplaintStore) ImportLegacy(ctx context.Context, src *DB, source, table string, normalize func(string) string) (*ImportResult, error) {
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	present, err := sourceColumns(ctx, src, table)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]string, len(legacyColumns))
	for canonical, candidates := range legacyColumns {
		for _, c := range candidates {
			if _, ok := present[c]; ok {
				mapping[canonical] = c
				break
			}
		}
	}
	for _, required := range []string{"issue_type", "lat", "lon", "timestamp"} {
		if _, ok := mapping[required]; !ok {
			return nil, fmt.Errorf("table %s has no column for %s", table, required)
		}
	}

	query := buildLegacySelect(table, mapping)
	var rows []legacyRow
	if err := src.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("read legacy rows: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	var done int
	if err := tx.GetContext(ctx, &done,
		tx.Rebind(`SELECT COUNT(1) FROM legacy_imports WHERE source = ? AND source_table = ?`),
		source, table,
	); err != nil {
		return nil, errors.ErrStorage.WithCause(err)
	}
	if done > 0 {
		return nil, fmt.Errorf("%w: %s (table %s)", ErrAlreadyImported, source, table)
	}

	res := &ImportResult{Columns: mapping}
	for _, row := range rows {
		if !row.Lat.Valid || !row.Lon.Valid || !finite(row.Lat.Float64) || !finite(row.Lon.Float64) {
			res.Skipped++
			continue
		}
		ts, err := ParseTimestamp(row.Timestamp.String)
		if !row.Timestamp.Valid || err != nil {
			res.Skipped++
			continue
		}

		nc := domain.NewComplaint{
			IssueType: normalize(row.IssueType.String),
			Intensity: int(row.Intensity.Float64),
			Lat:       row.Lat.Float64,
			Lon:       row.Lon.Float64,
		}
		if row.Description.Valid {
			v := row.Description.String
			nc.Description = &v
		}
		if row.PhotoPath.Valid {
			v := row.PhotoPath.String
			nc.PhotoPath = &v
		}

		if _, err := r.insertWith(ctx, tx, ts, nc.Sanitized()); err != nil {
			return nil, err
		}
		res.Imported++
	}

	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO legacy_imports (source, source_table, imported, skipped, imported_at) VALUES (?, ?, ?, ?, ?)`),
		source, table, res.Imported, res.Skipped, FormatTimestamp(time.Now()),
	); err != nil {
		return nil, errors.ErrStorage.WithCause(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.ErrStorage.WithCause(err)
	}

	r.db.logger.Info("Legacy import finished",
		zap.String("source", source),
		zap.String("table", table),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func sourceColumns(ctx context.Context, src *DB, table string) (map[string]struct{}, error) {
	rows, err := src.QueryxContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" LIMIT 0`, table))
	if err != nil {
		return nil, fmt.Errorf("inspect legacy table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("inspect legacy table %s: %w", table, err)
	}

	out := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		out[strings.ToLower(c)] = struct{}{}
	}
	return out, nil
}

func buildLegacySelect(table string, mapping map[string]string) string {
	order := []string{"issue_type", "intensity", "lat", "lon", "timestamp", "description", "photo_path"}
	exprs := make([]string, 0, len(order))
	for _, canonical := range order {
		if src, ok := mapping[canonical]; ok {
			exprs = append(exprs, fmt.Sprintf(`"%s" AS %s`, src, canonical))
		} else {
			exprs = append(exprs, "NULL AS "+canonical)
		}
	}
	return fmt.Sprintf(`SELECT %s FROM "%s"`, strings.Join(exprs, ", "), table)
}
