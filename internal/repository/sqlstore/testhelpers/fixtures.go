package testhelpers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
)

// LegacyTable describes a table created by an older version of the app
type LegacyTable struct {
	Name    string
	Columns []string
	Rows    [][]interface{}
}

// CreateLegacyDB writes a standalone sqlite file holding table and returns
// its path.
func CreateLegacyDB(t *testing.T, table LegacyTable) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "legacy.db")
	db, err := sqlx.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open legacy database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	cols := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		cols[i] = fmt.Sprintf(`"%s"`, c)
	}
	create := fmt.Sprintf(`CREATE TABLE "%s" (%s)`, table.Name, strings.Join(cols, ", "))
	if _, err := db.ExecContext(ctx, create); err != nil {
		t.Fatalf("Failed to create legacy table: %v", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	insert := fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`, table.Name, strings.Join(cols, ", "), placeholders)
	for _, row := range table.Rows {
		if _, err := db.ExecContext(ctx, insert, row...); err != nil {
			t.Fatalf("Failed to insert legacy row: %v", err)
		}
	}

	return path
}

// InsertRawComplaint bypasses the repository, e.g. to store naive legacy
// timestamps. The schema must already exist.
func InsertRawComplaint(t *testing.T, db *sqlx.DB, issueType string, intensity interface{}, lat, lon float64, timestamp string) {
	t.Helper()

	_, err := db.Exec(db.Rebind(
		`INSERT INTO complaints (issue_type, intensity, lat, lon, timestamp) VALUES (?, ?, ?, ?, ?)`),
		issueType, intensity, lat, lon, timestamp,
	)
	if err != nil {
		t.Fatalf("Failed to insert raw complaint: %v", err)
	}
}
