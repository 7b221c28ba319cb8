package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/docaudit/internal/entity"
	"github.com/joseph-ayodele/docaudit/internal/report"
)

// Store is the session audit trail: every built report is appended with
// its canonical JSON body so a run can be reproduced or re-rendered
// later. It is single-session storage, not a multi-user database.
type Store struct {
	db *sql.DB
}

// Entry is one archived report row.
type Entry struct {
	ReportID    string
	DocumentID  string
	Disposition string
	GeneratedAt time.Time
	Body        []byte
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS reports (
	report_id    TEXT PRIMARY KEY,
	document_id  TEXT NOT NULL DEFAULT '',
	disposition  TEXT NOT NULL,
	generated_at TEXT NOT NULL,
	body         TEXT NOT NULL
);`

// Open opens (and if needed initializes) an archive at path. Use
// ":memory:" for a throwaway session store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save appends a built report. The report itself stays immutable; the
// archive only ever gains rows.
func (s *Store) Save(ctx context.Context, rep entity.Report) error {
	body, err := report.CanonicalJSON(rep)
	if err != nil {
		return err
	}
	docID := ""
	if rep.Extraction.DocumentID != nil {
		docID = *rep.Extraction.DocumentID
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (report_id, document_id, disposition, generated_at, body) VALUES (?, ?, ?, ?, ?)`,
		rep.ID.String(), docID, string(rep.Disposition), rep.GeneratedAt.UTC().Format(time.RFC3339), string(body))
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// Get reloads one archived report by id.
func (s *Store) Get(ctx context.Context, reportID string) (entity.Report, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM reports WHERE report_id = ?`, reportID).Scan(&body)
	if err != nil {
		return entity.Report{}, fmt.Errorf("load report %s: %w", reportID, err)
	}
	return report.Parse([]byte(body))
}

// List returns archived rows newest first, without bodies.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT report_id, document_id, disposition, generated_at FROM reports ORDER BY generated_at DESC, report_id`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var generated string
		if err := rows.Scan(&e.ReportID, &e.DocumentID, &e.Disposition, &generated); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, generated); perr == nil {
			e.GeneratedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
