package livereport

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"VzlaR011Cleaning/internal/r011"
)

// Store is the destination-table collaborator: the mutable, spreadsheet-like
// Postgres table end users annotate between runs. A run snapshots it before
// computation (to preserve comments) and replaces it afterwards.
type Store struct {
	DB        *sql.DB
	Table     string
	ChunkSize int
}

func New(db *sql.DB, table string, chunkSize int) *Store {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &Store{DB: db, Table: table, ChunkSize: chunkSize}
}

// Snapshot returns the table's current rows as field-name→value records.
// Every failure degrades to a nil snapshot: the caller treats that as "no
// prior contents" and comment columns come back empty.
func (s *Store) Snapshot(ctx context.Context) []map[string]string {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s`, pq.QuoteIdentifier(s.Table)))
	if err != nil {
		log.Printf("[LIVEREPORT] snapshot unavailable: %v", err)
		return nil
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		log.Printf("[LIVEREPORT] snapshot columns unavailable: %v", err)
		return nil
	}

	var out []map[string]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			log.Printf("[LIVEREPORT] snapshot scan failed: %v", err)
			continue
		}
		rec := make(map[string]string, len(cols))
		for i, c := range cols {
			if vals[i].Valid {
				rec[c] = vals[i].String
			} else {
				rec[c] = ""
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[LIVEREPORT] snapshot iteration failed: %v", err)
	}
	return out
}

// Replace clears the table and inserts the new report in chunks, inside one
// transaction so readers never observe a half-replaced report. Column names
// are the destination-normalized forms of the table's canonical headers.
func (s *Store) Replace(ctx context.Context, t r011.Table) error {
	fields := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		fields[i] = pq.QuoteIdentifier(r011.DestinationFieldName(c))
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, pq.QuoteIdentifier(s.Table))); err != nil {
		return fmt.Errorf("clear live report: %w", err)
	}

	for start := 0; start < len(t.Rows); start += s.ChunkSize {
		end := start + s.ChunkSize
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		if err := s.insertChunk(ctx, tx, fields, t.Rows[start:end]); err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}
	log.Printf("[LIVEREPORT] replaced %s with %d rows", s.Table, len(t.Rows))
	return nil
}

func (s *Store) insertChunk(ctx context.Context, tx *sql.Tx, fields []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	var sb strings.Builder
	args := make([]interface{}, 0, len(rows)*len(fields))
	sb.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ",
		pq.QuoteIdentifier(s.Table), strings.Join(fields, ", ")))
	for r, row := range rows {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := range fields {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("$%d", len(args)+1))
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			args = append(args, cell)
		}
		sb.WriteString(")")
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// FriendlyError converts pq/SQL errors into messages safe to surface to the
// reporting UI.
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return err.Error()
	}
	switch pqErr.Code {
	case "42P01":
		return "The live report table does not exist yet. Please run the provisioning script."
	case "23505":
		return "A record with the same unique value already exists in the live report."
	case "22001":
		return "A value in the report is longer than the live table allows."
	default:
		return "Database error while replacing the live report. Please try again."
	}
}
