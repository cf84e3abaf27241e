package warehouse

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"VzlaR011Cleaning/internal/r011"
)

// WriteMode selects how a load treats existing warehouse contents.
type WriteMode string

const (
	WriteTruncate WriteMode = "WRITE_TRUNCATE"
	WriteAppend   WriteMode = "WRITE_APPEND"
)

// Loader pushes projected report rows into the analytical warehouse table.
// The physical schema comes from the projector; the loader only has to
// honor the write mode and batch the copy.
type Loader struct {
	Pool  *pgxpool.Pool
	Table string
}

func New(pool *pgxpool.Pool, table string) *Loader {
	return &Loader{Pool: pool, Table: table}
}

// Load writes the rows under the given schema. WriteTruncate clears the
// table first; both modes use CopyFrom so the driver batches the insert.
func (l *Loader) Load(ctx context.Context, schema []r011.WarehouseColumn, rows [][]interface{}, mode WriteMode) error {
	if l.Pool == nil {
		return fmt.Errorf("warehouse pool not configured")
	}
	cols := make([]string, len(schema))
	for i, c := range schema {
		cols[i] = c.Name
	}

	if mode == WriteTruncate {
		if _, err := l.Pool.Exec(ctx, fmt.Sprintf(`TRUNCATE TABLE %s`, pgx.Identifier{l.Table}.Sanitize())); err != nil {
			return fmt.Errorf("truncate %s: %w", l.Table, err)
		}
	}

	n, err := l.Pool.CopyFrom(ctx, pgx.Identifier{l.Table}, cols, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy into %s: %w", l.Table, err)
	}
	log.Printf("[WAREHOUSE] loaded %d rows into %s (%s)", n, l.Table, mode)
	return nil
}

// Ping verifies warehouse connectivity for the test endpoint.
func (l *Loader) Ping(ctx context.Context) error {
	if l.Pool == nil {
		return fmt.Errorf("warehouse pool not configured")
	}
	return l.Pool.Ping(ctx)
}
