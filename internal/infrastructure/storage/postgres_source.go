package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"LaunchDashboard/internal/domain"
	"LaunchDashboard/internal/ports"
)

// Table columns holding the launch attributes.
const (
	colSite    = "launch_site"
	colOutcome = "class"
	colPayload = "payload_mass_kg"
	colBooster = "booster_version_category"
)

var identExpr = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresSource loads launch records from a Postgres table.
type PostgresSource struct {
	db      *sql.DB
	table   string
	orderBy string
}

var _ ports.DatasetSource = (*PostgresSource)(nil)

// NewPostgresSource wires a sql.DB implementation.
func NewPostgresSource(db *sql.DB, table, orderBy string) *PostgresSource {
	return &PostgresSource{db: db, table: table, orderBy: orderBy}
}

// Load selects every row with all launch attributes present.
func (s *PostgresSource) Load(ctx context.Context) (*domain.Dataset, error) {
	if s.db == nil {
		return nil, fmt.Errorf("postgres source has no database")
	}

	query, args, err := buildQuery(s.table, s.orderBy)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query launches: %w", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	return domain.NewDataset(records)
}

func buildQuery(table, orderBy string) (string, []interface{}, error) {
	from, err := quoteIdent(table)
	if err != nil {
		return "", nil, fmt.Errorf("table: %w", err)
	}

	builder := sq.Select(colSite, colOutcome, colPayload, colBooster).
		From(from).
		Where(sq.NotEq{colSite: nil, colOutcome: nil, colPayload: nil, colBooster: nil}).
		PlaceholderFormat(sq.Dollar)

	if orderBy != "" {
		column, err := quoteIdent(orderBy)
		if err != nil {
			return "", nil, fmt.Errorf("order column: %w", err)
		}
		builder = builder.OrderBy(column)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build query: %w", err)
	}
	return query, args, nil
}

// quoteIdent quotes an optionally schema-qualified identifier.
func quoteIdent(name string) (string, error) {
	if !identExpr.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, "."), nil
}

// rowScanner is the subset of *sql.Rows that scanRecords reads.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// scanRecords drains rows into validated launch records and always closes rows.
func scanRecords(rows rowScanner) ([]domain.LaunchRecord, error) {
	var records []domain.LaunchRecord
	for rows.Next() {
		var rec domain.LaunchRecord
		if err := rows.Scan(&rec.Site, &rec.Outcome, &rec.PayloadMass, &rec.BoosterCategory); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan launch: %w", err)
		}
		if err := rec.Validate(); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("launch %d at %s: %w", len(records)+1, rec.Site, err)
		}
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return records, nil
}
