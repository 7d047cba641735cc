package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"LaunchDashboard/internal/domain"
	"LaunchDashboard/internal/ports"
)

// Loader reads launch records from a CSV file with a header row.
type Loader struct {
	path   string
	logger *slog.Logger
}

var _ ports.DatasetSource = (*Loader)(nil)

// NewLoader binds the loader to a file path.
func NewLoader(path string, log *slog.Logger) *Loader {
	return &Loader{path: path, logger: log}
}

// Load opens the file and parses it into a dataset.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.path, err)
	}

	if l.logger != nil {
		l.logger.Debug("dataset parsed", "path", l.path, "records", ds.Len())
	}
	return ds, nil
}

// Parse reads CSV from r. Required columns are located by header name and
// other columns are ignored. Rows with an empty required cell are skipped.
func Parse(r io.Reader) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.LaunchRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rec, ok, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			records = append(records, rec)
		}
	}

	return domain.NewDataset(records)
}

type columns struct {
	site, outcome, payload, booster int
}

func locateColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var cols columns
	for _, target := range []struct {
		name string
		dst  *int
	}{
		{domain.ColumnSite, &cols.site},
		{domain.ColumnOutcome, &cols.outcome},
		{domain.ColumnPayload, &cols.payload},
		{domain.ColumnBooster, &cols.booster},
	} {
		i, ok := index[target.name]
		if !ok {
			return columns{}, fmt.Errorf("%w: %q", domain.ErrMissingColumn, target.name)
		}
		*target.dst = i
	}

	return cols, nil
}

func parseRow(row []string, cols columns) (domain.LaunchRecord, bool, error) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	site, outcomeRaw, payloadRaw, booster := cell(cols.site), cell(cols.outcome), cell(cols.payload), cell(cols.booster)
	if site == "" || outcomeRaw == "" || payloadRaw == "" || booster == "" {
		return domain.LaunchRecord{}, false, nil
	}

	outcome, err := strconv.ParseFloat(outcomeRaw, 64)
	if err != nil {
		return domain.LaunchRecord{}, false, fmt.Errorf("%s: %w", domain.ColumnOutcome, err)
	}
	if outcome != domain.OutcomeFailure && outcome != domain.OutcomeSuccess {
		return domain.LaunchRecord{}, false, fmt.Errorf("%s: expected 0 or 1, got %s", domain.ColumnOutcome, outcomeRaw)
	}

	payload, err := strconv.ParseFloat(payloadRaw, 64)
	if err != nil {
		return domain.LaunchRecord{}, false, fmt.Errorf("%s: %w", domain.ColumnPayload, err)
	}

	rec := domain.LaunchRecord{
		Site:            site,
		Outcome:         int(outcome),
		PayloadMass:     payload,
		BoosterCategory: booster,
	}
	if err := rec.Validate(); err != nil {
		return domain.LaunchRecord{}, false, err
	}
	return rec, true, nil
}
