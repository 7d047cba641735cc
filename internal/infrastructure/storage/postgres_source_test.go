package storage

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"LaunchDashboard/internal/domain"
)

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	query, args, err := buildQuery("public.spacex_launches", "flight_number")
	if err != nil {
		t.Fatalf("buildQuery: %v", err)
	}

	if !strings.HasPrefix(query, "SELECT launch_site, class, payload_mass_kg, booster_version_category FROM \"public\".\"spacex_launches\"") {
		t.Fatalf("unexpected select clause: %s", query)
	}
	for _, col := range []string{colSite, colOutcome, colPayload, colBooster} {
		if !strings.Contains(query, col+" IS NOT NULL") {
			t.Fatalf("expected %s null check in %s", col, query)
		}
	}
	if !strings.HasSuffix(query, `ORDER BY "flight_number"`) {
		t.Fatalf("unexpected order clause: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildQueryWithoutOrder(t *testing.T) {
	t.Parallel()

	query, _, err := buildQuery("spacex_launches", "")
	if err != nil {
		t.Fatalf("buildQuery: %v", err)
	}
	if strings.Contains(query, "ORDER BY") {
		t.Fatalf("unexpected order clause: %s", query)
	}
}

func TestBuildQueryRejectsInjection(t *testing.T) {
	t.Parallel()

	if _, _, err := buildQuery("launches; DROP TABLE x", ""); err == nil {
		t.Fatalf("expected invalid table error")
	}
	if _, _, err := buildQuery("launches", "id desc"); err == nil {
		t.Fatalf("expected invalid order error")
	}
}

func TestLoadWithoutDatabase(t *testing.T) {
	t.Parallel()

	if _, err := NewPostgresSource(nil, "spacex_launches", "").Load(context.Background()); err == nil {
		t.Fatalf("expected error without database")
	}
}

type fakeRows struct {
	records []domain.LaunchRecord
	pos     int
	iterErr error
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.records) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	rec := r.records[r.pos-1]
	*dest[0].(*string) = rec.Site
	*dest[1].(*int) = rec.Outcome
	*dest[2].(*float64) = rec.PayloadMass
	*dest[3].(*string) = rec.BoosterCategory
	return nil
}

func (r *fakeRows) Err() error { return r.iterErr }

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

func TestScanRecords(t *testing.T) {
	t.Parallel()

	rows := &fakeRows{records: []domain.LaunchRecord{
		{Site: "CCAFS LC-40", Outcome: 0, PayloadMass: 0, BoosterCategory: "v1.0"},
		{Site: "KSC LC-39A", Outcome: 1, PayloadMass: 5300, BoosterCategory: "FT"},
	}}

	records, err := scanRecords(rows)
	if err != nil {
		t.Fatalf("scanRecords: %v", err)
	}
	if len(records) != 2 || records[1].PayloadMass != 5300 || records[1].BoosterCategory != "FT" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if !rows.closed {
		t.Fatalf("expected rows to be closed")
	}
}

func TestScanRecordsRejectsInvalidRows(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		bad  domain.LaunchRecord
	}{
		{"bad class", domain.LaunchRecord{Site: "A", Outcome: 2, PayloadMass: 100, BoosterCategory: "FT"}},
		{"NaN payload", domain.LaunchRecord{Site: "A", Outcome: 1, PayloadMass: math.NaN(), BoosterCategory: "FT"}},
		{"infinite payload", domain.LaunchRecord{Site: "B", Outcome: 1, PayloadMass: math.Inf(1), BoosterCategory: "FT"}},
		{"negative payload", domain.LaunchRecord{Site: "C", Outcome: 0, PayloadMass: -5, BoosterCategory: "FT"}},
	}

	for _, tc := range cases {
		rows := &fakeRows{records: []domain.LaunchRecord{
			{Site: "A", Outcome: 0, PayloadMass: 500, BoosterCategory: "FT"},
			tc.bad,
		}}
		_, err := scanRecords(rows)
		if !errors.Is(err, domain.ErrInvalidRecord) {
			t.Errorf("%s: expected ErrInvalidRecord, got %v", tc.name, err)
			continue
		}
		if !strings.Contains(err.Error(), "launch 2") {
			t.Errorf("%s: expected row position in %q", tc.name, err)
		}
		if !rows.closed {
			t.Errorf("%s: expected rows to be closed", tc.name)
		}
	}
}

func TestScanRecordsIterationError(t *testing.T) {
	t.Parallel()

	rows := &fakeRows{iterErr: errors.New("connection reset")}
	if _, err := scanRecords(rows); err == nil || !strings.Contains(err.Error(), "rows iteration") {
		t.Fatalf("expected iteration error, got %v", err)
	}
	if !rows.closed {
		t.Fatalf("expected rows to be closed")
	}
}
