package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Column headers of the launch table.
const (
	ColumnSite     = "Launch Site"
	ColumnOutcome  = "class"
	ColumnPayload  = "Payload Mass (kg)"
	ColumnBooster  = "Booster Version Category"
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

var (
	// ErrEmptyDataset is returned when a source yields no usable rows.
	ErrEmptyDataset = errors.New("dataset has no launch records")
	// ErrMissingColumn is returned when the source lacks a required column.
	ErrMissingColumn = errors.New("required column is missing")
	// ErrInvalidRecord is returned when a row holds an out-of-domain value.
	ErrInvalidRecord = errors.New("invalid launch record")
)

// LaunchRecord is one row of the launch table.
type LaunchRecord struct {
	Site            string
	Outcome         int
	PayloadMass     float64
	BoosterCategory string
}

// Validate checks that the outcome is 0 or 1 and the payload mass is a finite non-negative number.
func (r LaunchRecord) Validate() error {
	if r.Outcome != OutcomeFailure && r.Outcome != OutcomeSuccess {
		return fmt.Errorf("%w: %s must be 0 or 1, got %d", ErrInvalidRecord, ColumnOutcome, r.Outcome)
	}
	if math.IsNaN(r.PayloadMass) || math.IsInf(r.PayloadMass, 0) {
		return fmt.Errorf("%w: %s is not finite: %v", ErrInvalidRecord, ColumnPayload, r.PayloadMass)
	}
	if r.PayloadMass < 0 {
		return fmt.Errorf("%w: %s is negative: %v", ErrInvalidRecord, ColumnPayload, r.PayloadMass)
	}
	return nil
}

// Dataset is the read-only launch table plus aggregates computed at load time.
// Callers share one *Dataset across requests; nothing mutates it after NewDataset.
type Dataset struct {
	records    []LaunchRecord
	sites      []string
	minPayload float64
	maxPayload float64
}

// NewDataset copies records and computes payload bounds and distinct sites.
func NewDataset(records []LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{
		records:    slices.Clone(records),
		minPayload: records[0].PayloadMass,
		maxPayload: records[0].PayloadMass,
	}

	seen := make(map[string]struct{})
	for _, rec := range ds.records {
		ds.minPayload = min(ds.minPayload, rec.PayloadMass)
		ds.maxPayload = max(ds.maxPayload, rec.PayloadMass)
		if _, ok := seen[rec.Site]; !ok {
			seen[rec.Site] = struct{}{}
			ds.sites = append(ds.sites, rec.Site)
		}
	}

	return ds, nil
}

// Len reports the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of every record in load order.
func (d *Dataset) Records() []LaunchRecord {
	return slices.Clone(d.records)
}

// Select returns the records accepted by keep, preserving load order.
func (d *Dataset) Select(keep func(LaunchRecord) bool) []LaunchRecord {
	selected := make([]LaunchRecord, 0, len(d.records))
	for _, rec := range d.records {
		if keep(rec) {
			selected = append(selected, rec)
		}
	}
	return selected
}

// Sites lists distinct site names in order of first appearance.
func (d *Dataset) Sites() []string {
	return slices.Clone(d.sites)
}

// MinPayload is the smallest payload mass in the table.
func (d *Dataset) MinPayload() float64 {
	return d.minPayload
}

// MaxPayload is the largest payload mass in the table.
func (d *Dataset) MaxPayload() float64 {
	return d.maxPayload
}
