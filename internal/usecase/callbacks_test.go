package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"LaunchDashboard/internal/domain"
	"LaunchDashboard/internal/reactive"
)

func newRegistry(t *testing.T) (*reactive.Registry, *Dashboard) {
	t.Helper()

	ds := fixture(t)
	dash := NewDashboard(DashboardDeps{Dataset: ds})
	reg := reactive.NewRegistry(DefaultInputs(BuildLayout(ds)))
	if err := RegisterCallbacks(reg, dash); err != nil {
		t.Fatalf("RegisterCallbacks: %v", err)
	}
	return reg, dash
}

func TestDefaultInputs(t *testing.T) {
	t.Parallel()

	got := DefaultInputs(BuildLayout(fixture(t)))
	want := reactive.Inputs{
		"site-dropdown":  {"All"},
		"payload-slider": {"0", "9600"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected defaults (-want +got):\n%s", diff)
	}
}

func TestRegisteredCallbacksMatchDirectCalls(t *testing.T) {
	t.Parallel()

	reg, dash := newRegistry(t)
	ctx := context.Background()

	pie, err := reg.Dispatch(ctx, domain.PieChartID, reactive.Inputs{"site-dropdown": {"VAFB SLC-4E"}})
	if err != nil {
		t.Fatalf("dispatch pie: %v", err)
	}
	if diff := cmp.Diff(domain.Figure(dash.SuccessPie("VAFB SLC-4E")), pie); diff != "" {
		t.Fatalf("pie mismatch (-want +got):\n%s", diff)
	}

	scatter, err := reg.Dispatch(ctx, domain.ScatterChartID, reactive.Inputs{
		"site-dropdown":  {"All"},
		"payload-slider": {"1000", "6000"},
	})
	if err != nil {
		t.Fatalf("dispatch scatter: %v", err)
	}
	want := dash.PayloadScatter(domain.AllSites, domain.PayloadRange{Low: 1000, High: 6000})
	if diff := cmp.Diff(domain.Figure(want), scatter); diff != "" {
		t.Fatalf("scatter mismatch (-want +got):\n%s", diff)
	}
}

func TestDependentsFollowWiring(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)

	if diff := cmp.Diff([]string{domain.PieChartID, domain.ScatterChartID}, reg.Dependents(domain.SiteDropdownID)); diff != "" {
		t.Fatalf("site dropdown dependents (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{domain.ScatterChartID}, reg.Dependents(domain.PayloadSliderID)); diff != "" {
		t.Fatalf("payload slider dependents (-want +got):\n%s", diff)
	}
}

func TestScatterCallbackRejectsMalformedRange(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	_, err := reg.Dispatch(context.Background(), domain.ScatterChartID, reactive.Inputs{
		"payload-slider": {"abc", "100"},
	})
	if !errors.Is(err, reactive.ErrBadInput) {
		t.Fatalf("expected ErrBadInput, got %v", err)
	}
}
