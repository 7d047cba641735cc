package reactive

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"LaunchDashboard/internal/domain"
)

var (
	// ErrUnknownOutput is returned when no callback targets the requested output.
	ErrUnknownOutput = errors.New("no callback registered for output")
	// ErrBadInput wraps malformed input values.
	ErrBadInput = errors.New("invalid input value")
)

// Inputs carries raw control values keyed by component ID.
// A dropdown has one value, a range control has two.
type Inputs map[string][]string

// String returns the single value of a control.
func (in Inputs) String(id string) (string, error) {
	values := in[id]
	if len(values) != 1 {
		return "", fmt.Errorf("%w: %s expects 1 value, got %d", ErrBadInput, id, len(values))
	}
	return values[0], nil
}

// Range returns the [low, high] pair of a range control.
func (in Inputs) Range(id string) (domain.PayloadRange, error) {
	values := in[id]
	if len(values) != 2 {
		return domain.PayloadRange{}, fmt.Errorf("%w: %s expects 2 values, got %d", ErrBadInput, id, len(values))
	}

	low, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return domain.PayloadRange{}, fmt.Errorf("%w: %s low: %v", ErrBadInput, id, err)
	}
	high, err := strconv.ParseFloat(values[1], 64)
	if err != nil {
		return domain.PayloadRange{}, fmt.Errorf("%w: %s high: %v", ErrBadInput, id, err)
	}

	return domain.PayloadRange{Low: low, High: high}, nil
}

// Handler recomputes one output from its inputs.
type Handler func(ctx context.Context, in Inputs) (domain.Figure, error)

// Callback binds an output placeholder to the inputs it depends on.
type Callback struct {
	Output  string
	Inputs  []string
	Handler Handler
}

// Dependency is the wiring the page needs to know which outputs to refresh.
type Dependency struct {
	Output string   `json:"output"`
	Inputs []string `json:"inputs"`
}

// Registry keeps a mapping from output IDs to their callbacks.
type Registry struct {
	callbacks map[string]Callback
	order     []string
	defaults  Inputs
}

// NewRegistry builds an empty registry; defaults fill inputs a request omits.
func NewRegistry(defaults Inputs) *Registry {
	return &Registry{callbacks: map[string]Callback{}, defaults: defaults}
}

// Register adds a callback. Each output may be bound once.
func (r *Registry) Register(cb Callback) error {
	if cb.Output == "" || cb.Handler == nil {
		return fmt.Errorf("callback needs an output and a handler")
	}
	if r.callbacks == nil {
		r.callbacks = map[string]Callback{}
	}
	if _, exists := r.callbacks[cb.Output]; exists {
		return fmt.Errorf("output %s already has a callback", cb.Output)
	}
	r.callbacks[cb.Output] = cb
	r.order = append(r.order, cb.Output)
	return nil
}

// Resolve returns a callback by output or an error if it is absent.
func (r *Registry) Resolve(output string) (Callback, error) {
	if cb, ok := r.callbacks[output]; ok {
		return cb, nil
	}
	return Callback{}, fmt.Errorf("%w: %s", ErrUnknownOutput, output)
}

// Dependents lists the outputs recomputed when input changes, in registration order.
func (r *Registry) Dependents(input string) []string {
	var outputs []string
	for _, output := range r.order {
		for _, id := range r.callbacks[output].Inputs {
			if id == input {
				outputs = append(outputs, output)
				break
			}
		}
	}
	return outputs
}

// Dependencies describes every registered callback.
func (r *Registry) Dependencies() []Dependency {
	deps := make([]Dependency, 0, len(r.order))
	for _, output := range r.order {
		cb := r.callbacks[output]
		deps = append(deps, Dependency{Output: output, Inputs: append([]string(nil), cb.Inputs...)})
	}
	return deps
}

// Dispatch runs the callback bound to output. Only the callback's declared
// inputs are passed on; missing ones take the registry defaults.
func (r *Registry) Dispatch(ctx context.Context, output string, in Inputs) (domain.Figure, error) {
	cb, err := r.Resolve(output)
	if err != nil {
		return nil, err
	}

	scoped := make(Inputs, len(cb.Inputs))
	for _, id := range cb.Inputs {
		if values, ok := in[id]; ok && len(values) > 0 {
			scoped[id] = values
			continue
		}
		if values, ok := r.defaults[id]; ok {
			scoped[id] = values
		}
	}

	fig, err := cb.Handler(ctx, scoped)
	if err != nil {
		return nil, fmt.Errorf("callback %s: %w", output, err)
	}
	return fig, nil
}
