// Package dispatch binds dashboard inputs to the views that depend on them.
//
// Each Binding maps a set of input ids to one output slot and the pure view
// that fills it. Dispatch recomputes only the outputs bound to the input that
// changed, one event at a time.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/louisbranch/launchdash/internal/chart"
	"github.com/louisbranch/launchdash/internal/launch"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/launchdash/internal/dispatch"

// Input identifies a user-editable control.
type Input string

// Output identifies a chart slot on the page.
type Output string

const (
	InputSite    Input = "site-dropdown"
	InputPayload Input = "payload-slider"

	OutputPie     Output = "success-pie-chart"
	OutputScatter Output = "success-payload-scatter-chart"
)

// View recomputes one output from the dataset and control state.
type View func(launch.Dataset, launch.ControlState) chart.Spec

// Binding ties an output slot to its view and the inputs it listens to.
type Binding struct {
	Output Output
	Inputs []Input
	View   View
}

// Event is one control change. An empty Trigger requests every output.
type Event struct {
	Trigger Input
	State   launch.ControlState
}

// Update is a recomputed output.
type Update struct {
	Output Output
	Spec   chart.Spec
}

// Dispatcher serializes control events against an immutable dataset.
type Dispatcher struct {
	mu       sync.Mutex
	dataset  launch.Dataset
	bindings []Binding
	tracer   trace.Tracer
}

// New validates bindings and builds a dispatcher over dataset.
func New(dataset launch.Dataset, bindings ...Binding) (*Dispatcher, error) {
	if len(bindings) == 0 {
		return nil, errors.New("at least one binding is required")
	}
	seen := make(map[Output]struct{}, len(bindings))
	copied := make([]Binding, 0, len(bindings))
	for _, binding := range bindings {
		output := Output(strings.TrimSpace(string(binding.Output)))
		if output == "" {
			return nil, errors.New("binding output is required")
		}
		if _, ok := seen[output]; ok {
			return nil, fmt.Errorf("output %q is bound more than once", output)
		}
		if binding.View == nil {
			return nil, fmt.Errorf("output %q: view is required", output)
		}
		if len(binding.Inputs) == 0 {
			return nil, fmt.Errorf("output %q: at least one input is required", output)
		}
		seen[output] = struct{}{}
		copied = append(copied, Binding{
			Output: output,
			Inputs: append([]Input(nil), binding.Inputs...),
			View:   binding.View,
		})
	}
	return &Dispatcher{
		dataset:  dataset,
		bindings: copied,
		tracer:   otel.Tracer(tracerName),
	}, nil
}

// Dataset returns the dataset the dispatcher computes against.
func (d *Dispatcher) Dataset() launch.Dataset {
	return d.dataset
}

// Outputs lists bound outputs in binding order.
func (d *Dispatcher) Outputs() []Output {
	outputs := make([]Output, len(d.bindings))
	for idx, binding := range d.bindings {
		outputs[idx] = binding.Output
	}
	return outputs
}

// Dispatch recomputes every output bound to event.Trigger, in binding order.
// Unknown triggers recompute nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) []Update {
	if ctx == nil {
		ctx = context.Background()
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, span := d.tracer.Start(ctx, "dispatch.event", trace.WithAttributes(
		attribute.String("trigger", string(event.Trigger)),
		attribute.String("site", event.State.Site),
		attribute.Float64("payload_low", event.State.Payload.Low),
		attribute.Float64("payload_high", event.State.Payload.High),
	))
	defer span.End()

	updates := make([]Update, 0, len(d.bindings))
	for _, binding := range d.bindings {
		if event.Trigger != "" && !listensTo(binding, event.Trigger) {
			continue
		}
		_, recompute := d.tracer.Start(ctx, "dispatch.recompute", trace.WithAttributes(
			attribute.String("output", string(binding.Output)),
		))
		spec := binding.View(d.dataset, event.State)
		recompute.End()
		updates = append(updates, Update{Output: binding.Output, Spec: spec})
	}
	span.SetAttributes(attribute.Int("updates", len(updates)))
	return updates
}

func listensTo(binding Binding, input Input) bool {
	for _, candidate := range binding.Inputs {
		if candidate == input {
			return true
		}
	}
	return false
}
