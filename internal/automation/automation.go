package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/confocal/internal/field"
	"gopkg.in/yaml.v3"
)

func tracer() tracing.Trace {
	return tracing.Select("confocal.automation")
}

var ErrUnknownAction = errors.New("automation: unknown action")

// Scenario is a scripted sequence of viewer input.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one scripted input, e.g. {action: press, direction: right,
// repeat: 40}. Repeat defaults to one.
type Step struct {
	Action    string  `yaml:"action"`
	Direction string  `yaml:"direction,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
	Height    float64 `yaml:"height,omitempty"`
	Repeat    int     `yaml:"repeat,omitempty"`
}

// Sample is the controller state after one dispatched input. Wrapped is
// set when that input pushed the focal distance past the limit.
type Sample struct {
	Step    int     `json:"step"`
	Action  string  `json:"action"`
	Focal   float64 `json:"focal"`
	Label   string  `json:"label"`
	Wrapped bool    `json:"wrapped"`
}

// Recording is the outcome of running a scenario.
type Recording struct {
	Scenario string   `json:"scenario"`
	Samples  []Sample `json:"samples"`
}

// Focal returns the focal distance series, one value per sample.
func (r *Recording) Focal() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Focal
	}
	return out
}

// Wraps counts the samples taken right after a wrap-around.
func (r *Recording) Wraps() int {
	n := 0
	for _, s := range r.Samples {
		if s.Wrapped {
			n++
		}
	}
	return n
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, step := range scenario.Steps {
		if _, err := step.Event(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &scenario, nil
}

// Event converts the step into the controller event it stands for.
func (s Step) Event() (field.Event, error) {
	switch s.Action {
	case "key":
		d, err := field.ParseDirection(s.Direction)
		return field.KeyDownEvent(d), err
	case "press":
		d, err := field.ParseDirection(s.Direction)
		return field.PressStartEvent(d), err
	case "release":
		d, err := field.ParseDirection(s.Direction)
		return field.PressStopEvent(d), err
	case "resize":
		if s.Width <= 0 || s.Height <= 0 {
			return field.Event{}, fmt.Errorf("resize needs a positive size, got %gx%g", s.Width, s.Height)
		}
		return field.ResizeEvent(s.Width, s.Height), nil
	case "touch":
		return field.Event{Kind: field.EventFirstTouch}, nil
	case "keypress":
		return field.Event{Kind: field.EventFirstKeyPress}, nil
	case "fullscreen":
		return field.Event{Kind: field.EventFullscreen}, nil
	}
	return field.Event{}, fmt.Errorf("%w: %q", ErrUnknownAction, s.Action)
}

func (s Step) repeat() int {
	if s.Repeat < 1 {
		return 1
	}
	return s.Repeat
}

// RunScenario dispatches every step to ctrl in order and records the state
// after each event. The controller must already be started.
func RunScenario(ctx context.Context, scenario *Scenario, ctrl *field.Controller) (*Recording, error) {
	rec := &Recording{Scenario: scenario.Name}
	rec.Samples = append(rec.Samples, Sample{Action: "start", Focal: ctrl.FocalDistance(), Label: ctrl.Label()})

	for i, step := range scenario.Steps {
		ev, err := step.Event()
		if err != nil {
			return rec, fmt.Errorf("step %d: %w", i+1, err)
		}
		tracer().Infof("step %d/%d: %s x%d", i+1, len(scenario.Steps), step.Action, step.repeat())

		for n := 0; n < step.repeat(); n++ {
			if err := ctx.Err(); err != nil {
				return rec, err
			}
			wraps := ctrl.Wraps()
			if err := ctrl.Dispatch(ev); err != nil {
				return rec, fmt.Errorf("step %d: %w", i+1, err)
			}
			rec.Samples = append(rec.Samples, Sample{
				Step:    i + 1,
				Action:  step.Action,
				Focal:   ctrl.FocalDistance(),
				Label:   ctrl.Label(),
				Wrapped: ctrl.Wraps() > wraps,
			})
		}
	}
	return rec, nil
}

// Hold is the scenario of pressing one arrow key n times.
func Hold(d field.Direction, n int) *Scenario {
	return &Scenario{
		Name:  fmt.Sprintf("hold-%s", d),
		Steps: []Step{{Action: "key", Direction: d.String(), Repeat: n}},
	}
}
