// Package scenario replays scripted input against an engine on a virtual
// clock, so runs are deterministic and independent of wall time.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid scenario")

type Action string

const (
	Move           Action = "move"
	Touch          Action = "touch"
	TouchStart     Action = "touch-start"
	Press          Action = "press"
	Release        Action = "release"
	ReleaseOutside Action = "release-outside"
	Resize         Action = "resize"
	Hide           Action = "hide"
	Show           Action = "show"
	Teardown       Action = "teardown"
)

var actions = map[Action]bool{
	Move: true, Touch: true, TouchStart: true, Press: true, Release: true,
	ReleaseOutside: true, Resize: true, Hide: true, Show: true, Teardown: true,
}

// Event is one scripted input. X and Y are the pointer for move and touch
// actions; Width and Height the new viewport for resize.
type Event struct {
	At     time.Duration `yaml:"at"`
	Action Action        `yaml:"action"`
	X      float64       `yaml:"x,omitempty"`
	Y      float64       `yaml:"y,omitempty"`
	Width  float64       `yaml:"width,omitempty"`
	Height float64       `yaml:"height,omitempty"`
}

type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Width       float64       `yaml:"width,omitempty"`
	Height      float64       `yaml:"height,omitempty"`
	Duration    time.Duration `yaml:"duration,omitempty"`
	Events      []Event       `yaml:"events"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func (s *Scenario) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: negative viewport %vx%v", ErrInvalid, s.Width, s.Height)
	}
	if s.Duration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalid)
	}
	for i, ev := range s.Events {
		if !actions[ev.Action] {
			return fmt.Errorf("%w: event %d: unknown action %q", ErrInvalid, i, ev.Action)
		}
		if ev.At < 0 {
			return fmt.Errorf("%w: event %d: negative time", ErrInvalid, i)
		}
		if ev.Action == Resize && (ev.Width <= 0 || ev.Height <= 0) {
			return fmt.Errorf("%w: event %d: resize needs width and height", ErrInvalid, i)
		}
	}
	return nil
}

// Timeline returns the events ordered by time. Events at the same time keep
// their script order.
func (s *Scenario) Timeline() []Event {
	evs := append([]Event(nil), s.Events...)
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].At < evs[j].At })
	return evs
}

// Length is the configured duration, or one explosion's worth past the last
// event when unset.
func (s *Scenario) Length() time.Duration {
	if s.Duration > 0 {
		return s.Duration
	}
	var last time.Duration
	for _, ev := range s.Events {
		last = max(last, ev.At)
	}
	return last + 3*time.Second
}
