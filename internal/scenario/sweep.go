package scenario

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/san-kum/herogrid/internal/engine"
	"github.com/san-kum/herogrid/internal/metrics"
)

var ErrUnknownParam = errors.New("unknown parameter")

// tunables are the settings a sweep can vary. reset_delay is in
// milliseconds.
var tunables = map[string]func(s *engine.Settings, v float64){
	"base_force":    func(s *engine.Settings, v float64) { s.Physics.BaseForce = v },
	"damping":       func(s *engine.Settings, v float64) { s.Physics.Damping = v },
	"restore":       func(s *engine.Settings, v float64) { s.Physics.Restore = v },
	"clamp_damping": func(s *engine.Settings, v float64) { s.Physics.ClampDamp = v },
	"max_offset":    func(s *engine.Settings, v float64) { s.Physics.Ceiling = v },
	"threshold":     func(s *engine.Settings, v float64) { s.Physics.Threshold = int(v) },
	"reset_delay":   func(s *engine.Settings, v float64) { s.ResetDelay = time.Duration(v) * time.Millisecond },
}

// SetParam sets one tunable by name.
func SetParam(s *engine.Settings, name string, v float64) error {
	fn, ok := tunables[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, Params())
	}
	fn(s, v)
	return nil
}

// Params lists the tunable names.
func Params() []string {
	names := make([]string, 0, len(tunables))
	for k := range tunables {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Sweep varies one parameter over Steps evenly spaced values from Min to Max.
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// Values are the parameter values the sweep visits.
func (sw Sweep) Values() []float64 {
	if sw.Steps <= 1 {
		return []float64{sw.Min}
	}
	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	vals := make([]float64, sw.Steps)
	for i := range vals {
		vals[i] = sw.Min + float64(i)*step
	}
	return vals
}

type SweepResult struct {
	Value     float64
	Frames    uint64
	Dispersed bool
	Metrics   map[string]float64
}

// RunSweep plays sc once per sweep value, in parallel. Every run gets its own
// clock and engine, and fresh standard metrics.
func RunSweep(ctx context.Context, sc *Scenario, sw Sweep, opts Options) ([]SweepResult, error) {
	if _, ok := tunables[sw.Param]; !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, sw.Param, Params())
	}
	vals := sw.Values()
	results := make([]SweepResult, len(vals))
	errs := make([]error, len(vals))

	var wg sync.WaitGroup
	for i, v := range vals {
		wg.Add(1)
		go func(idx int, v float64) {
			defer wg.Done()

			o := opts
			o.Record = false
			o.OnFrame = nil
			o.Metrics = metrics.Standard()
			if err := SetParam(&o.Settings, sw.Param, v); err != nil {
				errs[idx] = err
				return
			}
			res, err := Run(ctx, sc, o)
			if err != nil {
				errs[idx] = fmt.Errorf("%s=%g: %w", sw.Param, v, err)
				return
			}
			results[idx] = SweepResult{
				Value:     v,
				Frames:    res.Frames,
				Dispersed: res.Dispersed,
				Metrics:   res.Metrics,
			}
		}(i, v)
	}

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
