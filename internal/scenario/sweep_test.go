package scenario

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/herogrid/internal/engine"
)

func TestSweepValues(t *testing.T) {
	vals := Sweep{Min: 0.5, Max: 0.9, Steps: 5}.Values()
	want := []float64{0.5, 0.6, 0.7, 0.8, 0.9}
	for i := range want {
		if math.Abs(vals[i]-want[i]) > 1e-12 {
			t.Errorf("value %d = %v, want %v", i, vals[i], want[i])
		}
	}
	if v := (Sweep{Min: 3, Steps: 1}).Values(); len(v) != 1 || v[0] != 3 {
		t.Errorf("single step = %v", v)
	}
}

func TestSetParam(t *testing.T) {
	s := engine.DefaultSettings()
	if err := SetParam(&s, "damping", 0.5); err != nil || s.Physics.Damping != 0.5 {
		t.Errorf("damping = %v, %v", s.Physics.Damping, err)
	}
	if err := SetParam(&s, "reset_delay", 250); err != nil || s.ResetDelay != 250*time.Millisecond {
		t.Errorf("reset delay = %v, %v", s.ResetDelay, err)
	}
	if err := SetParam(&s, "gravity", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestRunSweepThreshold(t *testing.T) {
	sc, _ := Builtin("explode")
	res, err := RunSweep(context.Background(), sc, Sweep{Param: "threshold", Min: 5, Max: 20, Steps: 2},
		Options{Settings: engine.DefaultSettings()})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("results = %d", len(res))
	}
	if res[0].Value != 5 || !res[0].Dispersed {
		t.Errorf("threshold 5 should disperse: %+v", res[0])
	}
	if res[1].Value != 20 || res[1].Dispersed {
		t.Errorf("threshold 20 should not disperse: %+v", res[1])
	}
}

func TestRunSweepDamping(t *testing.T) {
	sc, _ := Builtin("hover")
	res, err := RunSweep(context.Background(), sc, Sweep{Param: "damping", Min: 0.5, Max: 0.9, Steps: 3},
		Options{Settings: engine.DefaultSettings()})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	for _, r := range res {
		if r.Metrics["live_tiles"] != 180 {
			t.Errorf("damping %v: live tiles %v", r.Value, r.Metrics["live_tiles"])
		}
	}
	if res[0].Metrics["mean_displacement"] == res[2].Metrics["mean_displacement"] {
		t.Error("damping should change the displacement")
	}
}

func TestRunSweepZeroSettings(t *testing.T) {
	sc, _ := Builtin("hover")
	res, err := RunSweep(context.Background(), sc, Sweep{Param: "damping", Min: 0.85, Max: 0.85, Steps: 1}, Options{})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if res[0].Metrics["peak_displacement"] <= 0 || res[0].Metrics["mean_displacement"] <= 0 {
		t.Errorf("tiles never moved: %+v", res[0].Metrics)
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	sc, _ := Builtin("hover")
	if _, err := RunSweep(context.Background(), sc, Sweep{Param: "nope", Steps: 2}, Options{}); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
