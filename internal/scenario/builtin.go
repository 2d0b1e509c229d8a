package scenario

import (
	"math"
	"sort"
	"time"
)

var builtins = map[string]func() *Scenario{
	"hover":   hover,
	"part":    part,
	"explode": burst,
	"decay":   decay,
}

// Builtin returns a fresh copy of a built-in scenario.
func Builtin(name string) (*Scenario, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

func Names() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// circle moves the pointer around (cx, cy) from start for the given time.
func circle(start, length time.Duration, cx, cy, r float64, period time.Duration) []Event {
	var evs []Event
	for t := time.Duration(0); t <= length; t += 20 * time.Millisecond {
		a := 2 * math.Pi * float64(t) / float64(period)
		evs = append(evs, Event{
			At:     start + t,
			Action: Move,
			X:      cx + r*math.Cos(a),
			Y:      cy + r*math.Sin(a),
		})
	}
	return evs
}

func hover() *Scenario {
	return &Scenario{
		Name:        "hover",
		Description: "pointer circles the grid without pressing",
		Width:       1280,
		Height:      720,
		Duration:    4 * time.Second,
		Events:      circle(0, 4*time.Second, 640, 360, 200, 2*time.Second),
	}
}

func part() *Scenario {
	evs := []Event{{At: 0, Action: Move, X: 640, Y: 360}}
	evs = append(evs,
		Event{At: ms(500), Action: Press},
		Event{At: ms(1500), Action: Release},
	)
	evs = append(evs, circle(ms(1600), ms(1400), 640, 360, 120, 2*time.Second)...)
	return &Scenario{
		Name:        "part",
		Description: "hold the pointer down to push the tiles away, then let go",
		Width:       1280,
		Height:      720,
		Duration:    3 * time.Second,
		Events:      evs,
	}
}

func burst() *Scenario {
	evs := []Event{{At: 0, Action: Move, X: 500, Y: 300}}
	for i := 0; i < 10; i++ {
		at := ms(200 + 150*i)
		evs = append(evs,
			Event{At: at, Action: Press},
			Event{At: at + ms(60), Action: Release},
		)
	}
	return &Scenario{
		Name:        "explode",
		Description: "ten quick presses disperse the grid",
		Width:       1280,
		Height:      720,
		Duration:    5 * time.Second,
		Events:      evs,
	}
}

func decay() *Scenario {
	evs := []Event{
		{At: 0, Action: Move, X: 400, Y: 300},
		{At: ms(100), Action: Press},
		{At: ms(300), Action: Release},
		{At: ms(400), Action: Press},
		{At: ms(600), Action: Release},
	}
	for i := 0; i <= 25; i++ {
		evs = append(evs, Event{At: ms(600 + 40*i), Action: Move, X: 400 + 20*float64(i), Y: 300})
	}
	evs = append(evs, Event{At: ms(1700), Action: Move, X: -2000, Y: -2000})
	return &Scenario{
		Name:        "decay",
		Description: "drag through the grid, leave, and watch the tiles settle",
		Width:       1280,
		Height:      720,
		Duration:    5 * time.Second,
		Events:      evs,
	}
}
