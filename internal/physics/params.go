package physics

const (
	DefaultBaseForce   = 0.8
	DefaultDamping     = 0.85
	DefaultRestore     = 0.15
	DefaultClampDamp   = 0.5
	DefaultCeiling     = 100.0
	DefaultOpacityBase = 0.03
	DefaultOpacityMax  = 0.2
	DefaultThreshold   = 10
)

// Params are the tunable constants of the integrator.
type Params struct {
	BaseForce   float64 `yaml:"base_force"`
	Damping     float64 `yaml:"damping"`
	Restore     float64 `yaml:"restore"`
	ClampDamp   float64 `yaml:"clamp_damping"`
	Ceiling     float64 `yaml:"max_offset"`
	OpacityBase float64 `yaml:"opacity_base"`
	OpacityMax  float64 `yaml:"opacity_max"`
	// Threshold is the interaction count that disperses the grid. The
	// escalation curves are calibrated against Threshold-1.
	Threshold int `yaml:"-"`
}

func DefaultParams() Params {
	return Params{
		BaseForce:   DefaultBaseForce,
		Damping:     DefaultDamping,
		Restore:     DefaultRestore,
		ClampDamp:   DefaultClampDamp,
		Ceiling:     DefaultCeiling,
		OpacityBase: DefaultOpacityBase,
		OpacityMax:  DefaultOpacityMax,
		Threshold:   DefaultThreshold,
	}
}

// WithDefaults fills every zero field with its default.
func (p Params) WithDefaults() Params {
	def := DefaultParams()
	if p.BaseForce == 0 {
		p.BaseForce = def.BaseForce
	}
	if p.Damping == 0 {
		p.Damping = def.Damping
	}
	if p.Restore == 0 {
		p.Restore = def.Restore
	}
	if p.ClampDamp == 0 {
		p.ClampDamp = def.ClampDamp
	}
	if p.Ceiling == 0 {
		p.Ceiling = def.Ceiling
	}
	if p.OpacityBase == 0 {
		p.OpacityBase = def.OpacityBase
	}
	if p.OpacityMax == 0 {
		p.OpacityMax = def.OpacityMax
	}
	if p.Threshold <= 0 {
		p.Threshold = def.Threshold
	}
	return p
}

func (p Params) steps() float64 {
	if p.Threshold <= 1 {
		return 1
	}
	return float64(p.Threshold - 1)
}

// Multiplier is the force and displacement scale for an interaction count.
func Multiplier(count int) float64 {
	if count < 1 {
		return 1
	}
	return float64(count)
}

// MaxOffset is the displacement bound for an interaction count.
func (p Params) MaxOffset(count int) float64 {
	m := Multiplier(count)
	n := p.steps()
	return p.Ceiling * m * m / (n * n)
}

// Opacity is the tile alpha shared by every tile in a frame.
func (p Params) Opacity(count int) float64 {
	if count < 0 {
		count = 0
	}
	step := (p.OpacityMax - p.OpacityBase) / p.steps()
	o := p.OpacityBase + step*float64(count)
	if o > p.OpacityMax {
		return p.OpacityMax
	}
	return o
}
