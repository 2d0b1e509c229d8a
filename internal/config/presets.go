package config

import (
	"sort"
	"time"
)

var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"subtle": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.BaseForce = 0.4
		cfg.Physics.Ceiling = 40
		cfg.Physics.OpacityMax = 0.1
		cfg.Display.Theme = "mono"
		return cfg
	},
	"volatile": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.BaseForce = 1.4
		cfg.Physics.Damping = 0.9
		cfg.Interaction.Threshold = 5
		cfg.Interaction.ResetDelay = time.Second
		cfg.Explosion.Duration = time.Second
		cfg.Display.Theme = "ember"
		return cfg
	},
	"dense": func() *Config {
		cfg := DefaultConfig()
		for i := range cfg.Layout {
			cfg.Layout[i].ItemSize /= 2
			cfg.Layout[i].Gap /= 2
		}
		cfg.Display.Theme = "ocean"
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
