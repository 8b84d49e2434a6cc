package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/olivier-w/motionsim/internal/sim"
)

// ScenarioExt is the extension of scenario files.
const ScenarioExt = ".env"

// Scenario is a named parameter preset.
type Scenario struct {
	Name        string
	Description string
	Params      sim.Params
	Tuning      string
	Path        string // empty for built-ins
}

// Builtins returns the bundled scenarios. base supplies the unit mode
// and anything a preset leaves unset.
func Builtins(base sim.Params) []Scenario {
	with := func(f func(p *sim.Params)) sim.Params {
		p := base
		f(&p)
		return p.Clamped()
	}
	return []Scenario{
		{
			Name:        "Default",
			Description: "100 m in 10 s, B heavier with some friction",
			Params:      with(func(p *sim.Params) { *p = sim.DefaultParams(); p.Units = base.Units }),
			Tuning:      "classic",
		},
		{
			Name:        "Zero friction",
			Description: "identical masses, no friction",
			Params: with(func(p *sim.Params) {
				p.Distance, p.Time = 100, 10
				p.Mass = [2]float64{10, 10}
				p.Friction = [2]float64{0, 0}
			}),
			Tuning: "classic",
		},
		{
			Name:        "Heavy friction",
			Description: "full friction on B; watch the safety timeout",
			Params: with(func(p *sim.Params) {
				p.Distance, p.Time = 100, 10
				p.Mass = [2]float64{10, 10}
				p.Friction = [2]float64{10, 100}
			}),
			Tuning: "classic",
		},
		{
			Name:        "Long haul",
			Description: "5 km in 10 minutes, heavy objects",
			Params: with(func(p *sim.Params) {
				p.Distance, p.Time = 5000, 600
				p.Mass = [2]float64{120, 180}
				p.Friction = [2]float64{15, 5}
			}),
			Tuning: "classic",
		},
		{
			Name:        "Alternate tuning",
			Description: "narrower normal zone, stronger damping",
			Params:      with(func(p *sim.Params) { *p = sim.DefaultParams(); p.Units = base.Units }),
			Tuning:      "alt",
		},
	}
}

// LoadScenario reads a scenario file. Keys follow the MOTIONSIM_*
// environment names; missing or malformed values fall back to base.
func LoadScenario(path string, base sim.Params) (Scenario, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	lookup := func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}

	cfg := Default()
	cfg.Params = base
	applyEnv(&cfg, lookup)
	if _, err := sim.TuningByName(cfg.Tuning); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Scenario{
		Name:        getEnv(lookup, EnvName, name),
		Description: getEnv(lookup, EnvDescription, path),
		Params:      cfg.Params.Clamped(),
		Tuning:      cfg.Tuning,
		Path:        path,
	}, nil
}

// ScanScenarios lists scenario files in dir, sorted case-insensitively.
// The plain ".env" file holds defaults and is skipped.
func ScanScenarios(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == ScenarioExt {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ScenarioExt) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}

// Current describes the settings resolved from .env, the environment and
// flags as a scenario.
func (c Config) Current() Scenario {
	return Scenario{
		Name:        "Current settings",
		Description: fmt.Sprintf("%g m in %g s, from flags and environment", c.Params.Distance, c.Params.Time),
		Params:      c.Params,
		Tuning:      c.Tuning,
	}
}
