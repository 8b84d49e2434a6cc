// Package config resolves startup settings once: .env defaults, then
// environment variables, then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/olivier-w/motionsim/internal/sim"
	"github.com/olivier-w/motionsim/internal/soundfmt"
)

// Config holds every startup setting, including which optional features
// are enabled.
type Config struct {
	Params sim.Params
	Tuning string

	Charts      bool
	Trails      bool
	Chime       bool
	ChimeFile   string
	ChimeVolume float64
	FPS         int

	Headless bool
	Step     float64 // headless fixed dt, seconds
	OutDir   string // empty means the working directory
	LogFile  string

	Scenario string // scenario file given on the command line
}

// Environment variable names. Scenario files use the same keys.
const (
	EnvDistance    = "MOTIONSIM_DISTANCE"
	EnvTime        = "MOTIONSIM_TIME"
	EnvMassA       = "MOTIONSIM_MASS_A"
	EnvMassB       = "MOTIONSIM_MASS_B"
	EnvFrictionA   = "MOTIONSIM_FRICTION_A"
	EnvFrictionB   = "MOTIONSIM_FRICTION_B"
	EnvUnits       = "MOTIONSIM_UNITS"
	EnvTuning      = "MOTIONSIM_TUNING"
	EnvCharts      = "MOTIONSIM_CHARTS"
	EnvTrails      = "MOTIONSIM_TRAILS"
	EnvChime       = "MOTIONSIM_CHIME"
	EnvChimeFile   = "MOTIONSIM_CHIME_FILE"
	EnvChimeVolume = "MOTIONSIM_CHIME_VOLUME"
	EnvFPS         = "MOTIONSIM_FPS"
	EnvDebug       = "MOTIONSIM_DEBUG"
	EnvName        = "MOTIONSIM_NAME"
	EnvDescription = "MOTIONSIM_DESCRIPTION"
)

type lookupFunc func(string) (string, bool)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Params:      sim.DefaultParams(),
		Tuning:      "classic",
		Charts:      true,
		Trails:      true,
		Chime:       true,
		ChimeVolume: 0.6,
		FPS:         60,
		Step:        1.0 / 60,
	}
}

// Load reads .env (if present) and the environment, then parses args.
func Load(args []string) (Config, error) {
	// Load .env file if it exists
	godotenv.Load()
	return load(args, os.LookupEnv, os.Stderr)
}

func load(args []string, lookup lookupFunc, usageOut io.Writer) (Config, error) {
	cfg := Default()
	applyEnv(&cfg, lookup)

	fs := flag.NewFlagSet("motionsim", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	units := cfg.Params.Units.String()
	fs.Float64Var(&cfg.Params.Distance, "distance", cfg.Params.Distance, "total track distance in metres")
	fs.Float64Var(&cfg.Params.Time, "time", cfg.Params.Time, "target race time in seconds")
	fs.Float64Var(&cfg.Params.Mass[sim.ObjectA], "mass-a", cfg.Params.Mass[sim.ObjectA], "mass of object A")
	fs.Float64Var(&cfg.Params.Mass[sim.ObjectB], "mass-b", cfg.Params.Mass[sim.ObjectB], "mass of object B")
	fs.Float64Var(&cfg.Params.Friction[sim.ObjectA], "friction-a", cfg.Params.Friction[sim.ObjectA], "friction percent of object A")
	fs.Float64Var(&cfg.Params.Friction[sim.ObjectB], "friction-b", cfg.Params.Friction[sim.ObjectB], "friction percent of object B")
	fs.StringVar(&units, "units", units, "speed display units: ms or kmh")
	fs.StringVar(&cfg.Tuning, "tuning", cfg.Tuning, "physics tuning: "+strings.Join(sim.TuningNames(), ", "))
	fs.BoolVar(&cfg.Charts, "charts", cfg.Charts, "show live charts")
	fs.BoolVar(&cfg.Trails, "trails", cfg.Trails, "draw object trails")
	fs.BoolVar(&cfg.Chime, "chime", cfg.Chime, "play a sound when an object arrives")
	fs.StringVar(&cfg.ChimeFile, "chime-file", cfg.ChimeFile, "custom chime sound ("+soundfmt.SupportedExtsList()+")")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "interactive frame rate")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run without the TUI and print a summary")
	fs.Float64Var(&cfg.Step, "step", cfg.Step, "headless fixed time step in seconds")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "export directory for charts and CSV; headless runs export only when set")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "write debug log to this file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	u, err := sim.ParseUnitMode(units)
	if err != nil {
		return Config{}, err
	}
	cfg.Params.Units = u
	cfg.Params = cfg.Params.Clamped()

	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("expected at most one scenario file, got %d arguments", fs.NArg())
	}
	if fs.NArg() == 1 {
		cfg.Scenario = fs.Arg(0)
	}
	return cfg, cfg.Validate()
}

// Validate checks settings that cannot be clamped.
func (c Config) Validate() error {
	var errs []error
	if _, err := sim.TuningByName(c.Tuning); err != nil {
		errs = append(errs, err)
	}
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps %d out of range [1,240]", c.FPS))
	}
	if c.Step <= 0 || c.Step > 1 {
		errs = append(errs, fmt.Errorf("step %g out of range (0,1]", c.Step))
	}
	if c.ChimeFile != "" && !soundfmt.IsSupportedExt(filepath.Ext(c.ChimeFile)) {
		errs = append(errs, fmt.Errorf("%w: %s", soundfmt.ErrUnsupportedFormat, c.ChimeFile))
	}
	return errors.Join(errs...)
}

// applyEnv overlays values found through lookup. Unparseable values keep
// the current setting and are logged.
func applyEnv(cfg *Config, lookup lookupFunc) {
	p := &cfg.Params
	p.Distance = getEnvFloat(lookup, EnvDistance, p.Distance)
	p.Time = getEnvFloat(lookup, EnvTime, p.Time)
	p.Mass[sim.ObjectA] = getEnvFloat(lookup, EnvMassA, p.Mass[sim.ObjectA])
	p.Mass[sim.ObjectB] = getEnvFloat(lookup, EnvMassB, p.Mass[sim.ObjectB])
	p.Friction[sim.ObjectA] = getEnvFloat(lookup, EnvFrictionA, p.Friction[sim.ObjectA])
	p.Friction[sim.ObjectB] = getEnvFloat(lookup, EnvFrictionB, p.Friction[sim.ObjectB])
	if v, ok := lookup(EnvUnits); ok {
		if u, err := sim.ParseUnitMode(v); err == nil {
			p.Units = u
		} else {
			log.Printf("config: %s: %v", EnvUnits, err)
		}
	}

	cfg.Tuning = getEnv(lookup, EnvTuning, cfg.Tuning)
	cfg.Charts = getEnvBool(lookup, EnvCharts, cfg.Charts)
	cfg.Trails = getEnvBool(lookup, EnvTrails, cfg.Trails)
	cfg.Chime = getEnvBool(lookup, EnvChime, cfg.Chime)
	cfg.ChimeFile = getEnv(lookup, EnvChimeFile, cfg.ChimeFile)
	cfg.ChimeVolume = getEnvFloat(lookup, EnvChimeVolume, cfg.ChimeVolume)
	cfg.FPS = getEnvInt(lookup, EnvFPS, cfg.FPS)
}

func getEnv(lookup lookupFunc, key, defaultValue string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(lookup lookupFunc, key string, defaultValue float64) float64 {
	value, ok := lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != f {
		log.Printf("config: %s=%q is not a number, keeping %g", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvInt(lookup lookupFunc, key string, defaultValue int) int {
	value, ok := lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, keeping %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(lookup lookupFunc, key string, defaultValue bool) bool {
	value, ok := lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("config: %s=%q is not a boolean, keeping %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}
