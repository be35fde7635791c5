package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/radcool/internal/model"
	"github.com/san-kum/radcool/internal/thermo"
)

const (
	DefaultInitialTemp  = 600.0
	DefaultAmbientTemp  = 300.0
	DefaultEmissivity   = 0.8
	DefaultSurfaceArea  = 0.1
	DefaultMass         = 1.0
	DefaultSpecificHeat = 500.0
	DefaultTotalTime    = 4000.0
	DefaultTimeStep     = 10.0
	DefaultTolerance    = 1e-6
)

type Config struct {
	InitialTemp     float64 `yaml:"initial_temp"`
	AmbientTemp     float64 `yaml:"ambient_temp"`
	Emissivity      float64 `yaml:"emissivity"`
	EmissivityModel string  `yaml:"emissivity_model"` // constant | oxidized
	SurfaceArea     float64 `yaml:"surface_area"`
	Mass            float64 `yaml:"mass"`
	SpecificHeat    float64 `yaml:"specific_heat"`
	TotalTime       float64 `yaml:"total_time"`
	TimeStep        float64 `yaml:"time_step"`
	Tolerance       float64 `yaml:"tolerance"`
	Solver          string  `yaml:"solver"` // rk45 | rk4
}

func DefaultConfig() *Config {
	return &Config{
		InitialTemp:     DefaultInitialTemp,
		AmbientTemp:     DefaultAmbientTemp,
		Emissivity:      DefaultEmissivity,
		EmissivityModel: "constant",
		SurfaceArea:     DefaultSurfaceArea,
		Mass:            DefaultMass,
		SpecificHeat:    DefaultSpecificHeat,
		TotalTime:       DefaultTotalTime,
		TimeStep:        DefaultTimeStep,
		Tolerance:       DefaultTolerance,
		Solver:          "rk45",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params maps the configuration to a validated physical parameter set.
func (c *Config) Params() (model.Params, error) {
	p := model.Params{
		Initial:      c.InitialTemp,
		Ambient:      c.AmbientTemp,
		Area:         c.SurfaceArea,
		Mass:         c.Mass,
		SpecificHeat: c.SpecificHeat,
	}

	switch c.EmissivityModel {
	case "", "constant":
		p.Emissivity = model.Constant(c.Emissivity)
	case "oxidized":
		p.Emissivity = model.Oxidized()
	default:
		return model.Params{}, fmt.Errorf("unknown emissivity model: %s", c.EmissivityModel)
	}

	return p, p.Validate()
}

// Grid is the reporting grid implied by total time and time step.
func (c *Config) Grid() []float64 {
	return thermo.Grid(c.TotalTime, c.TimeStep)
}
