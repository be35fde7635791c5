package config

var Presets = map[string]*Config{
	"steel-billet": {
		InitialTemp: 600, AmbientTemp: 300, Emissivity: 0.8, EmissivityModel: "constant",
		SurfaceArea: 0.1, Mass: 1.0, SpecificHeat: 500,
		TotalTime: 4000, TimeStep: 10, Tolerance: 1e-6, Solver: "rk45",
	},
	"polished": {
		InitialTemp: 600, AmbientTemp: 300, Emissivity: 0.2, EmissivityModel: "constant",
		SurfaceArea: 0.1, Mass: 1.0, SpecificHeat: 500,
		TotalTime: 12000, TimeStep: 10, Tolerance: 1e-6, Solver: "rk45",
	},
	"blackbody": {
		InitialTemp: 600, AmbientTemp: 300, Emissivity: 1.0, EmissivityModel: "constant",
		SurfaceArea: 0.1, Mass: 1.0, SpecificHeat: 500,
		TotalTime: 4000, TimeStep: 10, Tolerance: 1e-6, Solver: "rk45",
	},
	"oxidized": {
		InitialTemp: 600, AmbientTemp: 300, EmissivityModel: "oxidized",
		SurfaceArea: 0.1, Mass: 1.0, SpecificHeat: 500,
		TotalTime: 4000, TimeStep: 10, Tolerance: 1e-6, Solver: "rk45",
	},
	"aluminum-plate": {
		InitialTemp: 500, AmbientTemp: 293, Emissivity: 0.25, EmissivityModel: "constant",
		SurfaceArea: 0.2, Mass: 0.5, SpecificHeat: 900,
		TotalTime: 8000, TimeStep: 10, Tolerance: 1e-6, Solver: "rk45",
	},
	"spacecraft-radiator": {
		InitialTemp: 400, AmbientTemp: 3, Emissivity: 0.92, EmissivityModel: "constant",
		SurfaceArea: 1.5, Mass: 4.0, SpecificHeat: 880,
		TotalTime: 20000, TimeStep: 20, Tolerance: 1e-6, Solver: "rk45",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
