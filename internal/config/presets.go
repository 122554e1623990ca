package config

import "sort"

// Presets are named sweeps grouped by kind.
var Presets = map[string]map[string]*SweepConfig{
	"isotherm": {
		"room":   {Kind: "isotherm", Fixed: 300, From: 0, To: 100, Steps: 21},
		"mantle": {Kind: "isotherm", Fixed: 2000, From: 20, To: 140, Steps: 25},
		"hot":    {Kind: "isotherm", Fixed: 3000, From: 0, To: 200, Steps: 41},
	},
	"isobar": {
		"ambient":    {Kind: "isobar", Fixed: 0, From: 300, To: 2000, Steps: 18},
		"transition": {Kind: "isobar", Fixed: 25, From: 300, To: 2500, Steps: 23},
		"core":       {Kind: "isobar", Fixed: 135, From: 1000, To: 4000, Steps: 31},
	},
	"isochore": {
		"pt_reference":  {Kind: "isochore", Fixed: 60.3836, From: 300, To: 3000, Steps: 28},
		"pt_compressed": {Kind: "isochore", Fixed: 50, From: 300, To: 3000, Steps: 28},
	},
}

func GetPreset(kind, preset string) *SweepConfig {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds lists the sweep kinds that have presets.
func Kinds() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
