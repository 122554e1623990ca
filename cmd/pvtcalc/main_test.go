package main

import (
	"testing"

	"github.com/san-kum/pvtcalc/internal/config"
	"github.com/san-kum/pvtcalc/internal/sweep"
)

func TestParseValue(t *testing.T) {
	for _, s := range []string{"", "?", "  "} {
		v, err := parseValue("pressure", s)
		if err != nil || v.IsKnown() {
			t.Errorf("%q: expected unknown, got %v, %v", s, v, err)
		}
	}

	v, err := parseValue("volume", "60.5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, ok := v.Get(); !ok || got != 60.5 {
		t.Errorf("expected 60.5, got %v", v)
	}

	if _, err := parseValue("temperature", "hot"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestResolvePlanFromPreset(t *testing.T) {
	cmd := newSweepCmd()
	if err := cmd.Flags().Parse([]string{"--preset", "mantle", "--steps", "5"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	defer func() { preset, steps = "", 0 }()

	plan, err := resolvePlan(cmd, []string{"isotherm"}, config.DefaultConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if plan.Kind != sweep.Isotherm || plan.Fixed != 2000 || plan.Steps != 5 {
		t.Errorf("unexpected plan %+v", plan)
	}
}

func TestLoadParamsOverrides(t *testing.T) {
	defer func() { overrides = nil }()
	cfg := config.DefaultConfig()

	overrides = []string{"k0=300", "k_prime = 5"}
	p, err := loadParams(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.K0 != 300 || p.KPrime != 5 {
		t.Errorf("overrides not applied: k0=%g k'=%g", p.K0, p.KPrime)
	}

	overrides = []string{"k0"}
	if _, err := loadParams(cfg); err == nil {
		t.Error("expected error for malformed override")
	}

	overrides = []string{"bogus=1"}
	if _, err := loadParams(cfg); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
