package config

import (
	"github.com/alexisbeaulieu97/unitconv/internal/registry"
)

// Config represents the full unitconv configuration document.
type Config struct {
	Version  string       `yaml:"version" toml:"version" validate:"required,semver"`
	Logging  Logging      `yaml:"logging,omitempty" toml:"logging"`
	Defaults Defaults     `yaml:"defaults,omitempty" toml:"defaults"`
	Systems  []SystemSpec `yaml:"systems,omitempty" toml:"systems" validate:"omitempty,dive"`
}

// Logging configures the CLI logger.
type Logging struct {
	Level         string `yaml:"level,omitempty" toml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	HumanReadable *bool  `yaml:"human_readable,omitempty" toml:"human_readable"`
}

// Defaults selects the system and display unit used when a command does not name one.
type Defaults struct {
	System string `yaml:"system,omitempty" toml:"system" validate:"omitempty,system_id"`
	Unit   string `yaml:"unit,omitempty" toml:"unit"`
}

// SystemSpec declares a custom unit system registered at startup.
type SystemSpec struct {
	ID           string     `yaml:"id" toml:"id" validate:"required,system_id"`
	Name         string     `yaml:"name,omitempty" toml:"name" validate:"max=100"`
	InternalUnit string     `yaml:"internal_unit" toml:"internal_unit" validate:"required"`
	Units        []UnitSpec `yaml:"units" toml:"units" validate:"required,min=1,dive"`
}

// UnitSpec declares one unit of a custom system. Absolute units convert through
// internal = value × factor + offset; relative units name the context they need.
type UnitSpec struct {
	Symbol    string  `yaml:"symbol" toml:"symbol" validate:"required,max=16"`
	Name      string  `yaml:"name,omitempty" toml:"name" validate:"max=100"`
	Category  string  `yaml:"category,omitempty" toml:"category" validate:"omitempty,oneof=absolute relative temperature custom"`
	Precision *int    `yaml:"precision,omitempty" toml:"precision" validate:"omitempty,min=0,max=10"`
	Step      float64 `yaml:"step,omitempty" toml:"step" validate:"omitempty,gt=0"`
	Factor    float64 `yaml:"factor,omitempty" toml:"factor"`
	Offset    float64 `yaml:"offset,omitempty" toml:"offset"`
	Relative  bool    `yaml:"relative,omitempty" toml:"relative"`
	Context   string  `yaml:"context,omitempty" toml:"context" validate:"omitempty,context_type"`
}

const (
	defaultPrecision = 2
	defaultStep      = 0.1
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:  "1.0",
		Logging:  Logging{Level: "info"},
		Defaults: Defaults{System: registry.SystemLength},
	}
}

// HumanReadableLogs reports whether console formatting was requested, defaulting to true.
func (l Logging) HumanReadableLogs() bool {
	if l.HumanReadable == nil {
		return true
	}
	return *l.HumanReadable
}

// UnitSystems converts the declared systems into registry definitions.
func (c *Config) UnitSystems() []registry.UnitSystem {
	systems := make([]registry.UnitSystem, 0, len(c.Systems))
	for _, spec := range c.Systems {
		systems = append(systems, spec.UnitSystem())
	}
	return systems
}

// UnitSystem converts the declared system into a registry definition.
func (s SystemSpec) UnitSystem() registry.UnitSystem {
	sys := registry.UnitSystem{
		ID:           s.ID,
		Name:         s.Name,
		InternalUnit: s.InternalUnit,
		Units:        make([]registry.UnitDefinition, 0, len(s.Units)),
		Conversions:  make(map[string]registry.Conversion, len(s.Units)),
	}
	if sys.Name == "" {
		sys.Name = s.ID
	}

	for _, u := range s.Units {
		sys.Units = append(sys.Units, u.definition())
		if !u.Relative {
			sys.Conversions[u.Symbol] = registry.Affine(u.Factor, u.Offset)
		}
	}

	return sys
}

func (u UnitSpec) definition() registry.UnitDefinition {
	def := registry.UnitDefinition{
		Symbol:    u.Symbol,
		Name:      u.Name,
		Category:  registry.Category(u.Category),
		Precision: defaultPrecision,
		Step:      u.Step,
	}
	if def.Name == "" {
		def.Name = u.Symbol
	}
	if u.Precision != nil {
		def.Precision = *u.Precision
	}
	if def.Step == 0 {
		def.Step = defaultStep
	}

	if u.Relative {
		def.RequiresContext = true
		def.ContextType = registry.ContextType(u.Context)
		if def.Category == "" {
			def.Category = registry.CategoryRelative
		}
	} else if def.Category == "" {
		def.Category = registry.CategoryAbsolute
	}

	return def
}
