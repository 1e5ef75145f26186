package registry

// Category classifies how a unit relates to its system's internal unit.
type Category string

const (
	// CategoryAbsolute units convert through a fixed factor or context-free function.
	CategoryAbsolute Category = "absolute"
	// CategoryRelative units need caller-supplied reference context.
	CategoryRelative Category = "relative"
	// CategoryTemperature units convert through offset formulas, not just scale.
	CategoryTemperature Category = "temperature"
	// CategoryCustom units behave as relative when they require context and as absolute otherwise.
	CategoryCustom Category = "custom"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// ContextType names the slot of a conversion context that satisfies a relative unit.
type ContextType string

const (
	ContextNone        ContextType = ""
	ContextDimension   ContextType = "dimension"
	ContextFont        ContextType = "font"
	ContextTemperature ContextType = "temperature"
	ContextVolume      ContextType = "volume"
)

// String returns the string representation of the context type.
func (c ContextType) String() string {
	return string(c)
}

// Valid reports whether c is one of the known context slots.
func (c ContextType) Valid() bool {
	switch c {
	case ContextDimension, ContextFont, ContextTemperature, ContextVolume:
		return true
	default:
		return false
	}
}

// UnitDefinition describes one unit within a system.
type UnitDefinition struct {
	Symbol          string      `json:"symbol"`
	Name            string      `json:"name"`
	Category        Category    `json:"category"`
	RequiresContext bool        `json:"requires_context"`
	ContextType     ContextType `json:"context_type,omitempty"`
	Precision       int         `json:"precision"`
	Step            float64     `json:"step"`
}

// IsRelative reports whether the unit resolves against a context instead of a conversion.
func (d UnitDefinition) IsRelative() bool {
	return d.RequiresContext
}

// Conversion maps a unit to and from its system's internal unit. Linear units set only
// Factor (value × Factor = internal); non-linear units set both functions.
type Conversion struct {
	Factor       float64
	ToInternal   func(float64) float64
	FromInternal func(float64) float64
}

// Linear builds a conversion where one unit equals factor internal units.
func Linear(factor float64) Conversion {
	return Conversion{Factor: factor}
}

// Affine builds the invertible conversion internal = value × factor + offset.
func Affine(factor, offset float64) Conversion {
	if offset == 0 {
		return Linear(factor)
	}
	return Conversion{
		ToInternal:   func(v float64) float64 { return v*factor + offset },
		FromInternal: func(v float64) float64 { return (v - offset) / factor },
	}
}

// Pair builds a conversion from an explicit forward and inverse function.
func Pair(toInternal, fromInternal func(float64) float64) Conversion {
	return Conversion{ToInternal: toInternal, FromInternal: fromInternal}
}

// IsFunction reports whether the conversion uses an explicit function pair.
func (c Conversion) IsFunction() bool {
	return c.ToInternal != nil || c.FromInternal != nil
}

// Valid reports whether the conversion can be applied in both directions.
func (c Conversion) Valid() bool {
	if c.IsFunction() {
		return c.ToInternal != nil && c.FromInternal != nil
	}
	return c.Factor != 0
}

// Forward converts a value expressed in the unit into the internal unit.
func (c Conversion) Forward(value float64) float64 {
	if c.ToInternal != nil {
		return c.ToInternal(value)
	}
	return value * c.Factor
}

// Inverse converts a value expressed in the internal unit back into the unit.
func (c Conversion) Inverse(value float64) float64 {
	if c.FromInternal != nil {
		return c.FromInternal(value)
	}
	return value / c.Factor
}

// UnitSystem is a named collection of units sharing one internal representation.
type UnitSystem struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	InternalUnit string                `json:"internal_unit"`
	Units        []UnitDefinition      `json:"units"`
	Conversions  map[string]Conversion `json:"-"`
}

// Definition looks up a unit by exact symbol match.
func (s UnitSystem) Definition(symbol string) (UnitDefinition, bool) {
	for _, def := range s.Units {
		if def.Symbol == symbol {
			return def, true
		}
	}
	return UnitDefinition{}, false
}

// Symbols returns the unit symbols in declaration order.
func (s UnitSystem) Symbols() []string {
	symbols := make([]string, len(s.Units))
	for i, def := range s.Units {
		symbols[i] = def.Symbol
	}
	return symbols
}

func (s UnitSystem) clone() UnitSystem {
	out := s
	out.Units = make([]UnitDefinition, len(s.Units))
	copy(out.Units, s.Units)
	out.Conversions = make(map[string]Conversion, len(s.Conversions))
	for symbol, conv := range s.Conversions {
		out.Conversions[symbol] = conv
	}
	return out
}

// Resolution bundles what a conversion needs to know about one unit.
type Resolution struct {
	SystemID     string
	InternalUnit string
	Definition   UnitDefinition
	Conversion   Conversion
}
