// Package conversion translates values between each unit system's internal unit and
// its user-facing units, resolving relative units against caller-supplied context.
package conversion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/unitconv/internal/registry"
	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

// Fallbacks for metadata lookups of unknown units.
const (
	DefaultStep          = 0.1
	DefaultDecimalPlaces = 2
)

// Service is the single entry point for unit conversion. It never logs and never
// recovers: structural failures are returned to the caller, cosmetic lookups default.
type Service struct {
	registry *registry.Registry
}

// NewService wraps reg. A nil registry is replaced with the built-in systems.
func NewService(reg *registry.Registry) *Service {
	if reg == nil {
		reg = registry.NewDefault()
	}
	return &Service{registry: reg}
}

// Registry exposes the underlying registry.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// GetSystem returns a unit system by ID.
func (s *Service) GetSystem(id string) (registry.UnitSystem, bool) {
	return s.registry.Get(id)
}

// RegisterSystem adds a unit system at startup. Relative units must be ones the
// resolver knows how to handle for their context type.
func (s *Service) RegisterSystem(sys registry.UnitSystem) error {
	for i, def := range sys.Units {
		if def.RequiresContext && !SupportsRelative(def.ContextType, def.Symbol) {
			return unitserrors.NewValidationError(
				fmt.Sprintf("%s.units[%d]", sys.ID, i),
				fmt.Sprintf("relative unit %q is not supported for %s context", def.Symbol, def.ContextType),
				nil,
			)
		}
	}
	return s.registry.Register(sys)
}

// ToInternalUnit converts value expressed in unit into the system's internal unit.
func (s *Service) ToInternalUnit(value float64, unit, systemID string, ctx Context) (float64, error) {
	res, err := s.registry.Resolve(systemID, unit)
	if err != nil {
		return 0, err
	}

	if res.Definition.RequiresContext {
		return relativeToInternal(value, res, ctx)
	}
	return res.Conversion.Forward(value), nil
}

// FromInternalUnit converts value expressed in the system's internal unit into unit.
func (s *Service) FromInternalUnit(value float64, unit, systemID string, ctx Context) (float64, error) {
	res, err := s.registry.Resolve(systemID, unit)
	if err != nil {
		return 0, err
	}

	if res.Definition.RequiresContext {
		return relativeFromInternal(value, res, ctx)
	}
	return res.Conversion.Inverse(value), nil
}

// Convert routes value through the internal unit from fromUnit to toUnit.
func (s *Service) Convert(value float64, fromUnit, toUnit, systemID string, ctx Context) (float64, error) {
	internal, err := s.ToInternalUnit(value, fromUnit, systemID, ctx)
	if err != nil {
		return 0, err
	}
	return s.FromInternalUnit(internal, toUnit, systemID, ctx)
}

// GetStepValue returns the stepper increment for a unit, or DefaultStep.
func (s *Service) GetStepValue(unit, systemID string) float64 {
	def, ok := s.registry.Definition(systemID, unit)
	if !ok {
		return DefaultStep
	}
	return def.Step
}

// GetDecimalPlaces returns the display precision for a unit, or DefaultDecimalPlaces.
func (s *Service) GetDecimalPlaces(unit, systemID string) int {
	def, ok := s.registry.Definition(systemID, unit)
	if !ok {
		return DefaultDecimalPlaces
	}
	return def.Precision
}

// ValidateUnit reports whether unit exists in the system.
func (s *Service) ValidateUnit(systemID, unit string) bool {
	return s.registry.ValidateUnit(systemID, unit)
}

// GetAvailableUnits lists the system's unit symbols in declaration order.
func (s *Service) GetAvailableUnits(systemID string) []string {
	return s.registry.Units(systemID)
}

// RequiresContext reports whether unit resolves against a context. Unknown units do not.
func (s *Service) RequiresContext(unit, systemID string) bool {
	def, ok := s.registry.Definition(systemID, unit)
	return ok && def.RequiresContext
}

// ValidateContext reports whether ctx carries what unit needs, so a conversion with the
// same arguments will not fail for missing context. Units that need no context always
// pass; unknown units and systems do not.
func (s *Service) ValidateContext(unit, systemID string, ctx Context) bool {
	res, err := s.registry.Resolve(systemID, unit)
	if err != nil {
		return false
	}
	if !res.Definition.RequiresContext {
		return true
	}
	return relativeContextSatisfied(res, ctx)
}

// FormatValue renders value with the unit's precision, e.g. "12.50 cm", "45.0%" or
// "98.6°F".
func (s *Service) FormatValue(value float64, unit, systemID string) string {
	formatted := strconv.FormatFloat(value, 'f', s.GetDecimalPlaces(unit, systemID), 64)
	if strings.TrimLeft(formatted, "-0.") == "" {
		formatted = strings.TrimPrefix(formatted, "-")
	}

	if unit == "" {
		return formatted
	}
	if unit == "%" || strings.HasPrefix(unit, "°") {
		return formatted + unit
	}
	return formatted + " " + unit
}
