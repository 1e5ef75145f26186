package registry

import (
	"fmt"
	"regexp"
	"strings"

	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

const systemIDMaxLength = 64

var systemIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

// ValidateSystemID ensures the provided ID matches the allowed pattern.
func ValidateSystemID(id string) error {
	if id == "" {
		return fmt.Errorf("unit system ID cannot be empty")
	}

	if len(id) > systemIDMaxLength {
		return fmt.Errorf("unit system ID %q is too long: maximum length is %d characters", id, systemIDMaxLength)
	}

	if !systemIDPattern.MatchString(id) {
		return fmt.Errorf("invalid unit system ID %q: must match %s", id, systemIDPattern.String())
	}

	return nil
}

// ValidateSystem checks the structural invariants of a unit system definition:
// unique symbols, a declared internal unit, context metadata on every relative unit
// and an invertible conversion on every non-relative one.
func ValidateSystem(sys UnitSystem) error {
	if err := ValidateSystemID(sys.ID); err != nil {
		return unitserrors.NewValidationError("id", err.Error(), err)
	}
	if len(sys.Units) == 0 {
		return unitserrors.NewValidationError(sys.ID+".units", "at least one unit is required", nil)
	}

	seen := make(map[string]struct{}, len(sys.Units))
	for i, def := range sys.Units {
		field := fmt.Sprintf("%s.units[%d]", sys.ID, i)
		if strings.TrimSpace(def.Symbol) == "" {
			return unitserrors.NewValidationError(field, "symbol cannot be empty", nil)
		}
		if _, dup := seen[def.Symbol]; dup {
			return unitserrors.NewValidationError(field, fmt.Sprintf("duplicate unit symbol %q", def.Symbol), nil)
		}
		seen[def.Symbol] = struct{}{}

		if def.Precision < 0 {
			return unitserrors.NewValidationError(field, "precision cannot be negative", nil)
		}

		conv, hasConv := sys.Conversions[def.Symbol]
		switch {
		case def.RequiresContext:
			if !def.ContextType.Valid() {
				return unitserrors.NewValidationError(field, fmt.Sprintf("unit %q requires context but has no valid context type", def.Symbol), nil)
			}
			if def.Category != CategoryRelative && def.Category != CategoryCustom {
				return unitserrors.NewValidationError(field, fmt.Sprintf("unit %q requires context but is %s", def.Symbol, def.Category), nil)
			}
			if hasConv {
				return unitserrors.NewValidationError(field, fmt.Sprintf("relative unit %q must not declare a conversion", def.Symbol), nil)
			}
		case def.Category == CategoryRelative:
			return unitserrors.NewValidationError(field, fmt.Sprintf("relative unit %q must require context", def.Symbol), nil)
		default:
			if !hasConv || !conv.Valid() {
				return unitserrors.NewValidationError(field, fmt.Sprintf("unit %q has no invertible conversion", def.Symbol), nil)
			}
		}

		if def.Step <= 0 {
			return unitserrors.NewValidationError(field, fmt.Sprintf("unit %q must have a positive step", def.Symbol), nil)
		}
	}

	internal, ok := sys.Definition(sys.InternalUnit)
	if !ok {
		return unitserrors.NewValidationError(sys.ID+".internal_unit", fmt.Sprintf("internal unit %q is not declared", sys.InternalUnit), nil)
	}
	if internal.RequiresContext {
		return unitserrors.NewValidationError(sys.ID+".internal_unit", fmt.Sprintf("internal unit %q cannot be relative", sys.InternalUnit), nil)
	}

	return nil
}
