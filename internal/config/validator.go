package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/unitconv/internal/registry"
	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("system_id", func(fl validator.FieldLevel) bool {
			return registry.ValidateSystemID(fl.Field().String()) == nil
		})

		_ = v.RegisterValidation("context_type", func(fl validator.FieldLevel) bool {
			return registry.ContextType(fl.Field().String()).Valid()
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return unitserrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(cfg.Systems))
	for i, sys := range cfg.Systems {
		if prev, dup := seen[sys.ID]; dup {
			return unitserrors.NewValidationError(fieldForSystem(i, "id"), fmt.Sprintf("duplicate system id %q (also systems[%d])", sys.ID, prev), nil)
		}
		seen[sys.ID] = i

		if err := validateSystem(i, sys); err != nil {
			return err
		}
	}

	return nil
}

func validateSystem(index int, sys SystemSpec) error {
	symbols := make(map[string]struct{}, len(sys.Units))
	internalDeclared := false

	for j, unit := range sys.Units {
		if _, dup := symbols[unit.Symbol]; dup {
			return unitserrors.NewValidationError(fieldForUnit(index, j, "symbol"), fmt.Sprintf("duplicate unit symbol %q", unit.Symbol), nil)
		}
		symbols[unit.Symbol] = struct{}{}

		if err := validateUnit(index, j, unit); err != nil {
			return err
		}

		if unit.Symbol == sys.InternalUnit {
			if unit.Relative {
				return unitserrors.NewValidationError(fieldForSystem(index, "internal_unit"), fmt.Sprintf("internal unit %q cannot be relative", unit.Symbol), nil)
			}
			internalDeclared = true
		}
	}

	if !internalDeclared {
		return unitserrors.NewValidationError(fieldForSystem(index, "internal_unit"), fmt.Sprintf("internal unit %q is not declared in units", sys.InternalUnit), nil)
	}

	return nil
}

func validateUnit(sysIndex, unitIndex int, unit UnitSpec) error {
	if unit.Relative {
		if unit.Context == "" {
			return unitserrors.NewValidationError(fieldForUnit(sysIndex, unitIndex, "context"), "relative units require a context", nil)
		}
		if unit.Factor != 0 || unit.Offset != 0 {
			return unitserrors.NewValidationError(fieldForUnit(sysIndex, unitIndex, "factor"), "relative units cannot declare factor or offset", nil)
		}
		if unit.Category != "" && unit.Category != string(registry.CategoryRelative) && unit.Category != string(registry.CategoryCustom) {
			return unitserrors.NewValidationError(fieldForUnit(sysIndex, unitIndex, "category"), fmt.Sprintf("relative units cannot be %s", unit.Category), nil)
		}
		return nil
	}

	if unit.Context != "" {
		return unitserrors.NewValidationError(fieldForUnit(sysIndex, unitIndex, "context"), "context is only valid on relative units", nil)
	}
	if unit.Category == string(registry.CategoryRelative) {
		return unitserrors.NewValidationError(fieldForUnit(sysIndex, unitIndex, "category"), "category relative requires relative: true", nil)
	}
	if unit.Factor <= 0 {
		return unitserrors.NewValidationError(fieldForUnit(sysIndex, unitIndex, "factor"), "factor must be positive", nil)
	}

	return nil
}

// convertValidationError normalizes validator errors into validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return unitserrors.NewValidationError(field, msg, err)
	}

	return unitserrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForSystem(index int, field string) string {
	return fmt.Sprintf("systems[%d].%s", index, field)
}

func fieldForUnit(sysIndex, unitIndex int, field string) string {
	return fmt.Sprintf("systems[%d].units[%d].%s", sysIndex, unitIndex, field)
}
