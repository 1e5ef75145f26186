// Package binding gives input widgets a conversion surface fixed to one unit system and
// its contexts. It holds no unit tables of its own; every number comes from the
// conversion service.
package binding

import (
	"github.com/alexisbeaulieu97/unitconv/internal/conversion"
	"github.com/alexisbeaulieu97/unitconv/internal/registry"
)

// Binding ties a conversion service to a system and the contexts of the widget using
// it. Each relative unit resolves against the bound context of its own kind.
type Binding struct {
	service  *conversion.Service
	systemID string
	ctx      conversion.Context
	contexts map[registry.ContextType]conversion.Context
}

// New creates a Binding for systemID. Nil contexts are skipped and a later context
// replaces an earlier one of the same kind. The first context is the primary one
// returned by Context.
func New(service *conversion.Service, systemID string, ctxs ...conversion.Context) *Binding {
	b := &Binding{
		service:  service,
		systemID: systemID,
		contexts: make(map[registry.ContextType]conversion.Context, len(ctxs)),
	}
	for _, ctx := range ctxs {
		if ctx == nil {
			continue
		}
		if b.ctx == nil {
			b.ctx = ctx
		}
		b.contexts[ctx.ContextType()] = ctx
	}
	return b
}

// NewLength creates a Binding on the length system, whose internal unit is centimeters.
func NewLength(service *conversion.Service, ctxs ...conversion.Context) *Binding {
	return New(service, registry.SystemLength, ctxs...)
}

// SystemID returns the bound system.
func (b *Binding) SystemID() string {
	return b.systemID
}

// Context returns the primary bound context, which may be nil.
func (b *Binding) Context() conversion.Context {
	return b.ctx
}

// ContextFor returns the context unit resolves against: the bound context of the unit's
// kind, else the primary context.
func (b *Binding) ContextFor(unit string) conversion.Context {
	def, ok := b.service.Registry().Definition(b.systemID, unit)
	if ok && def.RequiresContext {
		if ctx, found := b.contexts[def.ContextType]; found {
			return ctx
		}
	}
	return b.ctx
}

// WithContext derives a Binding that resolves relative units against ctx only.
func (b *Binding) WithContext(ctx conversion.Context) *Binding {
	return New(b.service, b.systemID, ctx)
}

// InternalUnit returns the bound system's internal unit, or "" if it is unknown.
func (b *Binding) InternalUnit() string {
	sys, ok := b.service.GetSystem(b.systemID)
	if !ok {
		return ""
	}
	return sys.InternalUnit
}

// ToInternal converts a display value in unit into the internal unit.
func (b *Binding) ToInternal(value float64, unit string) (float64, error) {
	return b.service.ToInternalUnit(value, unit, b.systemID, b.ContextFor(unit))
}

// FromInternal converts an internal value into unit for display.
func (b *Binding) FromInternal(value float64, unit string) (float64, error) {
	return b.service.FromInternalUnit(value, unit, b.systemID, b.ContextFor(unit))
}

// Convert converts between two display units of the bound system. Units needing
// different kinds of context are routed through the internal unit.
func (b *Binding) Convert(value float64, fromUnit, toUnit string) (float64, error) {
	fromCtx, toCtx := b.ContextFor(fromUnit), b.ContextFor(toUnit)
	if fromCtx == nil || toCtx == nil || fromCtx.ContextType() == toCtx.ContextType() {
		ctx := fromCtx
		if ctx == nil {
			ctx = toCtx
		}
		return b.service.Convert(value, fromUnit, toUnit, b.systemID, ctx)
	}

	internal, err := b.service.ToInternalUnit(value, fromUnit, b.systemID, fromCtx)
	if err != nil {
		return 0, err
	}
	return b.service.FromInternalUnit(internal, toUnit, b.systemID, toCtx)
}

// CmToDisplay converts centimeters into unit. It only makes sense on a length binding.
func (b *Binding) CmToDisplay(cm float64, unit string) (float64, error) {
	return b.FromInternal(cm, unit)
}

// DisplayToCm converts a display value in unit into centimeters. It only makes sense on
// a length binding.
func (b *Binding) DisplayToCm(value float64, unit string) (float64, error) {
	return b.ToInternal(value, unit)
}

// ValidateContext reports whether the bound contexts satisfy unit.
func (b *Binding) ValidateContext(unit string) bool {
	return b.service.ValidateContext(unit, b.systemID, b.ContextFor(unit))
}

// RequiresContext reports whether unit is relative.
func (b *Binding) RequiresContext(unit string) bool {
	return b.service.RequiresContext(unit, b.systemID)
}

// GetStepValue returns the stepper increment for unit.
func (b *Binding) GetStepValue(unit string) float64 {
	return b.service.GetStepValue(unit, b.systemID)
}

// GetDecimalPlaces returns the display precision for unit.
func (b *Binding) GetDecimalPlaces(unit string) int {
	return b.service.GetDecimalPlaces(unit, b.systemID)
}

// AvailableUnits lists the bound system's units in declaration order.
func (b *Binding) AvailableUnits() []string {
	return b.service.GetAvailableUnits(b.systemID)
}

// Format renders value, already expressed in unit, with the unit's precision.
func (b *Binding) Format(value float64, unit string) string {
	return b.service.FormatValue(value, unit, b.systemID)
}
