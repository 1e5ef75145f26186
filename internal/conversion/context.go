package conversion

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/unitconv/internal/registry"
)

// Context carries the reference quantities a relative unit resolves against. Each
// implementation corresponds to one registry.ContextType, so a font context handed to
// a dimension-relative unit is simply a missing reference.
type Context interface {
	ContextType() registry.ContextType
}

// Axis tags which reference dimension a percentage measures against.
type Axis string

const (
	// AxisNone keeps the legacy resolution: reference width when present, else height.
	AxisNone   Axis = ""
	AxisWidth  Axis = "width"
	AxisHeight Axis = "height"
	AxisX      Axis = "x"
	AxisY      Axis = "y"
)

// ParseAxis converts user input into an Axis. The empty string maps to AxisNone.
func ParseAxis(s string) (Axis, error) {
	switch axis := Axis(strings.ToLower(strings.TrimSpace(s))); axis {
	case AxisNone, AxisWidth, AxisHeight, AxisX, AxisY:
		return axis, nil
	default:
		return AxisNone, fmt.Errorf("unknown axis %q: expected width, height, x or y", s)
	}
}

// Horizontal reports whether the axis selects the width reference.
func (a Axis) Horizontal() bool {
	return a == AxisWidth || a == AxisX
}

// Vertical reports whether the axis selects the height reference.
func (a Axis) Vertical() bool {
	return a == AxisHeight || a == AxisY
}

// DimensionContext holds layout references for %, vw, vh, vmin and vmax. All values are
// expressed in the system's internal unit; nil means not supplied.
type DimensionContext struct {
	Axis            Axis
	ReferenceWidth  *float64
	ReferenceHeight *float64
	ContainerWidth  *float64
	ContainerHeight *float64
}

// ContextType implements Context.
func (DimensionContext) ContextType() registry.ContextType { return registry.ContextDimension }

// WithAxis returns a copy of the context tagged with axis.
func (c DimensionContext) WithAxis(axis Axis) DimensionContext {
	c.Axis = axis
	return c
}

// FontContext holds font sizes for em and rem, in the system's internal unit.
type FontContext struct {
	FontSize     *float64
	RootFontSize *float64
}

// ContextType implements Context.
func (FontContext) ContextType() registry.ContextType { return registry.ContextFont }

// TemperatureContext holds a reference temperature in the internal unit.
type TemperatureContext struct {
	Value float64
}

// ContextType implements Context.
func (TemperatureContext) ContextType() registry.ContextType { return registry.ContextTemperature }

// VolumeContext holds a reference volume in the internal unit.
type VolumeContext struct {
	Value float64
}

// ContextType implements Context.
func (VolumeContext) ContextType() registry.ContextType { return registry.ContextVolume }

// Ref returns a pointer to v for populating optional context fields.
func Ref(v float64) *float64 {
	return &v
}

func asDimension(ctx Context) (DimensionContext, bool) {
	switch c := ctx.(type) {
	case DimensionContext:
		return c, true
	case *DimensionContext:
		if c != nil {
			return *c, true
		}
	}
	return DimensionContext{}, false
}

func asFont(ctx Context) (FontContext, bool) {
	switch c := ctx.(type) {
	case FontContext:
		return c, true
	case *FontContext:
		if c != nil {
			return *c, true
		}
	}
	return FontContext{}, false
}

func asTemperature(ctx Context) (TemperatureContext, bool) {
	switch c := ctx.(type) {
	case TemperatureContext:
		return c, true
	case *TemperatureContext:
		if c != nil {
			return *c, true
		}
	}
	return TemperatureContext{}, false
}

func asVolume(ctx Context) (VolumeContext, bool) {
	switch c := ctx.(type) {
	case VolumeContext:
		return c, true
	case *VolumeContext:
		if c != nil {
			return *c, true
		}
	}
	return VolumeContext{}, false
}
