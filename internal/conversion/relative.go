package conversion

import (
	"fmt"
	"math"

	"github.com/alexisbeaulieu97/unitconv/internal/registry"
	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

// reference is one resolved context slot. value is nil when the caller did not supply it.
type reference struct {
	field string
	label string
	value *float64
}

// relativeRule resolves one relative unit: internal = display / per × reference.
type relativeRule struct {
	conversion string
	per        float64
	reference  func(ctx Context) (reference, error)
}

const percent = 100

var relativeRules = map[registry.ContextType]map[string]relativeRule{
	registry.ContextDimension: {
		"%":    {conversion: "percentage", per: percent, reference: percentageReference},
		"vw":   {conversion: "vw", per: percent, reference: containerWidthReference},
		"vh":   {conversion: "vh", per: percent, reference: containerHeightReference},
		"vmin": {conversion: "vmin", per: percent, reference: viewportExtremeReference(math.Min)},
		"vmax": {conversion: "vmax", per: percent, reference: viewportExtremeReference(math.Max)},
	},
	registry.ContextFont: {
		"em":  {conversion: "em", per: 1, reference: fontSizeReference},
		"rem": {conversion: "rem", per: 1, reference: rootFontSizeReference},
	},
	registry.ContextTemperature: {
		"%": {conversion: "percentage", per: percent, reference: temperatureReference},
	},
	registry.ContextVolume: {
		"%": {conversion: "percentage", per: percent, reference: volumeReference},
	},
}

// SupportsRelative reports whether symbol can be resolved against the given context type.
func SupportsRelative(ctxType registry.ContextType, symbol string) bool {
	_, ok := relativeRules[ctxType][symbol]
	return ok
}

func lookupRule(res registry.Resolution) (relativeRule, error) {
	rule, ok := relativeRules[res.Definition.ContextType][res.Definition.Symbol]
	if !ok {
		return relativeRule{}, fmt.Errorf("relative unit '%s' in system '%s' has no %s resolver", res.Definition.Symbol, res.SystemID, res.Definition.ContextType)
	}
	return rule, nil
}

func relativeToInternal(value float64, res registry.Resolution, ctx Context) (float64, error) {
	rule, err := lookupRule(res)
	if err != nil {
		return 0, err
	}

	ref, err := rule.reference(ctx)
	if err != nil {
		return 0, err
	}
	if ref.value == nil {
		return 0, missing(res, rule, ref)
	}

	return value / rule.per * *ref.value, nil
}

func relativeFromInternal(value float64, res registry.Resolution, ctx Context) (float64, error) {
	rule, err := lookupRule(res)
	if err != nil {
		return 0, err
	}

	ref, err := rule.reference(ctx)
	if err != nil {
		return 0, err
	}
	if ref.value == nil {
		return 0, missing(res, rule, ref)
	}
	if *ref.value == 0 {
		return 0, unitserrors.NewZeroReferenceError(res.SystemID, res.Definition.Symbol, ref.field, ref.label, rule.conversion)
	}

	return value / *ref.value * rule.per, nil
}

// relativeContextSatisfied reports whether resolution would find its reference.
func relativeContextSatisfied(res registry.Resolution, ctx Context) bool {
	rule, err := lookupRule(res)
	if err != nil {
		return false
	}
	ref, err := rule.reference(ctx)
	return err == nil && ref.value != nil
}

func missing(res registry.Resolution, rule relativeRule, ref reference) error {
	return unitserrors.NewMissingContextError(res.SystemID, res.Definition.Symbol, ref.field, ref.label, rule.conversion)
}

// percentageReference picks the percentage base from the axis. Without an axis the
// reference width is used when present, then the height.
func percentageReference(ctx Context) (reference, error) {
	dim, _ := asDimension(ctx)

	width := reference{field: "referenceWidth", label: "Reference width", value: dim.ReferenceWidth}
	height := reference{field: "referenceHeight", label: "Reference height", value: dim.ReferenceHeight}

	switch {
	case dim.Axis.Horizontal():
		return width, nil
	case dim.Axis.Vertical():
		return height, nil
	case dim.Axis != AxisNone:
		return reference{}, fmt.Errorf("unknown axis %q for percentage conversion", dim.Axis)
	}

	if width.value != nil {
		return width, nil
	}
	if height.value != nil {
		return height, nil
	}
	return reference{field: "referenceWidth", label: "Reference width or height"}, nil
}

func containerWidthReference(ctx Context) (reference, error) {
	dim, _ := asDimension(ctx)
	return reference{field: "containerWidth", label: "Container width", value: dim.ContainerWidth}, nil
}

func containerHeightReference(ctx Context) (reference, error) {
	dim, _ := asDimension(ctx)
	return reference{field: "containerHeight", label: "Container height", value: dim.ContainerHeight}, nil
}

func viewportExtremeReference(pick func(a, b float64) float64) func(Context) (reference, error) {
	return func(ctx Context) (reference, error) {
		width, _ := containerWidthReference(ctx)
		if width.value == nil {
			return width, nil
		}
		height, _ := containerHeightReference(ctx)
		if height.value == nil {
			return height, nil
		}
		return reference{
			field: "containerWidth",
			label: "Container width and height",
			value: Ref(pick(*width.value, *height.value)),
		}, nil
	}
}

func fontSizeReference(ctx Context) (reference, error) {
	font, _ := asFont(ctx)
	return reference{field: "fontSize", label: "Font size", value: font.FontSize}, nil
}

func rootFontSizeReference(ctx Context) (reference, error) {
	font, _ := asFont(ctx)
	return reference{field: "rootFontSize", label: "Root font size", value: font.RootFontSize}, nil
}

func temperatureReference(ctx Context) (reference, error) {
	ref := reference{field: "temperature", label: "Reference temperature"}
	if temp, ok := asTemperature(ctx); ok {
		ref.value = Ref(temp.Value)
	}
	return ref, nil
}

func volumeReference(ctx Context) (reference, error) {
	ref := reference{field: "volume", label: "Reference volume"}
	if vol, ok := asVolume(ctx); ok {
		ref.value = Ref(vol.Value)
	}
	return ref, nil
}
