package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/unitconv/internal/conversion"
	"github.com/alexisbeaulieu97/unitconv/internal/registry"
)

const (
	flagRefWidth        = "ref-width"
	flagRefHeight       = "ref-height"
	flagContainerWidth  = "container-width"
	flagContainerHeight = "container-height"
	flagFontSize        = "font-size"
	flagRootFontSize    = "root-font-size"
	flagRefVolume       = "reference-volume"
	flagRefTemperature  = "reference-temperature"
	flagAxis            = "axis"
)

var contextFlagsByKind = map[registry.ContextType][]string{
	registry.ContextDimension:   {flagRefWidth, flagRefHeight, flagContainerWidth, flagContainerHeight, flagAxis},
	registry.ContextFont:        {flagFontSize, flagRootFontSize},
	registry.ContextVolume:      {flagRefVolume},
	registry.ContextTemperature: {flagRefTemperature},
}

// flagForField maps the context field named by a MissingContextError to its flag.
var flagForField = map[string]string{
	"referenceWidth":  flagRefWidth,
	"referenceHeight": flagRefHeight,
	"containerWidth":  flagContainerWidth,
	"containerHeight": flagContainerHeight,
	"fontSize":        flagFontSize,
	"rootFontSize":    flagRootFontSize,
	"volume":          flagRefVolume,
	"temperature":     flagRefTemperature,
}

type contextFlags struct {
	refWidth        float64
	refHeight       float64
	containerWidth  float64
	containerHeight float64
	fontSize        float64
	rootFontSize    float64
	refVolume       float64
	refTemperature  float64
	axis            string
}

func (f *contextFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&f.refWidth, flagRefWidth, 0, "Reference width for percentage lengths, in the internal unit")
	flags.Float64Var(&f.refHeight, flagRefHeight, 0, "Reference height for percentage lengths, in the internal unit")
	flags.Float64Var(&f.containerWidth, flagContainerWidth, 0, "Container width for vw, vmin and vmax")
	flags.Float64Var(&f.containerHeight, flagContainerHeight, 0, "Container height for vh, vmin and vmax")
	flags.Float64Var(&f.fontSize, flagFontSize, 0, "Font size for em")
	flags.Float64Var(&f.rootFontSize, flagRootFontSize, 0, "Root font size for rem")
	flags.Float64Var(&f.refVolume, flagRefVolume, 0, "Reference volume for percentage volumes")
	flags.Float64Var(&f.refTemperature, flagRefTemperature, 0, "Reference temperature for percentage temperatures")
	flags.StringVar(&f.axis, flagAxis, "", "Axis a percentage measures against: width, height, x or y")
}

// anySet reports whether a flag belonging to kind was passed.
func (f *contextFlags) anySet(cmd *cobra.Command, kind registry.ContextType) bool {
	for _, name := range contextFlagsByKind[kind] {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// build assembles the context of the given kind from the flags that were passed.
// Unset scalars stay nil so the resolver can name what is missing.
func (f *contextFlags) build(cmd *cobra.Command, kind registry.ContextType) (conversion.Context, error) {
	switch kind {
	case registry.ContextDimension:
		axis, err := conversion.ParseAxis(f.axis)
		if err != nil {
			return nil, err
		}
		return conversion.DimensionContext{
			Axis:            axis,
			ReferenceWidth:  f.optional(cmd, flagRefWidth, f.refWidth),
			ReferenceHeight: f.optional(cmd, flagRefHeight, f.refHeight),
			ContainerWidth:  f.optional(cmd, flagContainerWidth, f.containerWidth),
			ContainerHeight: f.optional(cmd, flagContainerHeight, f.containerHeight),
		}, nil
	case registry.ContextFont:
		return conversion.FontContext{
			FontSize:     f.optional(cmd, flagFontSize, f.fontSize),
			RootFontSize: f.optional(cmd, flagRootFontSize, f.rootFontSize),
		}, nil
	case registry.ContextVolume:
		if !cmd.Flags().Changed(flagRefVolume) {
			return nil, nil
		}
		return conversion.VolumeContext{Value: f.refVolume}, nil
	case registry.ContextTemperature:
		if !cmd.Flags().Changed(flagRefTemperature) {
			return nil, nil
		}
		return conversion.TemperatureContext{Value: f.refTemperature}, nil
	default:
		return nil, nil
	}
}

// forUnit returns the context a unit needs, or nil for units that need none.
func (f *contextFlags) forUnit(cmd *cobra.Command, service *conversion.Service, systemID, unit string) (conversion.Context, error) {
	def, ok := service.Registry().Definition(systemID, unit)
	if !ok || !def.RequiresContext {
		return nil, nil
	}
	return f.build(cmd, def.ContextType)
}

// forSystem returns one context per kind used by the system: the kind unit needs, plus
// every kind for which a flag was passed. The context unit needs comes first.
func (f *contextFlags) forSystem(cmd *cobra.Command, service *conversion.Service, systemID, unit string) ([]conversion.Context, error) {
	var contexts []conversion.Context
	seen := make(map[registry.ContextType]bool)

	primary, err := f.forUnit(cmd, service, systemID, unit)
	if err != nil {
		return nil, err
	}
	if primary != nil {
		contexts = append(contexts, primary)
		seen[primary.ContextType()] = true
	}

	sys, ok := service.GetSystem(systemID)
	if !ok {
		return contexts, nil
	}
	for _, def := range sys.Units {
		kind := def.ContextType
		if !def.RequiresContext || seen[kind] || !f.anySet(cmd, kind) {
			continue
		}
		seen[kind] = true
		ctx, err := f.build(cmd, kind)
		if err != nil {
			return nil, err
		}
		if ctx != nil {
			contexts = append(contexts, ctx)
		}
	}
	return contexts, nil
}

func (f *contextFlags) optional(cmd *cobra.Command, name string, value float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return conversion.Ref(value)
}
