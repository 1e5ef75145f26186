package conversion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/unitconv/internal/registry"
	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(registry.NewDefault())
}

func TestAbsoluteRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	values := []float64{-250, -1, 0, 0.5, 1, 12.34, 100, 9999}

	for _, sys := range svc.Registry().List() {
		for _, def := range sys.Units {
			if def.RequiresContext {
				continue
			}
			sys, def := sys, def
			t.Run(sys.ID+"/"+def.Symbol, func(t *testing.T) {
				t.Parallel()
				tolerance := math.Pow(10, -float64(def.Precision)) / 2
				for _, v := range values {
					internal, err := svc.ToInternalUnit(v, def.Symbol, sys.ID, nil)
					require.NoError(t, err)
					back, err := svc.FromInternalUnit(internal, def.Symbol, sys.ID, nil)
					require.NoError(t, err)
					assert.InDelta(t, v, back, tolerance)
				}
			})
		}
	}
}

func TestKnownAbsoluteConversions(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	tests := []struct {
		name     string
		system   string
		unit     string
		value    float64
		internal float64
	}{
		{"inch", "length", "in", 1, 2.54},
		{"pixels per cm", "length", "px", 37.795275591, 1},
		{"points per cm", "length", "pt", 28.346456693, 1},
		{"millimeter", "length", "mm", 25, 2.5},
		{"fluid ounce", "volume", "fl oz", 1, 29.5735},
		{"liter", "volume", "l", 1.5, 1500},
		{"pound", "weight", "lb", 1, 453.592},
		{"kilogram", "weight", "kg", 2, 2000},
		{"calorie", "energy", "cal", 1, 4.184},
		{"kilowatt-hour", "energy", "kWh", 1, 3.6e6},
		{"kelvin", "temperature", "K", 0, -273.15},
		{"boiling", "temperature", "°F", 212, 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.ToInternalUnit(tt.value, tt.unit, tt.system, nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.internal, got, 1e-6)
		})
	}
}

func TestTemperatureInversion(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	f, err := svc.FromInternalUnit(0, "°F", "temperature", nil)
	require.NoError(t, err)
	assert.Equal(t, 32.0, f)

	c, err := svc.ToInternalUnit(32, "°F", "temperature", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c)

	k, err := svc.Convert(98.6, "°F", "K", "temperature", nil)
	require.NoError(t, err)
	assert.InDelta(t, 310.15, k, 1e-9)
}

func TestPaperLayoutPercentages(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	paper := DimensionContext{ReferenceWidth: Ref(27.7), ReferenceHeight: Ref(19.0)}

	width, err := svc.ToInternalUnit(100, "%", "length", paper.WithAxis(AxisWidth))
	require.NoError(t, err)
	assert.InDelta(t, 27.7, width, 1e-9)

	height, err := svc.ToInternalUnit(100, "%", "length", paper.WithAxis(AxisHeight))
	require.NoError(t, err)
	assert.InDelta(t, 19.0, height, 1e-9)
}

func TestAxisSelectsPercentageReference(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	paper := DimensionContext{ReferenceWidth: Ref(27.7), ReferenceHeight: Ref(19.0)}

	pctHeight, err := svc.FromInternalUnit(19.0, "%", "length", paper.WithAxis(AxisHeight))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pctHeight, 0.01)

	back, err := svc.ToInternalUnit(pctHeight, "%", "length", paper.WithAxis(AxisHeight))
	require.NoError(t, err)
	assert.InDelta(t, 19.0, back, 0.01)

	pctWidth, err := svc.FromInternalUnit(19.0, "%", "length", paper.WithAxis(AxisWidth))
	require.NoError(t, err)
	assert.InDelta(t, 68.59, pctWidth, 0.01)

	assert.NotEqual(t, pctHeight, pctWidth)
}

func TestAxisAliases(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	paper := DimensionContext{ReferenceWidth: Ref(27.7), ReferenceHeight: Ref(19.0)}

	x, err := svc.ToInternalUnit(50, "%", "length", paper.WithAxis(AxisX))
	require.NoError(t, err)
	w, err := svc.ToInternalUnit(50, "%", "length", paper.WithAxis(AxisWidth))
	require.NoError(t, err)
	assert.Equal(t, w, x)

	y, err := svc.ToInternalUnit(50, "%", "length", paper.WithAxis(AxisY))
	require.NoError(t, err)
	assert.InDelta(t, 9.5, y, 1e-9)
}

func TestPercentageRoundTripOutOfRange(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := DimensionContext{Axis: AxisHeight, ReferenceWidth: Ref(27.7), ReferenceHeight: Ref(19.0)}

	for _, pct := range []float64{-10, 0, 33.3, 100, 120, 250.5} {
		internal, err := svc.ToInternalUnit(pct, "%", "length", ctx)
		require.NoError(t, err)
		assert.InDelta(t, pct/100*19.0, internal, 1e-9)

		back, err := svc.FromInternalUnit(internal, "%", "length", ctx)
		require.NoError(t, err)
		assert.InDelta(t, pct, back, 0.01)
	}
}

func TestMissingHeightReference(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.ToInternalUnit(100, "%", "length", DimensionContext{ReferenceWidth: Ref(27.7), Axis: AxisHeight})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "height")

	var missing *unitserrors.MissingContextError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "referenceHeight", missing.Field)
	assert.Equal(t, "Reference height required for percentage conversion", err.Error())
}

func TestMissingWidthReference(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.FromInternalUnit(10, "%", "length", DimensionContext{ReferenceHeight: Ref(19.0), Axis: AxisWidth})
	require.Error(t, err)
	assert.Equal(t, "Reference width required for percentage conversion", err.Error())
}

func TestNoAxisDefaultsToWidth(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := DimensionContext{ReferenceWidth: Ref(27.7), ReferenceHeight: Ref(19.0)}

	implicit, err := svc.FromInternalUnit(12.5, "%", "length", ctx)
	require.NoError(t, err)
	explicit, err := svc.FromInternalUnit(12.5, "%", "length", ctx.WithAxis(AxisWidth))
	require.NoError(t, err)
	assert.Equal(t, explicit, implicit)
}

func TestNoAxisFallsBackToHeightWhenWidthAbsent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	got, err := svc.ToInternalUnit(100, "%", "length", DimensionContext{ReferenceHeight: Ref(19.0)})
	require.NoError(t, err)
	assert.InDelta(t, 19.0, got, 1e-9)

	assert.True(t, svc.ValidateContext("%", "length", DimensionContext{ReferenceHeight: Ref(19.0)}))
}

func TestNoAxisWithoutReferences(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.ToInternalUnit(100, "%", "length", nil)
	require.Error(t, err)
	var missing *unitserrors.MissingContextError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), "Reference width")
}

func TestUnknownAxisRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.ToInternalUnit(100, "%", "length", DimensionContext{Axis: Axis("z"), ReferenceWidth: Ref(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown axis")
}

func TestZeroReferenceFromInternal(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := DimensionContext{Axis: AxisWidth, ReferenceWidth: Ref(0)}

	internal, err := svc.ToInternalUnit(50, "%", "length", ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, internal)

	_, err = svc.FromInternalUnit(5, "%", "length", ctx)
	var zero *unitserrors.ZeroReferenceError
	require.ErrorAs(t, err, &zero)
	assert.Equal(t, "Reference width must be non-zero for percentage conversion", err.Error())
}

func TestViewportAndFontUnits(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	viewport := DimensionContext{ContainerWidth: Ref(40), ContainerHeight: Ref(30)}
	font := FontContext{FontSize: Ref(0.5), RootFontSize: Ref(0.4)}

	tests := []struct {
		unit     string
		ctx      Context
		display  float64
		internal float64
	}{
		{"vw", viewport, 50, 20},
		{"vh", viewport, 50, 15},
		{"vmin", viewport, 10, 3},
		{"vmax", viewport, 10, 4},
		{"em", font, 2, 1},
		{"rem", font, 2, 0.8},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.unit, func(t *testing.T) {
			t.Parallel()
			got, err := svc.ToInternalUnit(tt.display, tt.unit, "length", tt.ctx)
			require.NoError(t, err)
			assert.InDelta(t, tt.internal, got, 1e-9)

			back, err := svc.FromInternalUnit(got, tt.unit, "length", tt.ctx)
			require.NoError(t, err)
			assert.InDelta(t, tt.display, back, 1e-9)
		})
	}
}

func TestRelativeUnitMissingContextMessages(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	tests := []struct {
		unit    string
		system  string
		ctx     Context
		message string
	}{
		{"vw", "length", DimensionContext{ContainerHeight: Ref(1)}, "Container width required for vw conversion"},
		{"vh", "length", DimensionContext{ContainerWidth: Ref(1)}, "Container height required for vh conversion"},
		{"vmin", "length", DimensionContext{ContainerWidth: Ref(1)}, "Container height required for vmin conversion"},
		{"em", "length", FontContext{RootFontSize: Ref(1)}, "Font size required for em conversion"},
		{"rem", "length", FontContext{FontSize: Ref(1)}, "Root font size required for rem conversion"},
		{"em", "length", DimensionContext{ReferenceWidth: Ref(1)}, "Font size required for em conversion"},
		{"%", "volume", nil, "Reference volume required for percentage conversion"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.system+"/"+tt.unit, func(t *testing.T) {
			t.Parallel()
			_, err := svc.ToInternalUnit(1, tt.unit, tt.system, tt.ctx)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestVolumePercentage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := VolumeContext{Value: 750}

	got, err := svc.ToInternalUnit(20, "%", "volume", ctx)
	require.NoError(t, err)
	assert.InDelta(t, 150, got, 1e-9)

	pct, err := svc.Convert(1, "cup", "%", "volume", &ctx)
	require.NoError(t, err)
	assert.InDelta(t, 236.588/750*100, pct, 1e-9)
}

func TestUnknownSystemAndUnit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, ok := svc.Registry().Definition("bogus-system", "cm")
	assert.False(t, ok)

	_, err := svc.ToInternalUnit(1, "cm", "bogus-system", nil)
	require.Error(t, err)
	assert.Equal(t, "Unit system 'bogus-system' not found", err.Error())

	_, err = svc.FromInternalUnit(1, "furlong", "length", nil)
	require.Error(t, err)
	assert.Equal(t, "Unit 'furlong' not found in system 'length'", err.Error())

	_, err = svc.Convert(1, "cm", "furlong", "length", nil)
	var unitErr *unitserrors.UnitNotFoundError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, "furlong", unitErr.Unit)
}

func TestConvertBetweenUnits(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	got, err := svc.Convert(1, "in", "px", "length", nil)
	require.NoError(t, err)
	assert.InDelta(t, 96, got, 1e-9)

	got, err = svc.Convert(72, "pt", "in", "length", nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, got, 1e-9)

	ctx := DimensionContext{Axis: AxisWidth, ReferenceWidth: Ref(27.7)}
	got, err = svc.Convert(50, "%", "mm", "length", ctx)
	require.NoError(t, err)
	assert.InDelta(t, 138.5, got, 1e-9)
}

func TestMetadataFallbacks(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	assert.Equal(t, 0.125, svc.GetStepValue("in", "length"))
	assert.Equal(t, 3, svc.GetDecimalPlaces("in", "length"))
	assert.Equal(t, DefaultStep, svc.GetStepValue("furlong", "length"))
	assert.Equal(t, DefaultDecimalPlaces, svc.GetDecimalPlaces("cm", "bogus-system"))
}

func TestQueries(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	assert.True(t, svc.ValidateUnit("energy", "kWh"))
	assert.False(t, svc.ValidateUnit("energy", "cm"))
	assert.Equal(t, []string{"J", "kJ", "cal", "kcal", "Wh", "kWh"}, svc.GetAvailableUnits("energy"))
	assert.Nil(t, svc.GetAvailableUnits("bogus"))

	assert.True(t, svc.RequiresContext("%", "length"))
	assert.False(t, svc.RequiresContext("cm", "length"))
	assert.False(t, svc.RequiresContext("%", "bogus"))

	sys, ok := svc.GetSystem("weight")
	require.True(t, ok)
	assert.Equal(t, "g", sys.InternalUnit)
}

func TestValidateContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	assert.True(t, svc.ValidateContext("cm", "length", nil))
	assert.False(t, svc.ValidateContext("%", "length", nil))
	assert.True(t, svc.ValidateContext("%", "length", DimensionContext{ReferenceWidth: Ref(10)}))
	assert.False(t, svc.ValidateContext("%", "length", DimensionContext{ReferenceWidth: Ref(10), Axis: AxisHeight}))
	assert.False(t, svc.ValidateContext("%", "length", FontContext{FontSize: Ref(1)}))
	assert.True(t, svc.ValidateContext("em", "length", &FontContext{FontSize: Ref(1)}))
	assert.False(t, svc.ValidateContext("vw", "length", DimensionContext{ReferenceWidth: Ref(10)}))
	assert.True(t, svc.ValidateContext("%", "volume", VolumeContext{Value: 1}))
	assert.False(t, svc.ValidateContext("cm", "bogus", nil))
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	assert.Equal(t, "12.50 cm", svc.FormatValue(12.5, "cm", "length"))
	assert.Equal(t, "45.0%", svc.FormatValue(45, "%", "length"))
	assert.Equal(t, "98.6°F", svc.FormatValue(98.6, "°F", "temperature"))
	assert.Equal(t, "38 px", svc.FormatValue(37.795, "px", "length"))
	assert.Equal(t, "0.00 cm", svc.FormatValue(-0.0001, "cm", "length"))
	assert.Equal(t, "1.23 furlong", svc.FormatValue(1.234, "furlong", "length"))
}

func TestRegisterSystemRejectsUnsupportedRelativeUnit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	err := svc.RegisterSystem(registry.UnitSystem{
		ID:           "layout",
		InternalUnit: "pt",
		Units: []registry.UnitDefinition{
			{Symbol: "pt", Name: "Points", Category: registry.CategoryAbsolute, Precision: 1, Step: 1},
			{Symbol: "ch", Name: "Character", Category: registry.CategoryRelative, RequiresContext: true, ContextType: registry.ContextFont, Step: 0.1},
		},
		Conversions: map[string]registry.Conversion{"pt": registry.Linear(1)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `relative unit "ch" is not supported`)
}

func TestRegisterSystemExtendsService(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	err := svc.RegisterSystem(registry.UnitSystem{
		ID:           "typography",
		InternalUnit: "pt",
		Units: []registry.UnitDefinition{
			{Symbol: "pt", Name: "Points", Category: registry.CategoryAbsolute, Precision: 1, Step: 0.5},
			{Symbol: "pica", Name: "Picas", Category: registry.CategoryAbsolute, Precision: 2, Step: 0.1},
			{Symbol: "%", Name: "Percent", Category: registry.CategoryCustom, RequiresContext: true, ContextType: registry.ContextDimension, Step: 1},
		},
		Conversions: map[string]registry.Conversion{"pt": registry.Linear(1), "pica": registry.Linear(12)},
	})
	require.NoError(t, err)

	got, err := svc.Convert(2, "pica", "%", "typography", DimensionContext{Axis: AxisHeight, ReferenceHeight: Ref(48)})
	require.NoError(t, err)
	assert.InDelta(t, 50, got, 1e-9)
}

func TestParseAxis(t *testing.T) {
	t.Parallel()

	axis, err := ParseAxis(" Height ")
	require.NoError(t, err)
	assert.Equal(t, AxisHeight, axis)

	axis, err = ParseAxis("")
	require.NoError(t, err)
	assert.Equal(t, AxisNone, axis)

	_, err = ParseAxis("depth")
	require.Error(t, err)
}
