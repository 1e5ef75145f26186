package registry

// Built-in system identifiers.
const (
	SystemLength      = "length"
	SystemTemperature = "temperature"
	SystemVolume      = "volume"
	SystemWeight      = "weight"
	SystemEnergy      = "energy"
)

// Screen and print resolutions used by the px and pt factors.
const (
	CentimetersPerInch = 2.54
	PixelsPerInch      = 96
	PointsPerInch      = 72
)

// Builtin returns fresh copies of the five built-in unit systems.
func Builtin() []UnitSystem {
	return []UnitSystem{
		lengthSystem(),
		temperatureSystem(),
		volumeSystem(),
		weightSystem(),
		energySystem(),
	}
}

func absolute(symbol, name string, precision int, step float64) UnitDefinition {
	return UnitDefinition{Symbol: symbol, Name: name, Category: CategoryAbsolute, Precision: precision, Step: step}
}

func relative(symbol, name string, ctx ContextType, precision int, step float64) UnitDefinition {
	return UnitDefinition{
		Symbol:          symbol,
		Name:            name,
		Category:        CategoryRelative,
		RequiresContext: true,
		ContextType:     ctx,
		Precision:       precision,
		Step:            step,
	}
}

func temperature(symbol, name string, precision int, step float64) UnitDefinition {
	return UnitDefinition{Symbol: symbol, Name: name, Category: CategoryTemperature, Precision: precision, Step: step}
}

func lengthSystem() UnitSystem {
	return UnitSystem{
		ID:           SystemLength,
		Name:         "Length",
		InternalUnit: "cm",
		Units: []UnitDefinition{
			absolute("cm", "Centimeters", 2, 0.1),
			absolute("mm", "Millimeters", 1, 1),
			absolute("m", "Meters", 4, 0.01),
			absolute("in", "Inches", 3, 0.125),
			absolute("ft", "Feet", 3, 0.1),
			absolute("px", "Pixels", 0, 1),
			absolute("pt", "Points", 1, 0.5),
			relative("%", "Percent", ContextDimension, 1, 1),
			relative("vw", "Viewport Width", ContextDimension, 2, 1),
			relative("vh", "Viewport Height", ContextDimension, 2, 1),
			relative("vmin", "Viewport Minimum", ContextDimension, 2, 1),
			relative("vmax", "Viewport Maximum", ContextDimension, 2, 1),
			relative("em", "Em", ContextFont, 2, 0.1),
			relative("rem", "Root Em", ContextFont, 2, 0.1),
		},
		Conversions: map[string]Conversion{
			"cm": Linear(1),
			"mm": Linear(0.1),
			"m":  Linear(100),
			"in": Linear(CentimetersPerInch),
			"ft": Linear(CentimetersPerInch * 12),
			// 1 cm = 37.795275591 px
			"px": Linear(CentimetersPerInch / PixelsPerInch),
			// 1 cm = 28.346456693 pt
			"pt": Linear(CentimetersPerInch / PointsPerInch),
		},
	}
}

func temperatureSystem() UnitSystem {
	return UnitSystem{
		ID:           SystemTemperature,
		Name:         "Temperature",
		InternalUnit: "°C",
		Units: []UnitDefinition{
			temperature("°C", "Celsius", 1, 0.1),
			temperature("°F", "Fahrenheit", 1, 0.1),
			temperature("K", "Kelvin", 2, 0.1),
		},
		Conversions: map[string]Conversion{
			"°C": Linear(1),
			"°F": Pair(
				func(f float64) float64 { return (f - 32) * 5 / 9 },
				func(c float64) float64 { return c*9/5 + 32 },
			),
			"K": Pair(
				func(k float64) float64 { return k - 273.15 },
				func(c float64) float64 { return c + 273.15 },
			),
		},
	}
}

func volumeSystem() UnitSystem {
	return UnitSystem{
		ID:           SystemVolume,
		Name:         "Volume",
		InternalUnit: "ml",
		Units: []UnitDefinition{
			absolute("ml", "Milliliters", 0, 1),
			absolute("l", "Liters", 3, 0.1),
			absolute("tsp", "Teaspoons", 2, 0.25),
			absolute("tbsp", "Tablespoons", 2, 0.5),
			absolute("fl oz", "Fluid Ounces", 2, 0.5),
			absolute("cup", "Cups", 2, 0.25),
			absolute("gal", "Gallons", 3, 0.1),
			relative("%", "Percent of Volume", ContextVolume, 1, 1),
		},
		Conversions: map[string]Conversion{
			"ml":    Linear(1),
			"l":     Linear(1000),
			"tsp":   Linear(4.92892),
			"tbsp":  Linear(14.7868),
			"fl oz": Linear(29.5735),
			"cup":   Linear(236.588),
			"gal":   Linear(3785.41),
		},
	}
}

func weightSystem() UnitSystem {
	return UnitSystem{
		ID:           SystemWeight,
		Name:         "Weight",
		InternalUnit: "g",
		Units: []UnitDefinition{
			absolute("g", "Grams", 1, 1),
			absolute("mg", "Milligrams", 0, 1),
			absolute("kg", "Kilograms", 3, 0.1),
			absolute("oz", "Ounces", 2, 0.1),
			absolute("lb", "Pounds", 3, 0.1),
		},
		Conversions: map[string]Conversion{
			"g":  Linear(1),
			"mg": Linear(0.001),
			"kg": Linear(1000),
			"oz": Linear(28.3495),
			"lb": Linear(453.592),
		},
	}
}

func energySystem() UnitSystem {
	return UnitSystem{
		ID:           SystemEnergy,
		Name:         "Energy",
		InternalUnit: "J",
		Units: []UnitDefinition{
			absolute("J", "Joules", 1, 1),
			absolute("kJ", "Kilojoules", 3, 0.1),
			absolute("cal", "Calories", 1, 1),
			absolute("kcal", "Kilocalories", 3, 0.1),
			absolute("Wh", "Watt-hours", 3, 0.1),
			absolute("kWh", "Kilowatt-hours", 4, 0.01),
		},
		Conversions: map[string]Conversion{
			"J":    Linear(1),
			"kJ":   Linear(1000),
			"cal":  Linear(4.184),
			"kcal": Linear(4184),
			"Wh":   Linear(3600),
			"kWh":  Linear(3.6e6),
		},
	}
}
