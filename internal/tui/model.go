package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/unitconv/internal/binding"
)

// FieldOption customises a Field at construction time.
type FieldOption func(*Field)

// WithOnError registers a callback receiving every conversion or input error.
func WithOnError(fn func(error)) FieldOption {
	return func(f *Field) {
		f.onError = fn
	}
}

// WithTitle sets the heading rendered above the input.
func WithTitle(title string) FieldOption {
	return func(f *Field) {
		f.title = title
	}
}

// Field is a unit-aware numeric input. It stores its value in the bound system's
// internal unit and shows it in the selected display unit.
type Field struct {
	binding   *binding.Binding
	input     textinput.Model
	units     []string
	unitIndex int
	internal  float64
	title     string
	err       error
	onError   func(error)
	quitting  bool
}

// NewField creates a Field holding internal (in the system's internal unit) displayed
// in unit. An unknown unit falls back to the first unit of the system.
func NewField(b *binding.Binding, unit string, internal float64, opts ...FieldOption) Field {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 32
	ti.Width = 20
	ti.PromptStyle = promptStyle
	ti.Focus()

	f := Field{
		binding:  b,
		input:    ti,
		units:    b.AvailableUnits(),
		internal: internal,
		title:    "Dimension",
	}
	for _, opt := range opts {
		opt(&f)
	}

	for i, u := range f.units {
		if u == unit {
			f.unitIndex = i
			break
		}
	}

	if err := f.refreshDisplay(); err != nil {
		f.report(err)
	}
	return f
}

// Init starts the cursor blinking.
func (f Field) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the committed value in the internal unit.
func (f Field) Value() float64 {
	return f.internal
}

// Unit returns the selected display unit.
func (f Field) Unit() string {
	if len(f.units) == 0 {
		return ""
	}
	return f.units[f.unitIndex]
}

// Err returns the most recent error, cleared by the next successful action.
func (f Field) Err() error {
	return f.err
}

// Quitting reports whether the user asked to leave.
func (f Field) Quitting() bool {
	return f.quitting
}

func (f *Field) report(err error) {
	f.err = err
	if err != nil && f.onError != nil {
		f.onError(err)
	}
}

// refreshDisplay rewrites the input text from the internal value in the current unit.
func (f *Field) refreshDisplay() error {
	unit := f.Unit()
	if unit == "" {
		return nil
	}
	display, err := f.binding.FromInternal(f.internal, unit)
	if err != nil {
		f.input.SetValue("")
		return err
	}
	f.input.SetValue(f.formatNumber(display, unit))
	return nil
}

func (f *Field) formatNumber(value float64, unit string) string {
	return strconv.FormatFloat(value, 'f', f.binding.GetDecimalPlaces(unit), 64)
}
