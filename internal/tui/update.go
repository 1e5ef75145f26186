package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates field state.
func (f Field) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			f.quitting = true
			return f, tea.Quit
		case tea.KeyEnter:
			f.commit()
			return f, nil
		case tea.KeyTab:
			f.switchUnit(1)
			return f, nil
		case tea.KeyShiftTab:
			f.switchUnit(-1)
			return f, nil
		case tea.KeyUp:
			f.stepBy(1)
			return f, nil
		case tea.KeyDown:
			f.stepBy(-1)
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// commit parses the typed value in the current unit and stores it internally.
func (f *Field) commit() {
	display, err := f.parseInput()
	if err != nil {
		f.report(err)
		return
	}
	f.store(display)
}

func (f *Field) store(display float64) {
	unit := f.Unit()
	internal, err := f.binding.ToInternal(display, unit)
	if err != nil {
		f.report(err)
		return
	}
	f.internal = internal
	f.report(f.refreshDisplay())
}

// switchUnit moves the display unit by delta, keeping the internal value. Units whose
// context is unavailable are skipped.
func (f *Field) switchUnit(delta int) {
	n := len(f.units)
	if n == 0 {
		return
	}

	next := f.unitIndex
	for i := 0; i < n-1; i++ {
		next = (next + delta + n) % n
		if f.binding.ValidateContext(f.units[next]) {
			break
		}
	}
	if next == f.unitIndex || !f.binding.ValidateContext(f.units[next]) {
		return
	}

	previous := f.unitIndex
	f.unitIndex = next
	if err := f.refreshDisplay(); err != nil {
		f.unitIndex = previous
		// The previous unit rendered the same internal value a moment ago.
		_ = f.refreshDisplay()
		f.report(err)
		return
	}
	f.report(nil)
}

// stepBy nudges the displayed value by the unit's step size and commits it.
func (f *Field) stepBy(direction float64) {
	display, err := f.parseInput()
	if err != nil {
		f.report(err)
		return
	}
	f.store(display + direction*f.binding.GetStepValue(f.Unit()))
}

func (f *Field) parseInput() (float64, error) {
	text := strings.TrimSpace(f.input.Value())
	if text == "" {
		return 0, fmt.Errorf("enter a number")
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	return value, nil
}
