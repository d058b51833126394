package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/resetwatch/internal/tracker"
	"github.com/Veraticus/resetwatch/internal/tui/themes"
)

type formMode int

const (
	formAdd formMode = iota
	formUpdate
)

type fieldID int

const (
	fieldName fieldID = iota
	fieldZone
	fieldCouncil
	fieldDays
	fieldHours
	fieldMinutes
	fieldCategories
	fieldCustom
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldName:       "Name",
	fieldZone:       "Zone",
	fieldCouncil:    "Council (K)",
	fieldDays:       "Days",
	fieldHours:      "Hours",
	fieldMinutes:    "Minutes",
	fieldCategories: "Categories",
	fieldCustom:     "Custom",
}

// vendorForm collects add and update input. The categories row has no text
// input; while it is focused, digit keys toggle palette entries.
type vendorForm struct {
	selected map[string]bool
	err      error
	target   string
	zone     string
	inputs   []textinput.Model
	fields   []fieldID
	palette  []string
	mode     formMode
	focus    int
	override bool
}

func newInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 30
		switch fieldID(i) {
		case fieldCouncil:
			ti.CharLimit = 12
			ti.Placeholder = "0"
		case fieldDays, fieldHours, fieldMinutes:
			ti.CharLimit = 5
			ti.Placeholder = "0"
		case fieldCustom:
			ti.Placeholder = "comma separated"
		}
		inputs[i] = ti
	}
	return inputs
}

func newAddForm(palette []string) vendorForm {
	f := vendorForm{
		mode:     formAdd,
		inputs:   newInputs(),
		palette:  palette,
		selected: make(map[string]bool),
		fields: []fieldID{
			fieldName, fieldZone, fieldCouncil, fieldDays,
			fieldHours, fieldMinutes, fieldCategories, fieldCustom,
		},
	}
	f.setFocus(0)
	return f
}

func newUpdateForm(name, zone string, in tracker.UpdateInput, palette []string) vendorForm {
	f := vendorForm{
		mode:     formUpdate,
		target:   name,
		zone:     zone,
		inputs:   newInputs(),
		palette:  palette,
		selected: make(map[string]bool),
		fields: []fieldID{
			fieldCouncil, fieldDays, fieldHours,
			fieldMinutes, fieldCategories, fieldCustom,
		},
	}
	f.inputs[fieldCouncil].SetValue(in.Council)
	f.inputs[fieldDays].SetValue(in.Days)
	f.inputs[fieldHours].SetValue(in.Hours)
	f.inputs[fieldMinutes].SetValue(in.Minutes)
	f.inputs[fieldCustom].SetValue(in.Custom)
	for _, c := range in.Categories {
		f.selected[c] = true
	}
	f.override = in.Override
	f.setFocus(0)
	return f
}

func (f *vendorForm) focused() fieldID {
	return f.fields[f.focus]
}

func (f *vendorForm) setFocus(i int) tea.Cmd {
	n := len(f.fields)
	f.focus = ((i % n) + n) % n
	for id := range f.inputs {
		f.inputs[id].Blur()
	}
	if id := f.focused(); id != fieldCategories {
		return f.inputs[id].Focus()
	}
	return nil
}

// toggle flips the palette entry for a 1-based digit key.
func (f *vendorForm) toggle(r rune) {
	i := int(r - '1')
	if i < 0 || i >= len(f.palette) {
		return
	}
	name := f.palette[i]
	f.selected[name] = !f.selected[name]
}

func (f vendorForm) update(msg tea.KeyMsg, keys FormKeyMap) (vendorForm, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NextField):
		return f, f.setFocus(f.focus + 1)
	case key.Matches(msg, keys.PrevField):
		return f, f.setFocus(f.focus - 1)
	case key.Matches(msg, keys.ToggleOverride):
		f.override = !f.override
		return f, nil
	}

	id := f.focused()
	if id == fieldCategories {
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				f.toggle(r)
			}
		}
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[id], cmd = f.inputs[id].Update(msg)
	return f, cmd
}

func (f vendorForm) value(id fieldID) string {
	return f.inputs[id].Value()
}

// categories returns the toggled palette entries in palette order.
func (f vendorForm) categories() []string {
	var out []string
	for _, c := range f.palette {
		if f.selected[c] {
			out = append(out, c)
		}
	}
	return out
}

func (f vendorForm) vendorInput() tracker.VendorInput {
	return tracker.VendorInput{
		Name:       f.value(fieldName),
		Zone:       f.value(fieldZone),
		Council:    f.value(fieldCouncil),
		Days:       f.value(fieldDays),
		Hours:      f.value(fieldHours),
		Minutes:    f.value(fieldMinutes),
		Custom:     f.value(fieldCustom),
		Categories: f.categories(),
		Override:   f.override,
	}
}

func (f vendorForm) updateInput() tracker.UpdateInput {
	return tracker.UpdateInput{
		Council:    f.value(fieldCouncil),
		Days:       f.value(fieldDays),
		Hours:      f.value(fieldHours),
		Minutes:    f.value(fieldMinutes),
		Custom:     f.value(fieldCustom),
		Categories: f.categories(),
		Override:   f.override,
	}
}

func (f vendorForm) view(theme themes.Theme) string {
	title := "Add Vendor"
	if f.mode == formUpdate {
		title = "Update " + f.target
	}

	lines := []string{theme.Title.Render(title)}
	if f.mode == formUpdate && f.zone != "" {
		lines = append(lines, theme.Subtitle.Render(f.zone))
	}
	lines = append(lines, "")

	for i, id := range f.fields {
		label := fmt.Sprintf("%-12s", fieldLabels[id])
		if i == f.focus {
			label = theme.Selected.Render(label)
		} else {
			label = theme.Subtitle.Render(label)
		}

		var value string
		if id == fieldCategories {
			value = f.categoryRow(theme)
		} else {
			value = f.inputs[id].View()
		}
		lines = append(lines, label+" "+value)
	}

	check := "[ ]"
	if f.override {
		check = "[x]"
	}
	lines = append(lines, "", theme.Normal.Render(check+" allow timers past 6d 23h 59m"))

	if f.err != nil {
		lines = append(lines, "", theme.StatusError.Render(f.err.Error()))
	}

	return theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (f vendorForm) categoryRow(theme themes.Theme) string {
	parts := make([]string, 0, len(f.palette))
	for i, c := range f.palette {
		label := fmt.Sprintf("%d %s", i+1, c)
		if f.selected[c] {
			parts = append(parts, theme.Bold.Foreground(theme.Success).Render("["+label+"]"))
		} else {
			parts = append(parts, theme.Subtitle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

