package tui

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/tracker"
	"github.com/Veraticus/resetwatch/internal/tui/themes"
	"github.com/Veraticus/resetwatch/internal/tui/viewmodel"
)

// State represents the current state of the TUI.
type State int

const (
	StateBrowse State = iota
	StateFilter
	StateForm
	StateConfirm
	StateNewCharacter
)

type action int

const (
	actionReset action = iota
	actionDelete
)

// pendingAction is a reset or delete waiting for confirmation.
type pendingAction struct {
	vendor string
	kind   action
}

// Model holds the main TUI state. Storage calls are made synchronously from
// Update; they touch one small file or row.
type Model struct {
	ctx       context.Context
	lastError error
	tracker   *tracker.Tracker
	theme     themes.Theme
	board     viewmodel.Board
	pending   pendingAction
	status    string
	filter    textinput.Model
	nameInput textinput.Model
	form      vendorForm
	help      help.Model
	viewport  viewport.Model
	config    Config
	keymap    KeyMap
	formKeys  FormKeyMap
	selected  string
	height    int
	width     int
	state     State
	quitting  bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, t *tracker.Tracker, cfg Config) Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "name, zone or category"

	nameInput := textinput.New()
	nameInput.Prompt = "New character: "
	nameInput.CharLimit = 40

	vp := viewport.New(cfg.Width, cfg.Height)
	vp.KeyMap = viewport.KeyMap{
		PageUp:   DefaultKeyMap().PageUp,
		PageDown: DefaultKeyMap().PageDown,
	}

	m := Model{
		ctx:       ctx,
		tracker:   t,
		theme:     cfg.Theme,
		config:    cfg,
		keymap:    DefaultKeyMap(),
		formKeys:  DefaultFormKeyMap(),
		help:      help.New(),
		filter:    filter,
		nameInput: nameInput,
		viewport:  vp,
		width:     cfg.Width,
		height:    cfg.Height,
		lastError: t.LoadErr(),
	}
	m.rebuild()
	m.syncViewport()
	return m
}

// Init starts the countdown ticker.
func (m Model) Init() tea.Cmd {
	return tick(m.config.TickInterval)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.board.Refresh(m.tracker.Now())
		cmd = tick(m.config.TickInterval)

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case StateBrowse:
			cmd = m.updateBrowse(msg)
		case StateFilter:
			cmd = m.updateFilter(msg)
		case StateForm:
			cmd = m.updateForm(msg)
		case StateConfirm:
			m.updateConfirm(msg)
		case StateNewCharacter:
			cmd = m.updateNewCharacter(msg)
		}
	}

	m.syncViewport()
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	m.lastError = nil

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.PageUp, m.keymap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Filter):
		m.state = StateFilter
		return m.filter.Focus()
	case key.Matches(msg, m.keymap.NextCharacter):
		m.nextCharacter()
	case key.Matches(msg, m.keymap.NewCharacter):
		m.state = StateNewCharacter
		m.nameInput.SetValue("")
		return m.nameInput.Focus()
	case key.Matches(msg, m.keymap.Add):
		m.form = newAddForm(m.tracker.Categories())
		m.state = StateForm
	case key.Matches(msg, m.keymap.Update):
		return m.openUpdate()
	case key.Matches(msg, m.keymap.Reset):
		m.confirm(actionReset)
	case key.Matches(msg, m.keymap.Delete):
		m.confirm(actionDelete)
	}
	return nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.filter.SetValue("")
		m.leaveFilter()
		return nil
	case key.Matches(msg, m.formKeys.Submit):
		m.leaveFilter()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.rebuild()
	return cmd
}

func (m *Model) leaveFilter() {
	m.filter.Blur()
	m.state = StateBrowse
	m.rebuild()
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.state = StateBrowse
		return nil
	case key.Matches(msg, m.formKeys.Submit):
		m.submitForm()
		return nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg, m.formKeys)
	return cmd
}

func (m *Model) submitForm() {
	var (
		name string
		err  error
	)
	if m.form.mode == formAdd {
		in := m.form.vendorInput()
		name = strings.TrimSpace(in.Name)
		_, err = m.tracker.AddVendor(m.ctx, in)
	} else {
		name = m.form.target
		_, err = m.tracker.UpdateVendor(m.ctx, name, m.form.updateInput())
	}
	if err != nil {
		m.form.err = err
		return
	}

	m.state = StateBrowse
	m.selected = name
	m.rebuild()
	if m.form.mode == formAdd {
		m.status = "Added " + name
	} else {
		m.status = "Updated " + name
	}
}

func (m *Model) openUpdate() tea.Cmd {
	if m.selected == "" {
		return nil
	}
	in, err := m.tracker.Prefill(m.selected)
	if err != nil {
		m.lastError = err
		return nil
	}
	v, err := m.tracker.Vendor(m.selected)
	if err != nil {
		m.lastError = err
		return nil
	}
	m.form = newUpdateForm(v.Name, v.Zone, in, m.tracker.Categories())
	m.state = StateForm
	return nil
}

func (m *Model) confirm(kind action) {
	if m.selected == "" {
		return
	}
	m.pending = pendingAction{kind: kind, vendor: m.selected}
	m.state = StateConfirm
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	if key.Matches(msg, m.keymap.No) {
		m.state = StateBrowse
		return
	}
	if !key.Matches(msg, m.keymap.Yes) {
		return
	}

	m.state = StateBrowse
	name := m.pending.vendor
	var err error
	switch m.pending.kind {
	case actionReset:
		_, err = m.tracker.ResetVendor(m.ctx, name)
		m.status = "Reset " + name
	case actionDelete:
		err = m.tracker.DeleteVendor(m.ctx, name)
		m.status = "Deleted " + name
	}
	if err != nil {
		m.status = ""
		m.lastError = err
	}
	m.rebuild()
}

func (m *Model) updateNewCharacter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.nameInput.Blur()
		m.state = StateBrowse
		return nil
	case key.Matches(msg, m.formKeys.Submit):
		id, err := m.tracker.CreateCharacter(m.ctx, m.nameInput.Value())
		m.nameInput.Blur()
		m.state = StateBrowse
		if err != nil {
			m.lastError = err
			return nil
		}
		m.status = "Created " + id
		m.selected = ""
		m.rebuild()
		return nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return cmd
}

// nextCharacter switches to the character after the active one.
func (m *Model) nextCharacter() {
	characters, err := m.tracker.ListCharacters(m.ctx)
	if err != nil {
		m.lastError = err
		return
	}
	next := characters[0]
	if i := slices.Index(characters, m.tracker.Character()); i >= 0 {
		next = characters[(i+1)%len(characters)]
	}
	if err := m.tracker.LoadCharacter(m.ctx, next); err != nil {
		m.lastError = err
	}
	m.selected = ""
	m.rebuild()
}

// moveCursor moves the selection by delta rows in display order.
func (m *Model) moveCursor(delta int) {
	order := m.board.Order()
	if len(order) == 0 {
		return
	}
	i := slices.Index(order, m.selected) + delta
	m.selected = order[max(0, min(i, len(order)-1))]
}

// rebuild re-derives the board from the tracker, keeping the selection when
// it is still listed.
func (m *Model) rebuild() {
	filter := m.filter.Value()
	clusters := m.tracker.QueryAndCluster(filter)
	m.board = viewmodel.Build(m.tracker.Character(), filter, clusters, m.tracker.Vendors(), m.tracker.Now())

	order := m.board.Order()
	if !slices.Contains(order, m.selected) {
		m.selected = ""
		if len(order) > 0 {
			m.selected = order[0]
		}
	}
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-m.chromeHeight())
}

// syncViewport renders the board into the viewport and scrolls the selected
// row into view.
func (m *Model) syncViewport() {
	m.resize()
	content := m.renderBoard()
	m.viewport.SetContent(content)

	for i, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, cursorGlyph) {
			continue
		}
		if i < m.viewport.YOffset {
			m.viewport.SetYOffset(i)
		} else if i >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(i - m.viewport.Height + 1)
		}
		break
	}
}

// errorText is the message shown for the last failed action.
func (m Model) errorText() string {
	if m.lastError == nil {
		return ""
	}
	if common.IsValidationError(m.lastError) {
		return m.lastError.Error()
	}
	var userErr *common.UserError
	if errors.As(m.lastError, &userErr) {
		return "Error: " + userErr.UserMessage
	}
	return "Error: " + m.lastError.Error()
}
