package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/greenops"
)

// RecordFunc calculates an input and stores the result. It is normally
// (*footprint.Store).Record.
type RecordFunc func(ctx context.Context, in emissions.Input) (float64, error)

// SuggestFunc completes a Lookup row. values holds the current value of every
// row of the form, so a car model lookup can read the chosen year and make.
type SuggestFunc func(ctx context.Context, key string, values map[string]string) ([]string, error)

// FormClosedMsg is emitted when the user leaves a form. Saved is true when at
// least one calculation was recorded.
type FormClosedMsg struct {
	Category emissions.Category
	Input    emissions.Input
	Saved    bool
}

type formRecordedMsg struct {
	input emissions.Input
	value float64
	err   error
}

type formSuggestMsg struct {
	seq     uint64
	key     string
	options []string
	err     error
}

// FormModel edits one calculator form. Enter edits a text row or advances a
// selector; "s" calculates and records the result.
type FormModel struct {
	ctx      context.Context
	category emissions.Category

	fields     []formField
	focusedRow int
	editMode   bool
	editBuffer string

	// suggestions for the focused Lookup row, shown as a picker
	suggestions []string
	suggestIdx  int
	// lookupSeq tags the newest lookup; older responses are dropped
	lookupSeq uint64

	precision int
	result    float64
	hasResult bool
	saved     bool
	input     emissions.Input
	loading   bool
	err       error

	record  RecordFunc
	suggest SuggestFunc
}

// NewFormModel returns a form for category, prefilled from in (or the
// category defaults when in is nil).
func NewFormModel(
	ctx context.Context,
	category emissions.Category,
	in emissions.Input,
	record RecordFunc,
	suggest SuggestFunc,
	precision int,
) *FormModel {
	if in == nil {
		in = defaultInput(category)
	}
	m := &FormModel{
		ctx:       ctx,
		category:  category,
		fields:    formFieldsFor(category),
		precision: precision,
		record:    record,
		suggest:   suggest,
		input:     in,
	}
	if in != nil {
		if err := fillFields(m.fields, in); err != nil {
			m.err = err
		}
	}
	return m
}

// Init implements tea.Model.
func (m *FormModel) Init() tea.Cmd { return nil }

// Update handles messages and updates the model state.
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formRecordedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.input = msg.input
		m.result = msg.value
		m.hasResult = true
		m.saved = true
		return m, nil

	case formSuggestMsg:
		if msg.seq != m.lookupSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if len(msg.options) == 0 {
			m.err = fmt.Errorf("no matches for %s", msg.key)
			return m, nil
		}
		m.err = nil
		m.suggestions = msg.options
		m.suggestIdx = 0
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *FormModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editMode {
		return m.handleEditModeKey(msg)
	}
	if len(m.suggestions) > 0 {
		return m.handleSuggestionKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		return m, m.close()
	case "up", "k", "shift+tab":
		if m.focusedRow > 0 {
			m.focusedRow--
		}
	case "down", "j", "tab":
		if m.focusedRow < len(m.fields)-1 {
			m.focusedRow++
		}
	case "left":
		m.fields[m.focusedRow].cycle(-1)
	case "right":
		m.fields[m.focusedRow].cycle(1)
	case "enter":
		f := &m.fields[m.focusedRow]
		if f.isSelector() {
			f.cycle(1)
			return m, nil
		}
		m.editMode = true
		m.editBuffer = f.Value
	case "l":
		return m, m.triggerLookup()
	case "s", "ctrl+s":
		return m, m.triggerRecord()
	}
	return m, nil
}

//nolint:exhaustive // Text editing keys only.
func (m *FormModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.fields[m.focusedRow].Value = strings.TrimSpace(m.editBuffer)
		m.editMode = false
	case tea.KeyEsc:
		m.editMode = false
		m.editBuffer = ""
	case tea.KeyBackspace:
		runes := []rune(m.editBuffer)
		if len(runes) > 0 {
			m.editBuffer = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.editBuffer += " "
	case tea.KeyRunes:
		m.editBuffer += string(msg.Runes)
	}
	return m, nil
}

func (m *FormModel) handleSuggestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.suggestIdx > 0 {
			m.suggestIdx--
		}
	case "down", "j":
		if m.suggestIdx < len(m.suggestions)-1 {
			m.suggestIdx++
		}
	case "enter":
		m.fields[m.focusedRow].Value = m.suggestions[m.suggestIdx]
		m.suggestions = nil
	case "esc":
		m.suggestions = nil
	}
	return m, nil
}

func (m *FormModel) triggerLookup() tea.Cmd {
	f := m.fields[m.focusedRow]
	if !f.Lookup || m.suggest == nil {
		return nil
	}
	m.loading = true
	m.lookupSeq++

	ctx, suggest, key, values, seq := m.ctx, m.suggest, f.Key, m.Values(), m.lookupSeq
	return func() tea.Msg {
		opts, err := suggest(ctx, key, values)
		return formSuggestMsg{seq: seq, key: key, options: opts, err: err}
	}
}

func (m *FormModel) triggerRecord() tea.Cmd {
	in, err := buildInput(m.category, m.fields)
	if err != nil {
		m.err = err
		return nil
	}
	if m.record == nil {
		value, calcErr := emissions.Calculate(in)
		m.Update(formRecordedMsg{input: in, value: value, err: calcErr})
		return nil
	}
	m.loading = true

	ctx, record := m.ctx, m.record
	return func() tea.Msg {
		value, recErr := record(ctx, in)
		return formRecordedMsg{input: in, value: value, err: recErr}
	}
}

func (m *FormModel) close() tea.Cmd {
	msg := FormClosedMsg{Category: m.category, Input: m.input, Saved: m.saved}
	return func() tea.Msg { return msg }
}

// Values returns the current row values by key.
func (m *FormModel) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		out[f.Key] = f.Value
	}
	return out
}

// Category returns the form's category.
func (m *FormModel) Category() emissions.Category { return m.category }

// Result returns the last recorded value.
func (m *FormModel) Result() (float64, bool) { return m.result, m.hasResult }

// Err returns the last calculation or lookup error.
func (m *FormModel) Err() error { return m.err }

// View renders the form.
func (m *FormModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(strings.ToUpper(m.category.Label())))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		marker := "  "
		if i == m.focusedRow {
			marker = FocusedStyle.Render("> ")
		}
		value := f.Value
		switch {
		case i == m.focusedRow && m.editMode:
			value = m.editBuffer + "▌"
		case f.isSelector():
			value = "‹ " + value + " ›"
		case value == "":
			value = SubtleStyle.Render("-")
		}
		fmt.Fprintf(&b, "%s%s %s", marker, LabelStyle.Render(fmt.Sprintf("%-22s", f.Label)), ValueStyle.Render(value))
		if f.Lookup && i == m.focusedRow {
			b.WriteString(SubtleStyle.Render("  (l to look up)"))
		}
		b.WriteString("\n")

		if i == m.focusedRow && len(m.suggestions) > 0 {
			for j, s := range m.suggestions {
				prefix := "      "
				if j == m.suggestIdx {
					prefix = FocusedStyle.Render("    » ")
				}
				b.WriteString(prefix + s + "\n")
			}
		}
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(RenderLoadingIndicator(""))
	case m.err != nil:
		b.WriteString(CriticalStyle.Render("Error: " + m.err.Error()))
	case m.hasResult:
		b.WriteString(LabelStyle.Render("Result: "))
		b.WriteString(SuccessStyle.Render(greenops.FormatTonnes(m.result, m.precision)))
	}
	b.WriteString("\n\n")
	b.WriteString(RenderHelp("↑/↓", "move", "enter", "edit", "←/→", "change", "s", "calculate", "esc", "back"))
	return b.String()
}
