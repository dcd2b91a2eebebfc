package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected is true for the cursor row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a scrolling single-selection list. Only the rows inside the
// viewport are rendered.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]

	selected int
	// offset is the first row in the viewport.
	offset int
	height int
}

// New returns a list showing height rows at a time. height < 1 shows every row.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	return &Model[T]{items: items, render: render, height: height}
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd { return nil }

// Update handles navigation keys and resizes.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		if m.height > 0 && msg.Height > 0 {
			m.height = min(m.height, msg.Height)
			m.clamp()
		}
	}
	return m, nil
}

//nolint:exhaustive // Navigation keys only.
func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp:
		m.Move(-1)
	case tea.KeyDown:
		m.Move(1)
	case tea.KeyPgUp:
		m.Move(-m.page())
	case tea.KeyPgDown:
		m.Move(m.page())
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "j":
			m.Move(1)
		case "k":
			m.Move(-1)
		}
	}
}

func (m *Model[T]) page() int {
	if m.height < 1 {
		return len(m.items)
	}
	return m.height
}

// Move shifts the cursor by delta rows, stopping at either end.
func (m *Model[T]) Move(delta int) {
	m.SetSelected(m.selected + delta)
}

// SetSelected moves the cursor to index, capped to the list bounds.
func (m *Model[T]) SetSelected(index int) {
	m.selected = max(0, min(index, len(m.items)-1))
	m.clamp()
}

// clamp scrolls the viewport so the cursor stays visible.
func (m *Model[T]) clamp() {
	if m.height < 1 {
		m.offset = 0
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	m.offset = max(0, min(m.offset, len(m.items)-m.height))
}

// View renders the rows inside the viewport.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := len(m.items)
	if m.height > 0 {
		end = min(end, m.offset+m.height)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		b.WriteString(m.render(m.items[i], i == m.selected))
	}
	return b.String()
}

// SetItems replaces the items, keeping the cursor in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// Items returns the backing slice.
func (m *Model[T]) Items() []T { return m.items }

// Len returns the number of items.
func (m *Model[T]) Len() int { return len(m.items) }

// Selected returns the cursor index.
func (m *Model[T]) Selected() int { return m.selected }

// Offset returns the first visible row.
func (m *Model[T]) Offset() int { return m.offset }

// SelectedItem returns the item under the cursor, or nil for an empty list.
func (m *Model[T]) SelectedItem() *T {
	if m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
