package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/goaltray/goaltray/internal/daemon/menu"
)

// row is one visible line of the menu.
type row struct {
	item  menu.Item
	depth int
}

func (r row) selectable() bool {
	if r.item.Disabled {
		return false
	}
	return r.item.Kind == menu.KindAction || r.item.Kind == menu.KindSubmenu
}

// Model is the terminal tray's bubbletea model.
type Model struct {
	menu     *menu.Menu
	rows     []row
	cursor   int
	expanded map[string]bool // submenu id -> open

	onClick func(id string)
	start   func()

	width     int
	height    int
	lastClick string
}

// NewModel creates a model. start runs once from Init.
func NewModel(onClick func(id string), start func()) Model {
	return Model{
		expanded: make(map[string]bool),
		onClick:  onClick,
		start:    start,
		width:    48,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	start := m.start
	return func() tea.Msg {
		if start != nil {
			start()
		}
		return startedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case menuInstalledMsg:
		m.setMenu(msg.menu)
		return m, nil

	case clickedMsg:
		m.lastClick = msg.id
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, menuKeys.Quit):
		return tea.Quit
	case key.Matches(msg, menuKeys.Up):
		m.move(-1)
	case key.Matches(msg, menuKeys.Down):
		m.move(1)
	case key.Matches(msg, menuKeys.Expand):
		m.setExpanded(true)
	case key.Matches(msg, menuKeys.Collapse):
		m.collapse()
	case key.Matches(msg, menuKeys.Activate):
		return m.activate()
	}
	return nil
}

// Selected returns the identifier under the cursor, or "".
func (m Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].item.ID
}

func (m *Model) setMenu(mm *menu.Menu) {
	selected := m.Selected()
	m.menu = mm
	m.rebuild()

	// Keep the cursor on the same item across rebuilds when it still exists.
	m.cursor = -1
	for i, r := range m.rows {
		if r.item.ID == selected && r.selectable() {
			m.cursor = i
			break
		}
	}
	if m.cursor < 0 {
		m.cursor = 0
		m.skip(1)
	}
}

func (m *Model) rebuild() {
	m.rows = m.rows[:0]
	if m.menu == nil {
		return
	}
	for _, it := range m.menu.Items {
		m.rows = append(m.rows, row{item: it})
		if it.Kind == menu.KindSubmenu && m.expanded[it.ID] {
			for _, child := range it.Children {
				m.rows = append(m.rows, row{item: child, depth: 1})
			}
		}
	}
}

func (m *Model) move(dir int) {
	if len(m.rows) == 0 {
		return
	}
	start := m.cursor
	m.cursor += dir
	m.skip(dir)
	if m.cursor < 0 || m.cursor >= len(m.rows) || !m.rows[m.cursor].selectable() {
		m.cursor = start
	}
}

// skip advances past non-selectable rows in direction dir.
func (m *Model) skip(dir int) {
	for m.cursor >= 0 && m.cursor < len(m.rows) && !m.rows[m.cursor].selectable() {
		m.cursor += dir
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setExpanded(open bool) {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	if r.item.Kind != menu.KindSubmenu {
		return
	}
	m.expanded[r.item.ID] = open
	m.rebuild()
}

// collapse closes the submenu under the cursor, or the parent of a child row.
func (m *Model) collapse() {
	if m.cursor >= len(m.rows) {
		return
	}
	if m.rows[m.cursor].depth > 0 {
		for i := m.cursor; i >= 0; i-- {
			if m.rows[i].depth == 0 {
				m.cursor = i
				break
			}
		}
	}
	m.setExpanded(false)
}

func (m *Model) activate() tea.Cmd {
	if m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]
	if !r.selectable() {
		return nil
	}
	if r.item.Kind == menu.KindSubmenu {
		m.expanded[r.item.ID] = !m.expanded[r.item.ID]
		m.rebuild()
		return nil
	}

	// Route off the event loop: the router may install a new menu, which
	// sends back into this program.
	onClick := m.onClick
	id := r.item.ID
	return func() tea.Msg {
		if onClick != nil {
			onClick(id)
		}
		return clickedMsg{id: id}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("goaltray"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(hintStyle.Render("  Waiting for menu..."))
		b.WriteString("\n")
	}

	width := m.width
	for i, r := range m.rows {
		line := m.renderRow(r, width-2)
		if i == m.cursor && r.selectable() {
			line = selectedItemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderStatusBar(&m, width))
	return b.String()
}

func (m Model) renderRow(r row, width int) string {
	indent := strings.Repeat("    ", r.depth)
	switch r.item.Kind {
	case menu.KindSeparator:
		n := width - len(indent) - 2
		if n < 4 {
			n = 4
		}
		return "  " + separatorStyle.Render(strings.Repeat("─", n))
	case menu.KindLabel:
		return "  " + labelStyle.Render(ansi.Truncate(r.item.Label, width-2, "…"))
	case menu.KindSubmenu:
		marker := "▸ "
		if m.expanded[r.item.ID] {
			marker = "▾ "
		}
		return indent + marker + submenuStyle.Render(ansi.Truncate(r.item.Label, width-len(indent)-2, "…"))
	default:
		return indent + "  " + actionStyle.Render(ansi.Truncate(r.item.Label, width-len(indent)-2, "…"))
	}
}
