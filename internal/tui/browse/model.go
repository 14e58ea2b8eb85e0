// Package browse is the terminal accordion over the service catalog. It
// shares the engine's visibility and selection rules with the web views, so
// the same state shows the same services everywhere.
package browse

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/dataset"
	"github.com/dklevakin/ai-map/internal/i18n"
	"github.com/dklevakin/ai-map/internal/mindmap"
	"github.com/dklevakin/ai-map/internal/theme"
)

// Run starts the browser over the store and blocks until the user quits.
func Run(store *dataset.Store, lang i18n.Lang) error {
	m, err := newModel(store, lang)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type model struct {
	store *dataset.Store
	keys  keyMap

	state      mindmap.State
	categories []catalog.Category
	resources  catalog.ResourceIndex
	rows       []mindmap.Row
	cursor     int

	input     textinput.Model
	searching bool
	showHelp  bool

	width  int
	height int
	status string
	err    error
}

func newModel(store *dataset.Store, lang i18n.Lang) (model, error) {
	input := textinput.New()
	input.Placeholder = i18n.SearchPlaceholder.For(lang)
	input.Prompt = "/ "
	input.CharLimit = 64

	m := model{
		store: store,
		keys:  defaultKeyMap(),
		state: mindmap.NewState(lang),
		input: input,
	}
	if err := m.reload(); err != nil {
		return model{}, err
	}
	return m, nil
}

// reload fetches the catalog for the current language and rebuilds rows.
func (m *model) reload() error {
	categories, err := m.store.Catalog(m.state.Language)
	if err != nil {
		return err
	}
	resources, err := m.store.Resources()
	if err != nil {
		return err
	}
	m.categories = categories
	m.resources = resources
	m.rebuild()
	return nil
}

func (m *model) rebuild() {
	m.rows = mindmap.BuildRows(m.state.Params(m.categories, m.resources, theme.Dark()))
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.state.Query = ""
		m.rebuild()
		return m, nil
	case "enter":
		m.searching = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.Query = m.input.Value()
	m.rebuild()
	return m, cmd
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Language):
		m.state.SetLanguage(m.state.Language.Other())
		m.input.Placeholder = i18n.SearchPlaceholder.For(m.state.Language)
		m.input.SetValue("")
		m.cursor = 0
		if err := m.reload(); err != nil {
			m.err = err
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if svc := m.selectedService(); svc != nil {
			if err := clipboard.WriteAll(svc.Href); err != nil {
				m.status = fmt.Sprintf("clipboard: %v", err)
			} else {
				m.status = svc.Href
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.activate()
	}
	return m, nil
}

// activate applies the intent of the row under the cursor. Selecting the
// already selected service clears the selection.
func (m *model) activate() {
	if m.cursor >= len(m.rows) {
		return
	}
	row := m.rows[m.cursor]
	if sel, ok := row.Intent.(mindmap.SelectService); ok && sel.Key == m.state.SelectedKey {
		m.state.ClearSelection()
		m.rebuild()
		return
	}
	m.state = m.state.Apply(row.Intent)
	m.rebuild()
}

// selectedService resolves the selected key back to its service entry.
func (m model) selectedService() *catalog.ServiceEntry {
	if m.state.SelectedKey == "" {
		return nil
	}
	for _, row := range m.rows {
		if row.Kind == mindmap.RowService && row.Key == m.state.SelectedKey {
			return row.Service
		}
	}
	return nil
}

func (m model) View() string {
	if m.err != nil {
		return theme.ErrorText.Render(i18n.LoadError.For(m.state.Language)) + "\n" + theme.Muted.Render(m.err.Error()) + "\n"
	}
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("AI Compass"))
	b.WriteString("  ")
	b.WriteString(theme.Muted.Render(i18n.ListHeading.For(m.state.Language)))
	b.WriteString("\n\n")

	if m.searching || m.input.Value() != "" {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(theme.Muted.Render(i18n.NoResults.For(m.state.Language)))
		b.WriteString("\n")
	}
	for i, row := range m.rows {
		b.WriteString(m.renderRow(row, i == m.cursor))
		b.WriteString("\n")
	}

	if details := m.detailsView(); details != "" {
		b.WriteString("\n")
		b.WriteString(details)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render("/ search   enter expand/select   l language   c copy   ? help   q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m model) renderRow(row mindmap.Row, underCursor bool) string {
	var line string
	switch row.Kind {
	case mindmap.RowCategory:
		marker := "▸"
		if row.Expanded {
			marker = "▾"
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render("●")
		line = fmt.Sprintf("%s %s %s", marker, dot, theme.CategoryRow.Render(row.Label))
	case mindmap.RowGroup:
		marker := "▸"
		if row.Expanded {
			marker = "▾"
		}
		label := theme.GroupRow.Render(row.Label)
		if row.Hit {
			label = theme.SearchHit.Render(row.Label)
		}
		line = fmt.Sprintf("  %s %s", marker, label)
	default:
		label := theme.ServiceRow.Render(row.Label)
		if row.Hit {
			label = theme.SearchHit.Render(row.Label)
		}
		prefix := "    "
		if row.Group != "" {
			prefix = "      "
		}
		mark := " "
		if row.Selected {
			mark = "›"
		}
		line = fmt.Sprintf("%s%s %s  %s", prefix, mark, label, theme.Muted.Render(row.Desc))
	}
	if underCursor {
		return theme.CursorRow.Render("> " + line)
	}
	return "  " + line
}

func (m model) detailsView() string {
	svc := m.selectedService()
	if svc == nil {
		return ""
	}
	lang := m.state.Language
	var b strings.Builder
	b.WriteString(theme.CategoryRow.Render(svc.Name))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(svc.Desc))
	b.WriteString("\n")
	b.WriteString(theme.Link.Render(svc.Href))
	if entry, ok := catalog.FindResourceEntry(m.resources, *svc); ok {
		if len(entry.Tags) > 0 {
			b.WriteString("\n")
			for _, tag := range entry.Tags {
				b.WriteString(theme.Tag.Render(tag))
				b.WriteString(" ")
			}
		}
		for _, link := range entry.FlatLinks() {
			label := link.Label.For(string(lang))
			if label == "" {
				label = link.Kind
			}
			b.WriteString("\n")
			b.WriteString(theme.Muted.Render(label + ": "))
			b.WriteString(theme.Link.Render(link.Href))
		}
	}
	return theme.DetailsPane.Render(b.String())
}

func (m model) helpView() string {
	return strings.Join([]string{
		theme.Title.Render("AI Compass"),
		"",
		"  ↑/k ↓/j  move",
		"  enter    expand category or group, select service",
		"  /        live search, esc clears",
		"  l        switch ua/en",
		"  c        copy the selected service link",
		"  q        quit",
		"",
		theme.Muted.Render("? closes this help"),
	}, "\n") + "\n"
}
