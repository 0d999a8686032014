package ui

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/BarryMolina/mathsfun-sub001/internal/ui/components"
	"github.com/BarryMolina/mathsfun-sub001/internal/ui/theme"
)

// ErrPickCancelled is returned when the user backs out of a menu with
// Esc or Ctrl+C.
var ErrPickCancelled = errors.New("selection cancelled")

type pickerModel struct {
	title     string
	menu      components.Menu
	choice    int
	cancelled bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.choice = m.menu.Selected
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m pickerModel) View() tea.View {
	s := theme.Title.Render(m.title) + "\n\n"
	s += m.menu.View()
	s += "\n" + theme.Hint.Render("↑↓ navigate • enter select • esc back") + "\n"
	return tea.NewView(s)
}

// Pick shows an inline menu and returns the index of the chosen item.
// Returns ErrPickCancelled when the user backs out.
func Pick(title string, items []components.MenuItem) (int, error) {
	model := pickerModel{
		title:  title,
		menu:   components.NewMenu(items),
		choice: -1,
	}
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("running menu: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok {
		return -1, fmt.Errorf("unexpected menu model %T", final)
	}
	if m.cancelled || m.choice < 0 {
		return -1, ErrPickCancelled
	}
	return m.choice, nil
}
