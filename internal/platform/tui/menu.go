package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/storage"
)

// MenuChoice identifies a start menu entry.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var menuItems = []MenuItem{
	{Choice: ChoicePlay, Title: "New game"},
	{Choice: ChoiceScores, Title: "Scores"},
	{Choice: ChoiceQuit, Title: "Quit"},
}

var menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	best      int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuChoice
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	best := 0
	if store != nil {
		if high, err := store.HighScore(game.ID); err == nil {
			best = high
		}
	}

	return MenuModel{
		items:     menuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		best:      best,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Choice
		if m.selected == ChoiceQuit {
			m.quitting = true
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n\n")

	subtitle := "Join the tiles, get to 2048!"
	if m.best > 0 {
		subtitle = fmt.Sprintf("Best score: %d", m.best)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		// Pad so the cursor does not shift the centered column.
		b.WriteString(centerText(fmt.Sprintf("%s%-10s", cursor, item.Title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// RunMenu runs the menu and returns the choice and the possibly resized config.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuChoice, core.RuntimeConfig, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return ChoiceQuit, cfg, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == ChoiceNone {
		return ChoiceQuit, cfg, nil
	}

	return m.Selected(), m.Config(), nil
}
