package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/storage"
)

// helpHeight is the number of rows reserved below the board for the help bar.
const helpHeight = 1

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

// Model is the Bubble Tea model for playing 2048.
type Model struct {
	game     *game.Game
	screen   *core.Screen
	store    *storage.Store
	renderer *ScreenRenderer
	keys     *KeyMapper
	help     help.Model
	config   core.RuntimeConfig
	shotDir  string

	notice    string
	recorded  bool // Whether the current terminal game has been saved
	allowBack bool // Whether esc/b returns to a parent screen
	back      bool
	quitting  bool
}

// NewModel creates a new Bubble Tea model around g. store may be nil, in
// which case nothing is saved. A nil renderer uses the default one.
func NewModel(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, renderer *ScreenRenderer) Model {
	if renderer == nil {
		renderer = NewScreenRenderer(nil)
	}

	shotDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		shotDir = filepath.Join(home, ".t2048", "screenshots")
	}

	h := help.New()
	h.Width = cfg.ScreenW

	playH := max(cfg.ScreenH-helpHeight, 0)
	g.Resize(cfg.ScreenW, playH)

	return Model{
		game:     g,
		screen:   core.NewScreen(cfg.ScreenW, playH),
		store:    store,
		renderer: renderer,
		keys:     NewKeyMapper(),
		help:     h,
		config:   cfg,
		shotDir:  shotDir,
	}
}

// Init starts the view refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey maps the key to an action and steps the game immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Shot) {
		m.notice = m.saveScreenshot()
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keys.MapKeyToFrame(msg, &frame) {
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit
	}

	if frame.Has(core.ActionBack) && m.allowBack {
		st := m.game.State()
		if st.GameOver || st.Paused || m.game.Status() == engine.StatusIdle {
			m.recordAbandoned()
			m.back = true
			return m, nil
		}
	}

	if frame.Empty() {
		return m, nil
	}

	m.game.Step(frame)
	m.afterStep()
	return m, nil
}

// handleResize keeps the game running and only changes the drawing area.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height

	playH := max(msg.Height-helpHeight, 0)
	m.screen.Resize(msg.Width, playH)
	m.game.Resize(msg.Width, playH)
	m.help.Width = msg.Width

	return m, nil
}

// afterStep saves the game once when it reaches a terminal status and
// re-arms saving when a new game starts.
func (m *Model) afterStep() {
	status := m.game.Status()
	if !status.Terminal() {
		m.recorded = false
		return
	}
	if m.recorded {
		return
	}
	m.recorded = true
	m.record(status)
}

// recordAbandoned saves a game that is left while still in progress.
func (m *Model) recordAbandoned() {
	if m.game.Status() != engine.StatusPlaying || m.game.Snapshot().Moves == 0 {
		return
	}
	m.record(engine.StatusPlaying)
}

// record stores the score and the game record. Saving is best-effort: a
// failure is shown to the player and the game continues.
func (m *Model) record(status engine.Status) {
	if m.store == nil {
		return
	}

	snap := m.game.Snapshot()
	if status.Terminal() && snap.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), snap.Score); err != nil {
			m.notice = fmt.Sprintf("could not save score: %v", err)
			return
		}
	}

	rec := storage.GameRecord{
		Score:   snap.Score,
		MaxTile: snap.MaxTile,
		Moves:   snap.Moves,
		Status:  string(status),
		Seed:    m.game.Seed(),
		Board:   snap.Board.Encode(),
		History: m.game.History().String(),
	}
	if initial := m.game.Initial(); !initial.IsEmpty() {
		rec.Initial = initial.Encode()
	}

	id, err := m.store.SaveGame(rec)
	if err != nil {
		m.notice = fmt.Sprintf("could not save game: %v", err)
		return
	}
	m.notice = fmt.Sprintf("saved game %s", id[:8])
}

// saveScreenshot writes the current screen as plain text and returns a
// notice for the help bar.
func (m *Model) saveScreenshot() string {
	if m.shotDir == "" {
		return "screenshot failed: no home directory"
	}

	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return fmt.Sprintf("screenshot failed: %v", err)
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Sprintf("screenshot failed: %v", err)
	}
	return "screenshot saved to " + path
}

// View renders the board and the help bar.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys.Keys())
	if m.notice != "" {
		footer += "  " + noticeStyle.Render(m.notice)
	}

	return m.renderer.Render(m.screen) + "\n" + footer
}

// Game returns the wrapped game.
func (m Model) Game() *game.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program for a local game and returns the final
// snapshot.
func Run(g *game.Game, store *storage.Store, cfg core.RuntimeConfig) (engine.Snapshot, error) {
	p := tea.NewProgram(
		NewModel(g, store, cfg, nil),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return g.Snapshot(), fmt.Errorf("tui: %w", err)
	}
	return g.Snapshot(), nil
}
