package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// SSHServer serves the game over SSH with Wish.
type SSHServer struct {
	config config.Config
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. A nil logger logs to stderr.
func NewSSHServer(cfg config.Config, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-ssh",
		})
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "error", err)
		store = nil // Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath, err := expandHome(cfg.SSH.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	}
	if cfg.SSH.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.SSH.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	if cfg.Game.Seed != 0 {
		logger.Warn("game.seed is ignored for SSH sessions", "seed", cfg.Game.Seed)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty() // activeterm guarantees a PTY

	renderer := NewScreenRenderer(bubbletea.MakeRenderer(sess))
	model := NewSessionModel(s.store, sessionConfig(s.config, pty.Window.Width, pty.Window.Height), renderer)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionConfig builds the runtime config for one SSH session. The
// configured seed only applies to local play: every remote session gets a
// time-based seed so players do not share a tile sequence.
func sessionConfig(cfg config.Config, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     cfg.UI.TickRate,
		StrictStatus: cfg.Game.StrictStatus,
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT/SIGTERM or a
// server error.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve starts the SSH server and blocks until ctx is done or the server
// fails, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.SSH.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("tui: shutdown: %w", err)
	}
	return nil
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("could not close scores database", "error", err)
	}
	s.store = nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.SSH.Address
}

// Port returns the port part of the listen address, or "" if it has none.
func (s *SSHServer) Port() string {
	_, port, err := net.SplitHostPort(s.config.SSH.Address)
	if err != nil {
		return ""
	}
	return port
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// This is the top-level model used for SSH sessions and the local menu.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	renderer *ScreenRenderer
	current  sessionScreen
	menu     MenuModel
	play     Model
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model. store and renderer may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, renderer *ScreenRenderer) SessionModel {
	if renderer == nil {
		renderer = NewScreenRenderer(nil)
	}
	return SessionModel{
		store:    store,
		config:   cfg,
		renderer: renderer,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The menu quits its own program on select; here the command is dropped
	// and the session switches screens instead.
	switch m.menu.Selected() {
	case ChoicePlay:
		return m.startGame()
	case ChoiceScores:
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	best := 0
	if m.store != nil {
		if high, err := m.store.HighScore(game.ID); err == nil {
			best = high
		}
	}

	g := game.New(m.config, game.WithBest(best))
	m.play = NewModel(g, m.store, m.config, m.renderer)
	m.play.allowBack = true
	m.current = screenGame

	return m, m.play.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(Model); ok {
		m.play = playModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session locally.
func RunSession(store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, nil),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
