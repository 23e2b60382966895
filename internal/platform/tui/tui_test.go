package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func testRuntimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
		Seed:     42,
	}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{name: "arrow up", msg: keyUp, action: core.ActionUp},
		{name: "arrow down", msg: keyDown, action: core.ActionDown},
		{name: "arrow left", msg: keyLeft, action: core.ActionLeft},
		{name: "arrow right", msg: keyRight, action: core.ActionRight},
		{name: "w", msg: runeKey('w'), action: core.ActionUp},
		{name: "a", msg: runeKey('a'), action: core.ActionLeft},
		{name: "s", msg: runeKey('s'), action: core.ActionDown},
		{name: "d", msg: runeKey('d'), action: core.ActionRight},
		{name: "k", msg: runeKey('k'), action: core.ActionUp},
		{name: "h", msg: runeKey('h'), action: core.ActionLeft},
		{name: "j", msg: runeKey('j'), action: core.ActionDown},
		{name: "l", msg: runeKey('l'), action: core.ActionRight},
		{name: "enter", msg: keyEnter, action: core.ActionConfirm},
		{name: "space", msg: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, action: core.ActionConfirm},
		{name: "r", msg: runeKey('r'), action: core.ActionRestart},
		{name: "p", msg: runeKey('p'), action: core.ActionPause},
		{name: "esc", msg: keyEsc, action: core.ActionBack},
		{name: "q", msg: runeKey('q'), action: core.ActionQuit, quit: true},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}, action: core.ActionQuit, quit: true},
		{name: "unbound", msg: runeKey('x'), action: core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey(%q) action = %v, want %v", tt.msg.String(), action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey(%q) quit = %v, want %v", tt.msg.String(), quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{msg: keyUp, want: MenuActionUp},
		{msg: runeKey('j'), want: MenuActionDown},
		{msg: keyEnter, want: MenuActionSelect},
		{msg: keyEsc, want: MenuActionBack},
		{msg: runeKey('q'), want: MenuActionQuit},
		{msg: runeKey('x'), want: MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestModelSavesWinOnce(t *testing.T) {
	store := openTestStore(t)

	var initial engine.Board
	initial[0][0] = 1024
	initial[0][1] = 1024
	g := game.New(testRuntimeConfig(), game.WithInitialBoard(initial))

	m := NewModel(g, store, testRuntimeConfig(), nil)
	m = send(t, m, keyEnter, keyLeft)

	if g.Status() != engine.StatusWin {
		t.Fatalf("status = %s, want win", g.Status())
	}

	// Further keys must not save again.
	m = send(t, m, keyRight, keyUp)

	games, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("saved %d games, want 1", len(games))
	}
	rec := games[0]
	if rec.Status != "win" || rec.MaxTile < engine.WinTile || rec.Seed != 42 {
		t.Errorf("record = %+v", rec)
	}
	if rec.History != "SL" {
		t.Errorf("history = %q, want %q", rec.History, "SL")
	}
	if _, err := engine.ParseBoard(rec.Board); err != nil {
		t.Errorf("stored board %q does not parse: %v", rec.Board, err)
	}

	high, err := store.HighScore(game.ID)
	if err != nil {
		t.Fatalf("HighScore: %v", err)
	}
	if high < 2048 {
		t.Errorf("high score = %d, want >= 2048", high)
	}

	if !strings.Contains(m.View(), "saved game") {
		t.Error("save notice not shown")
	}

	// A restart re-arms saving for the next game.
	m = send(t, m, runeKey('r'))
	if g.Status() != engine.StatusPlaying {
		t.Fatalf("status after restart = %s, want playing", g.Status())
	}
	if m.recorded {
		t.Error("recorded flag not reset after restart")
	}
}

func TestRecordedGameReplays(t *testing.T) {
	var custom engine.Board
	custom[0][0] = 1024
	custom[0][1] = 1024

	tests := []struct {
		name        string
		initial     engine.Board
		keys        []tea.Msg
		wantInitial string
	}{
		{
			name:        "custom initial board",
			initial:     custom,
			keys:        []tea.Msg{keyEnter, keyLeft},
			wantInitial: "1024,1024,0,0/0,0,0,0/0,0,0,0/0,0,0,0",
		},
		{
			name:        "empty initial board",
			keys:        []tea.Msg{keyEnter, keyLeft, keyUp, keyRight, runeKey('q')},
			wantInitial: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t)
			g := game.New(testRuntimeConfig(), game.WithInitialBoard(tt.initial))
			send(t, NewModel(g, store, testRuntimeConfig(), nil), tt.keys...)

			games, err := store.RecentGames(10)
			if err != nil {
				t.Fatalf("RecentGames: %v", err)
			}
			if len(games) != 1 {
				t.Fatalf("saved %d games, want 1", len(games))
			}
			rec := games[0]
			if rec.Initial != tt.wantInitial {
				t.Errorf("initial = %q, want %q", rec.Initial, tt.wantInitial)
			}

			var initial engine.Board
			if rec.Initial != "" {
				if initial, err = engine.ParseBoard(rec.Initial); err != nil {
					t.Fatalf("ParseBoard(%q): %v", rec.Initial, err)
				}
			}
			history, err := game.ParseHistory(rec.History)
			if err != nil {
				t.Fatalf("ParseHistory(%q): %v", rec.History, err)
			}

			if got := game.Replay(rec.Seed, initial, history); got != g.Snapshot() {
				t.Errorf("replay of stored game diverged:\nreplay %+v\nlive   %+v", got, g.Snapshot())
			}
		})
	}
}

func TestModelSavesLossWithoutScore(t *testing.T) {
	store := openTestStore(t)

	var locked engine.Board
	for r := range engine.Size {
		for c := range engine.Size {
			locked[r][c] = 2 << ((r + c) % 2)
		}
	}
	g := game.New(testRuntimeConfig(), game.WithInitialBoard(locked))

	m := NewModel(g, store, testRuntimeConfig(), nil)
	send(t, m, keyEnter, keyLeft)

	if g.Status() != engine.StatusLose {
		t.Fatalf("status = %s, want lose", g.Status())
	}

	games, _ := store.RecentGames(10)
	if len(games) != 1 || games[0].Status != "lose" {
		t.Errorf("games = %+v, want one lost game", games)
	}
	scores, _ := store.TopScores(game.ID, 10)
	if len(scores) != 0 {
		t.Errorf("zero score should not be saved, got %v", scores)
	}
}

func TestModelQuitSavesGameInProgress(t *testing.T) {
	store := openTestStore(t)
	g := game.New(testRuntimeConfig())

	m := NewModel(g, store, testRuntimeConfig(), nil)
	m = send(t, m, keyEnter, keyLeft, keyRight, keyUp, keyDown)
	if g.Snapshot().Moves == 0 {
		t.Fatal("expected at least one move to change the board")
	}

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}

	games, _ := store.RecentGames(10)
	if len(games) != 1 || games[0].Status != "playing" {
		t.Errorf("games = %+v, want one game left in progress", games)
	}
}

func TestModelWithoutStore(t *testing.T) {
	g := game.New(testRuntimeConfig())
	m := NewModel(g, nil, testRuntimeConfig(), nil)

	m = send(t, m, keyEnter, keyLeft, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("expected quit")
	}
}

func TestModelBackOnlyWhenNotPlaying(t *testing.T) {
	g := game.New(testRuntimeConfig())
	m := NewModel(g, nil, testRuntimeConfig(), nil)
	m.allowBack = true

	m = send(t, m, keyEnter, keyEsc)
	if m.BackToMenu() {
		t.Fatal("esc while playing should not leave the game")
	}

	m = send(t, m, runeKey('p'), keyEsc)
	if !m.BackToMenu() {
		t.Error("esc while paused should go back")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := game.New(testRuntimeConfig())
	m := NewModel(g, nil, testRuntimeConfig(), nil)
	m = send(t, m, keyEnter)
	before := g.Snapshot()

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.Snapshot() != before {
		t.Error("resize changed the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40-helpHeight {
		t.Errorf("screen = %dx%d, want 100x%d", m.screen.Width(), m.screen.Height(), 40-helpHeight)
	}
}

func TestModelScreenshot(t *testing.T) {
	g := game.New(testRuntimeConfig())
	m := NewModel(g, nil, testRuntimeConfig(), nil)
	m.shotDir = t.TempDir()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.shotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("screenshot files = %d, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(m.shotDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "2 0 4 8") {
		t.Error("screenshot does not contain the board")
	}
	if !strings.Contains(m.notice, "screenshot saved") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestScreenRendererPlainText(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawText(0, 0, "plain")
	scr.DrawTextColored(0, 1, "red", core.ColorRed)

	out := NewScreenRenderer(nil).Render(scr)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for i, want := range []string{"plain", "red"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(game.ID, 1200)
	store.SaveScore(game.ID, 3400)
	store.SaveGame(storage.GameRecord{Score: 3400, MaxTile: 256, Moves: 300, Status: "lose"})

	m := NewScoreboardModel(store, 100, 30)
	if got := len(m.table.Rows()); got != 2 {
		t.Errorf("top scores rows = %d, want 2", got)
	}
	if m.table.Rows()[0][1] != "3400" {
		t.Errorf("first row = %v, want score 3400", m.table.Rows()[0])
	}
	if !strings.Contains(m.View(), "TOP SCORES") {
		t.Error("title missing")
	}
	if !strings.Contains(m.View(), "Games: 1") {
		t.Error("stats missing")
	}

	next, _ := m.Update(keyTab)
	m = next.(ScoreboardModel)
	if m.view != ViewRecentGames {
		t.Fatalf("view = %v, want recent games", m.view)
	}
	rows := m.table.Rows()
	if len(rows) != 1 || rows[0][4] != "lost" {
		t.Errorf("recent rows = %v", rows)
	}

	next, _ = m.Update(keyEsc)
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty message missing")
	}
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	s := NewSessionModel(store, testRuntimeConfig(), nil)

	update := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		var ok bool
		if s, ok = next.(SessionModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}

	// Menu -> game.
	update(keyEnter)
	if s.current != screenGame {
		t.Fatalf("screen = %v, want game", s.current)
	}
	update(keyEnter)
	if s.play.Game().Status() != engine.StatusPlaying {
		t.Fatalf("status = %s, want playing", s.play.Game().Status())
	}

	// Pause, then back to menu.
	update(runeKey('p'))
	update(keyEsc)
	if s.current != screenMenu {
		t.Fatalf("screen = %v, want menu", s.current)
	}

	// Menu -> scores -> menu.
	update(keyDown)
	update(keyEnter)
	if s.current != screenScores {
		t.Fatalf("screen = %v, want scores", s.current)
	}
	update(keyEsc)
	if s.current != screenMenu {
		t.Fatalf("screen = %v, want menu", s.current)
	}

	// Quit from the menu.
	update(runeKey('q'))
	if !s.quitting {
		t.Error("expected session to quit")
	}
}

func TestSessionConfigDropsSeed(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Seed = 42
	cfg.Game.StrictStatus = true
	cfg.UI.TickRate = 30

	got := sessionConfig(cfg, 100, 40)

	want := core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 30, StrictStatus: true}
	if got != want {
		t.Errorf("sessionConfig() = %+v, want %+v", got, want)
	}

	// Two sessions must not share a seed.
	g1 := game.New(got)
	time.Sleep(time.Millisecond)
	g2 := game.New(got)
	if g1.Seed() == g2.Seed() {
		t.Errorf("sessions share seed %d", g1.Seed())
	}
}
