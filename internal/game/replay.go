package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
)

// Token is one recorded command in a game history.
type Token byte

const (
	TokenStart   Token = 'S'
	TokenRestart Token = 'N'
	TokenUp      Token = 'U'
	TokenDown    Token = 'D'
	TokenLeft    Token = 'L'
	TokenRight   Token = 'R'
)

// History is the ordered list of commands applied to a game.
// Together with the seed and initial board it reproduces the game exactly.
type History []Token

// String encodes the history compactly, e.g. "SLLURN".
func (h History) String() string {
	var sb strings.Builder
	sb.Grow(len(h))
	for _, t := range h {
		sb.WriteByte(byte(t))
	}
	return sb.String()
}

// Moves returns the number of directional commands in the history.
func (h History) Moves() int {
	n := 0
	for _, t := range h {
		if t != TokenStart && t != TokenRestart {
			n++
		}
	}
	return n
}

// ParseHistory decodes a history string. Whitespace is ignored and
// direction letters are case-insensitive.
func ParseHistory(s string) (History, error) {
	var h History
	for i, r := range strings.ToUpper(s) {
		switch Token(r) {
		case TokenStart, TokenRestart, TokenUp, TokenDown, TokenLeft, TokenRight:
			h = append(h, Token(r))
		case ' ', '\t', '\n', ',':
		default:
			return nil, fmt.Errorf("game: invalid history token %q at %d", r, i)
		}
	}
	return h, nil
}

func tokenFor(dir engine.Direction) Token {
	return Token(dir.Letter())
}

func directionOf(t Token) (engine.Direction, bool) {
	switch t {
	case TokenUp:
		return engine.DirUp, true
	case TokenDown:
		return engine.DirDown, true
	case TokenLeft:
		return engine.DirLeft, true
	case TokenRight:
		return engine.DirRight, true
	}
	return 0, false
}

// Replay re-runs a recorded history on a fresh engine built from seed and
// initial, and returns the final snapshot.
//
// Directional commands are only applied while the game is playing, the same
// way Step gates them. A history that does not begin with a start command
// starts the game implicitly.
func Replay(seed int64, initial engine.Board, h History) engine.Snapshot {
	return ReplayGame(seed, core.DefaultConfig(), initial, h).Snapshot()
}

// ReplayGame is Replay returning the whole Game, so the final position can
// be rendered. cfg only sets the screen size; seed is used as given, zero
// included.
func ReplayGame(seed int64, cfg core.RuntimeConfig, initial engine.Board, h History) *Game {
	g := New(cfg, WithInitialBoard(initial))
	g.seed = seed
	g.eng = engine.New(engine.WithSeed(seed), engine.WithInitialState(initial))

	if len(h) > 0 && h[0] != TokenStart && h[0] != TokenRestart {
		g.eng.Start()
	}

	for _, t := range h {
		switch t {
		case TokenStart:
			g.eng.Start()
			g.last = nil
		case TokenRestart:
			g.eng.Restart()
			g.last = nil
		default:
			dir, ok := directionOf(t)
			if !ok || g.eng.Status() != engine.StatusPlaying {
				continue
			}
			res, err := g.eng.Move(dir)
			if err != nil {
				continue
			}
			g.last = &res
			g.SetBest(g.eng.Score())
		}
	}

	g.history = append(History(nil), h...)
	return g
}
