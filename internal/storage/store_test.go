package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.t2048/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".t2048", "scores.db")); err != nil {
		t.Errorf("Database file was not created under home: %v", err)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("2048", 512); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 512 {
		t.Errorf("Expected high score 512 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("2048", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "2048" {
			t.Errorf("scores[%d].GameID = %q, want 2048", i, scores[i].GameID)
		}
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("2048", (i+1)*100)
	}

	scores, err := store.TopScores("2048", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores("2048", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected default limit to return all 5 scores, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("2048", 100)
	store.SaveScore("2048", 300)
	store.SaveScore("2048", 200)

	high, err = store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("2048", 100)
	store.SaveScore("2048", 200)
	store.SaveScore("other", 300)

	if err := store.ClearScores("2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("2048", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Errorf("Other game scores should not be affected by clear")
	}
}

func TestStoreSaveGame(t *testing.T) {
	store := openTestStore(t)

	rec := GameRecord{
		Score:   2316,
		MaxTile: 256,
		Moves:   187,
		Status:  "lose",
		Seed:    42,
		Board:   "2,4,8,16/4,8,16,32/8,16,32,64/16,32,64,256",
		Initial: "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0",
		History: "SLLUR",
	}

	id, err := store.SaveGame(rec)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveGame() id %q is not a UUID: %v", id, err)
	}

	got, err := store.GameByID(id)
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GameByID() returned nil for saved game")
	}

	rec.ID = id
	rec.CreatedAt = got.CreatedAt
	if *got != rec {
		t.Errorf("GameByID() = %+v, want %+v", *got, rec)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreSaveGameWithID(t *testing.T) {
	store := openTestStore(t)

	id := uuid.NewString()
	got, err := store.SaveGame(GameRecord{ID: id, Status: "win", Board: "2048"})
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if got != id {
		t.Errorf("SaveGame() id = %q, want %q", got, id)
	}

	if _, err := store.SaveGame(GameRecord{ID: id, Status: "win"}); err == nil {
		t.Error("expected duplicate id to fail")
	}
	if _, err := store.SaveGame(GameRecord{ID: "not-a-uuid"}); err == nil {
		t.Error("expected invalid id to fail")
	}
}

func TestStoreGameByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GameByID(uuid.NewString())
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("GameByID() = %+v, want nil", got)
	}
}

func TestStoreRecentGames(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := store.SaveGame(GameRecord{Score: i * 10, Status: "lose"})
		if err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
		ids = append(ids, id)
	}

	games, err := store.RecentGames(3)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("Expected 3 games, got %d", len(games))
	}

	// Newest first.
	for i, g := range games {
		if want := ids[len(ids)-1-i]; g.ID != want {
			t.Errorf("games[%d].ID = %s, want %s", i, g.ID, want)
		}
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GameStats()
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	records := []GameRecord{
		{Score: 20000, MaxTile: 2048, Moves: 900, Status: "win"},
		{Score: 1000, MaxTile: 128, Moves: 100, Status: "lose"},
		{Score: 3000, MaxTile: 256, Moves: 200, Status: "lose"},
		{Score: 0, MaxTile: 4, Moves: 0, Status: "playing"},
	}
	for _, r := range records {
		if _, err := store.SaveGame(r); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	stats, err = store.GameStats()
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}

	if stats.GamesCount != 4 {
		t.Errorf("GamesCount = %d, want 4", stats.GamesCount)
	}
	if stats.Wins != 1 || stats.Losses != 2 {
		t.Errorf("Wins/Losses = %d/%d, want 1/2", stats.Wins, stats.Losses)
	}
	if stats.HighScore != 20000 {
		t.Errorf("HighScore = %d, want 20000", stats.HighScore)
	}
	if stats.BestTile != 2048 {
		t.Errorf("BestTile = %d, want 2048", stats.BestTile)
	}
	if stats.AvgScore != 6000 {
		t.Errorf("AvgScore = %v, want 6000", stats.AvgScore)
	}
	if stats.TotalMoves != 1200 {
		t.Errorf("TotalMoves = %d, want 1200", stats.TotalMoves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestStoreClearGames(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{Status: "lose"})
	store.SaveGame(GameRecord{Status: "win"})

	if err := store.ClearGames(); err != nil {
		t.Fatalf("ClearGames() failed: %v", err)
	}

	games, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(games))
	}
}

func TestStoreMigratesGamesWithoutInitial(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE games (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			status TEXT NOT NULL,
			seed INTEGER NOT NULL,
			board TEXT NOT NULL,
			history TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO games (id, score, max_tile, moves, status, seed, board, history)
		VALUES ('0b7e7c1e-2f54-4c1a-9f0e-4d2b8f3a6c11', 12, 8, 3, 'lose', 7, '8', 'SLU');
	`)
	db.Close()
	if err != nil {
		t.Fatalf("creating old schema failed: %v", err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	old, err := store.GameByID("0b7e7c1e-2f54-4c1a-9f0e-4d2b8f3a6c11")
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if old == nil || old.Initial != "" || old.History != "SLU" {
		t.Errorf("old game = %+v, want empty Initial and history SLU", old)
	}

	id, err := store.SaveGame(GameRecord{Status: "win", Initial: "1024,1024,0,0/0,0,0,0/0,0,0,0/0,0,0,0"})
	if err != nil {
		t.Fatalf("SaveGame() after migration failed: %v", err)
	}
	got, err := store.GameByID(id)
	if err != nil || got == nil {
		t.Fatalf("GameByID() = %v, %v", got, err)
	}
	if got.Initial != "1024,1024,0,0/0,0,0,0/0,0,0,0/0,0,0,0" {
		t.Errorf("Initial = %q", got.Initial)
	}

	// Reopening an already migrated database is a no-op.
	store.Close()
	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	reopened.Close()
}
