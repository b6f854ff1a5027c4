package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{GameID: "hunt", Score: 30, Won: true, Ticks: 900}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("hunt")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score 30 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "hunt", Score: 12, Ticks: 400},
		{GameID: "hunt", Score: 30, Won: true, Ticks: 1500},
		{GameID: "hunt", Score: 7, Ticks: 200},
		{GameID: "classic", Score: 50, Ticks: 3000},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%+v) failed: %v", r, err)
		}
	}

	scores, err := store.TopScores("hunt", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{30, 12, 7}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if !scores[0].Won || scores[0].Ticks != 1500 {
		t.Errorf("top entry = %+v, want won run of 1500 ticks", scores[0])
	}
	if scores[1].Won {
		t.Error("second entry should not be marked won")
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	classic, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic score, got %d", len(classic))
	}
}

func TestStoreTiesRankShorterRunFirst(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "hunt", Score: 30, Won: true, Ticks: 2000})
	store.SaveRun(Run{GameID: "hunt", Score: 30, Won: true, Ticks: 800})

	scores, err := store.TopScores("hunt", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Ticks != 800 {
		t.Errorf("Expected the faster win first, got %+v", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{GameID: "hunt", Score: (i + 1) * 5})
	}

	scores, err := store.TopScores("hunt", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 25 || scores[1].Score != 20 || scores[2].Score != 15 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limits fall back to ten.
	scores, err = store.TopScores("hunt", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("hunt")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveRun(Run{GameID: "hunt", Score: 10})
	store.SaveRun(Run{GameID: "hunt", Score: 25})
	store.SaveRun(Run{GameID: "hunt", Score: 17})

	high, err = store.HighScore("hunt")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 25 {
		t.Errorf("Expected high score of 25, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "hunt", Score: 10})
	store.SaveRun(Run{GameID: "hunt", Score: 20})
	store.SaveRun(Run{GameID: "classic", Score: 30})

	if err := store.ClearScores("hunt"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	huntScores, _ := store.TopScores("hunt", 10)
	if len(huntScores) != 0 {
		t.Errorf("Expected 0 hunt scores after clear, got %d", len(huntScores))
	}

	classicScores, _ := store.TopScores("classic", 10)
	if len(classicScores) != 1 {
		t.Errorf("Classic scores should not be affected by clearing hunt")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("hunt")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(Run{GameID: "hunt", Score: 30, Won: true, Ticks: 1000})
	store.SaveRun(Run{GameID: "hunt", Score: 10, Ticks: 300})
	store.SaveRun(Run{GameID: "hunt", Score: 20, Ticks: 600})

	stats, err := store.GetGameStats("hunt")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Wins != 1 || stats.HighScore != 30 || stats.TotalScore != 60 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, want 20", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreRejectsEmptyGameID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{Score: 5}); err == nil {
		t.Error("SaveRun() without game ID should fail")
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			//nolint:errcheck // Counted below
			store.SaveRun(Run{GameID: "hunt", Score: score})
		}(i + 1)
	}
	wg.Wait()

	stats, err := store.GetGameStats("hunt")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 8 {
		t.Errorf("Expected 8 saved runs, got %d", stats.GamesCount)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/deep/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "nested", "deep", "scores.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}
