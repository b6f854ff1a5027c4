package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rabbit-hunt/internal/storage"
)

func TestScoreRows(t *testing.T) {
	at := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)
	scores := []storage.ScoreEntry{
		{Score: 30, Won: true, Ticks: 60 * 95, CreatedAt: at},
		{Score: 12, Ticks: 59, CreatedAt: at},
	}

	rows := ScoreRows(scores)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	tests := []struct {
		row  int
		want []string
	}{
		{0, []string{"#1", "30", "yes", "1:35", "Mar 04 15:30"}},
		{1, []string{"#2", "12", "", "0:00", "Mar 04 15:30"}},
	}
	for _, tt := range tests {
		got := rows[tt.row]
		if len(got) != len(tt.want) {
			t.Fatalf("row %d has %d cells, want %d", tt.row, len(got), len(tt.want))
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("row %d cell %d = %q, want %q", tt.row, i, got[i], tt.want[i])
			}
		}
	}

	if rows := ScoreRows(nil); len(rows) != 0 {
		t.Errorf("no scores should give no rows, got %d", len(rows))
	}
}

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks, rate int
		want        string
	}{
		{0, 60, "0:00"},
		{59, 60, "0:00"},
		{60, 60, "0:01"},
		{60 * 75, 60, "1:15"},
		{300, 30, "0:10"},
		{120, 0, "0:02"},
	}
	for _, tt := range tests {
		if got := FormatTicks(tt.ticks, tt.rate); got != tt.want {
			t.Errorf("FormatTicks(%d, %d) = %q, want %q", tt.ticks, tt.rate, got, tt.want)
		}
	}
}

func TestScoreboardLoadsSelectedGame(t *testing.T) {
	registerFakeGame()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{GameID: "fake", Score: 7, Won: true, Ticks: 600})

	m := NewScoreboardModel(store, "fake", 80, 24)
	if m.games[m.gameCursor].ID != "fake" {
		t.Fatalf("cursor on %q, want fake", m.games[m.gameCursor].ID)
	}
	if len(m.scores) != 1 || m.stats == nil || m.stats.Wins != 1 {
		t.Errorf("scores = %+v, stats = %+v", m.scores, m.stats)
	}

	view := m.View()
	if !strings.Contains(view, "HIGH SCORES - Fake") || !strings.Contains(view, "Wins: 1") {
		t.Errorf("view missing title or stats:\n%s", view)
	}
}

func TestScoreboardSwitchesGames(t *testing.T) {
	registerFakeGame()
	m := NewScoreboardModel(nil, "fake", 80, 24)
	if len(m.games) == 0 {
		t.Fatal("no games registered")
	}

	start := m.gameCursor
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if want := (start + 1) % len(m.games); m.gameCursor != want {
		t.Errorf("tab moved cursor to %d, want %d", m.gameCursor, want)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.gameCursor != start {
		t.Errorf("shift+tab moved cursor to %d, want %d", m.gameCursor, start)
	}

	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("a scoreboard without a store should show the empty message")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || next.(ScoreboardModel).View() != "" {
		t.Error("q should quit the scoreboard")
	}
}
