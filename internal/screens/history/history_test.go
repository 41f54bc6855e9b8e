package history

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func load(t *testing.T, s *Screen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryScreen_Empty(t *testing.T) {
	st := openStore(t)
	s := New(st.EventRepo())
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading text before data arrives")
	}
	load(t, s)
	if !strings.Contains(s.View(100, 30), "No attempts yet") {
		t.Error("expected empty-state text")
	}
}

func TestHistoryScreen_ListsAttempts(t *testing.T) {
	st := openStore(t)
	repo := st.EventRepo()
	err := repo.AppendAttempt(context.Background(), store.AttemptEventData{
		AttemptID: "a1",
		QuizID:    "algebra-midterm",
		QuizTitle: "Algebra Mid-Term",
		Score:     2,
		Total:     3,
		Tier:      "good",
		Answers: []store.AttemptAnswer{
			{Position: 0, Topic: "Linear Equations", Selected: 1, Correct: true},
			{Position: 1, Topic: "Quadratic Equations", Selected: 0, Correct: false},
			{Position: 2, Topic: "Functions", Selected: 2, Correct: true},
		},
		StrongTopic:    "Linear Equations",
		WeakTopic:      "Quadratic Equations",
		FeedbackSource: "remote",
	})
	if err != nil {
		t.Fatalf("append attempt: %v", err)
	}

	s := New(repo)
	load(t, s)

	v := s.View(120, 40)
	for _, want := range []string{"Algebra Mid-Term", "2/3", "Topic accuracy", "Functions"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(v, "Review: Quadratic") {
		t.Error("details should be collapsed by default")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 40), "Review: Quadratic Equations") {
		t.Error("expected expanded details after enter")
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Quadratic Equations", 10); got != "Quadratic…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}

func TestHistoryScreen_ReloadPicksUpNewAttempts(t *testing.T) {
	st := openStore(t)
	repo := st.EventRepo()
	s := New(repo)
	load(t, s)

	err := repo.AppendAttempt(context.Background(), store.AttemptEventData{
		AttemptID: "a2", QuizID: "algebra-midterm", QuizTitle: "Algebra Mid-Term",
		Score: 3, Total: 3, Tier: "excellent",
	})
	if err != nil {
		t.Fatalf("append attempt: %v", err)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("r should reload")
	}
	s.Update(cmd())
	if !strings.Contains(s.View(120, 40), "3/3") {
		t.Error("reloaded view should list the new attempt")
	}
}
