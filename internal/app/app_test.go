package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	ex "github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/feedback"
	"github.com/abhisek/edumentor/internal/quiz"
	"github.com/abhisek/edumentor/internal/screens/home"
)

func testOptions() Options {
	return Options{
		Deps: home.Deps{
			Exams:   ex.NewService(quiz.DefaultCatalog(), feedback.NewRequester(nil), nil),
			Offline: true,
		},
		Status:     "offline",
		SkipSplash: true,
	}
}

// send feeds msg to the model and replays any navigation commands.
func send(m tea.Model, msg tea.Msg) tea.Model {
	m, cmd := m.Update(msg)
	if cmd != nil {
		if next := cmd(); next != nil {
			if _, isBatch := next.(tea.BatchMsg); !isBatch {
				m, _ = m.Update(next)
			}
		}
	}
	return m
}

func TestApp_HeaderAndHomeScreen(t *testing.T) {
	var m tea.Model = newModel(testOptions())
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.(Model).render()
	if !strings.Contains(out, "Edumentor") {
		t.Error("header should contain app name")
	}
	if !strings.Contains(out, "Home") {
		t.Error("header should contain screen title")
	}
}

func TestApp_NavigatesIntoExamsAndBack(t *testing.T) {
	var m tea.Model = newModel(testOptions())
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = send(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	am := m.(Model)
	if am.router.Depth() != 2 || am.router.Active().Title() != "Exams" {
		t.Fatalf("expected exams screen on top, got %q (depth %d)", am.router.Active().Title(), am.router.Depth())
	}

	m = send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if d := m.(Model).router.Depth(); d != 1 {
		t.Errorf("depth after esc = %d, want 1", d)
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	var m tea.Model = newModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestApp_TooSmall(t *testing.T) {
	var m tea.Model = newModel(testOptions())
	m = send(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.(Model).render(), "Terminal too small") {
		t.Error("expected min-size message")
	}
}

func TestApp_SplashFirst(t *testing.T) {
	opts := testOptions()
	opts.SkipSplash = false
	m := newModel(opts)
	if m.router.Active().Title() != "" {
		t.Errorf("expected splash screen first, got %q", m.router.Active().Title())
	}
}
