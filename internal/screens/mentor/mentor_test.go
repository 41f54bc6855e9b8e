package mentor

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edumentor/internal/llm"
	mentorchat "github.com/abhisek/edumentor/internal/mentor"
	"github.com/abhisek/edumentor/internal/router"
	"github.com/abhisek/edumentor/internal/ui/components"
)

func typeText(s *MentorScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func runAsk(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch command")
	}
	for _, c := range batch {
		if msg, ok := c().(replyMsg); ok {
			return msg
		}
	}
	t.Fatal("no reply message in batch")
	return replyMsg{}
}

func TestMentorScreen_SendAndReceive(t *testing.T) {
	gen := llm.NewMockTextGenerator().Reply("Try factoring first.")
	s := New(mentorchat.New(gen, 0))

	typeText(s, "How do I solve x^2-4=0?")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.waiting {
		t.Error("expected waiting state after send")
	}
	if s.input.Value() != "" {
		t.Error("input should be cleared after send")
	}

	reply := runAsk(t, cmd)
	s.Update(reply)

	if s.waiting {
		t.Error("expected waiting cleared after reply")
	}
	v := s.View(100, 40)
	for _, want := range []string{"How do I solve x^2-4=0?", "Try factoring first."} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if gen.Calls()[0].Prompt != "How do I solve x^2-4=0?" {
		t.Errorf("prompt = %q", gen.Calls()[0].Prompt)
	}
}

func TestMentorScreen_FailureShowsUnavailable(t *testing.T) {
	gen := llm.NewMockTextGenerator().Fail(errors.New("down"))
	s := New(mentorchat.New(gen, 0))

	typeText(s, "hello")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(runAsk(t, cmd))

	if !strings.Contains(s.View(100, 40), "couldn't reach the mentor") {
		t.Error("expected unavailable message in transcript")
	}
}

func TestMentorScreen_NoSendWhileWaiting(t *testing.T) {
	gen := llm.NewMockTextGenerator().Reply("a")
	s := New(mentorchat.New(gen, 0))

	typeText(s, "one")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	typeText(s, "two")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command while a reply is pending")
	}
}

func TestMentorScreen_EmptyInputIgnored(t *testing.T) {
	s := New(mentorchat.New(llm.NewMockTextGenerator(), 0))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil || s.waiting {
		t.Error("blank input should not be sent")
	}
}

func TestMentorScreen_ResetConversation(t *testing.T) {
	gen := llm.NewMockTextGenerator().Reply("a")
	conv := mentorchat.New(gen, 0)
	s := New(conv)

	typeText(s, "q")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(runAsk(t, cmd))
	if conv.Turns() != 1 {
		t.Fatalf("turns = %d, want 1", conv.Turns())
	}

	s.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	if conv.Turns() != 0 {
		t.Error("conversation should be reset")
	}
	if len(s.transcript) != 1 {
		t.Errorf("transcript should hold only the greeting, got %d lines", len(s.transcript))
	}
}

func TestMentorScreen_EscPops(t *testing.T) {
	s := New(mentorchat.New(nil, 0))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestMentorScreen_SpinnerStopsWhenIdle(t *testing.T) {
	s := New(mentorchat.New(nil, 0))
	_, cmd := s.Update(components.SpinnerTickMsg{})
	if cmd != nil {
		t.Error("spinner should not tick while idle")
	}
}

func TestMentorScreen_LeaveAbandonsPendingQuestion(t *testing.T) {
	gen := llm.NewMockTextGenerator().Reply("never delivered")
	gen.Block = make(chan struct{})
	conv := mentorchat.New(gen, 0)
	s := New(conv)

	typeText(s, "still there?")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Leave()

	reply := runAsk(t, cmd)
	if reply.Err == nil {
		t.Fatal("expected the abandoned question to fail")
	}
	if conv.Turns() != 0 {
		t.Errorf("turns = %d, want 0", conv.Turns())
	}
}
