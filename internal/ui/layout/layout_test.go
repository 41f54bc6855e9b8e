package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Exams", "offline", 100)
	for _, want := range []string{"Edumentor", "Exams", "offline"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooter_DropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: strings.Repeat("x", 200)},
	}
	f := RenderFooter(hints, 80)
	if !strings.Contains(f, "Select") {
		t.Errorf("footer missing first hint: %q", f)
	}
	if strings.Contains(f, "Esc") {
		t.Errorf("overflowing hint should be dropped: %q", f)
	}
}

func TestFrame_BodyGetsRemainingSpace(t *testing.T) {
	var gotW, gotH int
	out := Frame{Title: "Home", Status: "offline"}.Render(100, 30, func(w, h int) string {
		gotW, gotH = w, h
		return "body"
	})
	if gotW != 100 {
		t.Errorf("body width = %d, want 100", gotW)
	}
	if gotH <= 0 || gotH >= 30 {
		t.Errorf("body height = %d, want between header and footer", gotH)
	}
	for _, want := range []string{"Home", "body"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}
