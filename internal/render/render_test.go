package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/spigell/hr-assistant/internal/locale"
	"github.com/spigell/hr-assistant/internal/positions"
	"github.com/spigell/hr-assistant/internal/session"
)

func init() {
	color.NoColor = true
}

func TestUpdatePrintsOnlyNewMessages(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	s := session.State{Messages: []session.Message{
		{Role: session.RoleUser, Content: "What is the leave policy?"},
		{Role: session.RoleBot, Content: "You get 12 days...", Sources: []session.Source{
			{Question: "How many\nleave days?", Content: "12 days per year"},
		}},
	}}
	r.Update(s)

	want := "You: What is the leave policy?\n\n" +
		"HR Assistant: You get 12 days...\n" +
		"  Sources:\n" +
		"  1. How many leave days?\n" +
		"     12 days per year\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}

	buf.Reset()
	s.Messages = append(s.Messages, session.Message{Role: session.RoleUser, Content: "Thanks"})
	r.Update(s)

	if got := buf.String(); got != "You: Thanks\n\n" {
		t.Fatalf("expected only the new message, got %q", got)
	}
}

func TestUpdateAfterClearStartsOver(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Update(session.State{Messages: []session.Message{
		{Role: session.RoleUser, Content: "a"},
		{Role: session.RoleBot, Content: "b"},
	}})
	buf.Reset()

	r.Update(session.State{
		Language: locale.Vietnamese,
		Messages: []session.Message{{Role: session.RoleUser, Content: "xin chào"}},
	})

	if got := buf.String(); got != "Bạn: xin chào\n\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPositions(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Positions(positions.All())

	out := buf.String()
	for _, p := range positions.All() {
		if !strings.Contains(out, p.Label()) {
			t.Fatalf("position %q missing from %q", p.Name, out)
		}
	}
}

func TestWelcome(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Welcome(locale.English)

	if !strings.HasPrefix(buf.String(), locale.English.Strings().Title+"\n") {
		t.Fatalf("welcome should start with the title, got %q", buf.String())
	}
}
