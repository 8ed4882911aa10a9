// Package render prints the conversation to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/spigell/hr-assistant/internal/locale"
	"github.com/spigell/hr-assistant/internal/positions"
	"github.com/spigell/hr-assistant/internal/session"
)

// Renderer writes transcript entries as they appear. It keeps track of how
// much of the transcript was already printed so that callers can hand it a
// fresh snapshot after every turn.
type Renderer struct {
	out     io.Writer
	printed int

	user    *color.Color
	bot     *color.Color
	err     *color.Color
	faint   *color.Color
	heading *color.Color
}

func New(out io.Writer) *Renderer {
	return &Renderer{
		out:     out,
		user:    color.New(color.FgCyan, color.Bold),
		bot:     color.New(color.FgGreen, color.Bold),
		err:     color.New(color.FgRed),
		faint:   color.New(color.Faint),
		heading: color.New(color.FgMagenta, color.Bold),
	}
}

// Welcome prints the header shown before the first message.
func (r *Renderer) Welcome(lang locale.Language) {
	s := lang.Strings()
	r.heading.Fprintln(r.out, s.Title)
	r.faint.Fprintln(r.out, s.Subtitle)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, s.Welcome)
	r.faint.Fprintln(r.out, s.WelcomeHint)
	fmt.Fprintln(r.out)
}

// Thinking prints the loading indicator.
func (r *Renderer) Thinking(lang locale.Language) {
	r.faint.Fprintln(r.out, lang.Strings().Thinking)
}

// Notice prints a one-line status message.
func (r *Renderer) Notice(msg string) {
	r.faint.Fprintln(r.out, msg)
}

// Warn prints a precondition hint.
func (r *Renderer) Warn(msg string) {
	r.err.Fprintln(r.out, msg)
}

// Reset forgets what was printed, used after the conversation is cleared.
func (r *Renderer) Reset() {
	r.printed = 0
}

// Update prints the messages of s that were not printed yet.
func (r *Renderer) Update(s session.State) {
	if len(s.Messages) < r.printed {
		r.printed = 0
	}

	strs := s.Language.Strings()
	for _, m := range s.Messages[r.printed:] {
		r.message(strs, m)
	}
	r.printed = len(s.Messages)
}

// Transcript prints every message of s.
func (r *Renderer) Transcript(s session.State) {
	r.printed = 0
	r.Update(s)
}

// Positions prints the catalog with its icons.
func (r *Renderer) Positions(list []positions.Position) {
	for _, p := range list {
		fmt.Fprintf(r.out, "  %s  %s\n", p.Label(), r.faint.Sprint(p.ID))
	}
}

func (r *Renderer) message(strs *locale.Strings, m session.Message) {
	switch m.Role {
	case session.RoleUser:
		r.user.Fprintf(r.out, "%s: ", strs.You)
	default:
		r.bot.Fprintf(r.out, "%s: ", strs.Assistant)
	}
	fmt.Fprintln(r.out, m.Content)

	if len(m.Sources) > 0 {
		r.faint.Fprintf(r.out, "  %s\n", strs.Sources)
		for i, src := range m.Sources {
			r.faint.Fprintf(r.out, "  %d. %s\n", i+1, oneLine(src.Question))
			if src.Content != "" {
				r.faint.Fprintf(r.out, "     %s\n", oneLine(src.Content))
			}
		}
	}
	fmt.Fprintln(r.out)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
