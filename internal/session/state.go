// Package session owns the conversation with the HR assistant: the transcript,
// the CV upload affordance and the position chosen for evaluation.
//
// State changes go through Reduce, a pure transition function that returns
// the next State and the side effects (intents) the caller has to perform.
// Conversation performs those intents against a real transport and feeds the
// outcomes back as events.
package session

import (
	"slices"

	"github.com/spigell/hr-assistant/internal/encoder"
	"github.com/spigell/hr-assistant/internal/locale"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Source is a supporting citation attached to a bot message.
type Source struct {
	Question string
	Content  string
}

// Message is one transcript entry. Content may carry light markup and is
// rendered as-is.
type Message struct {
	Role    Role
	Content string
	Sources []Source
}

// TurnKind distinguishes plain questions from CV evaluations.
type TurnKind string

const (
	TurnPlain TurnKind = "plain"
	TurnCV    TurnKind = "cv"
)

// PositionOrigin records how SelectedPosition was set.
type PositionOrigin int

const (
	OriginNone PositionOrigin = iota
	// OriginSelected means the user picked the position explicitly.
	OriginSelected
	// OriginExtracted means the position was read out of a bot answer.
	OriginExtracted
)

// Upload is what the upload affordance holds for the next submission.
type Upload struct {
	File     *encoder.File
	Position string
}

// State is the whole session. The zero value is an empty English session.
type State struct {
	Messages  []Message
	IsLoading bool
	// Error is the last failure, cleared by the next successful turn.
	Error    string
	Language locale.Language

	CVUploadVisible  bool
	SelectedPosition string
	PositionOrigin   PositionOrigin
	Upload           Upload

	// Generation changes on every clear; results of turns started in an
	// older generation are dropped.
	Generation uint64
	SessionID  string
}

// Clone returns a copy that shares no mutable memory with s.
func (s State) Clone() State {
	s.Messages = slices.Clone(s.Messages)
	for i := range s.Messages {
		s.Messages[i].Sources = slices.Clone(s.Messages[i].Sources)
	}
	return s
}

func (s State) lang() locale.Language {
	if s.Language == "" {
		return locale.English
	}
	return s.Language
}

func (s State) appendMessage(m Message) State {
	s.Messages = append(slices.Clip(s.Messages), m)
	return s
}
