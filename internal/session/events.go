package session

import (
	"github.com/spigell/hr-assistant/internal/encoder"
	"github.com/spigell/hr-assistant/internal/transport"
)

// Event is an input to Reduce.
type Event interface {
	event()
}

// SendMessage starts a plain turn.
type SendMessage struct {
	Text string
}

// SelectPosition picks a position in the upload affordance.
type SelectPosition struct {
	Name string
}

// SelectFile picks the file for the next submission.
type SelectFile struct {
	File *encoder.File
}

// SubmitCV starts an evaluation turn with the selected file and position.
type SubmitCV struct{}

// FileEncoded reports that the file of a CV turn was encoded.
type FileEncoded struct {
	Generation   uint64
	Filename     string
	Encoded      string
	WrapPosition string
}

// FileReadFailed reports that the file of a CV turn could not be read.
type FileReadFailed struct {
	Generation uint64
	Err        error
}

// AnswerReceived reports a successful exchange with the backend.
type AnswerReceived struct {
	Generation uint64
	Turn       TurnKind
	Response   *transport.ChatResponse
}

// TurnFailed reports a failed exchange with the backend.
type TurnFailed struct {
	Generation uint64
	Turn       TurnKind
	Err        error
}

// Clear empties the conversation and starts a new backend session.
type Clear struct {
	SessionID string
}

// ToggleLanguage switches between English and Vietnamese.
type ToggleLanguage struct{}

func (SendMessage) event()    {}
func (SelectPosition) event() {}
func (SelectFile) event()     {}
func (SubmitCV) event()       {}
func (FileEncoded) event()    {}
func (FileReadFailed) event() {}
func (AnswerReceived) event() {}
func (TurnFailed) event()     {}
func (Clear) event()          {}
func (ToggleLanguage) event() {}

// Intent is a side effect requested by Reduce.
type Intent interface {
	intent()
}

// EncodeFile asks for the file to be read and encoded for position.
type EncodeFile struct {
	Generation   uint64
	File         *encoder.File
	Position     string
	WrapPosition string
}

// Request asks for a message to be sent to the backend.
type Request struct {
	Generation uint64
	Turn       TurnKind
	Chat       transport.ChatRequest
}

// NotifyPositionSelected asks for the selection callback to fire.
type NotifyPositionSelected struct {
	Name string
}

func (EncodeFile) intent()             {}
func (Request) intent()                {}
func (NotifyPositionSelected) intent() {}
