package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/hr-assistant/internal/encoder"
	"github.com/spigell/hr-assistant/internal/locale"
	"github.com/spigell/hr-assistant/internal/transport"
)

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := State{Messages: make([]Message, 1, 8), SessionID: "s"}
	s.Messages[0] = Message{Role: RoleUser, Content: "hi"}

	next, intents := Reduce(s, SendMessage{Text: "leave policy?"})
	require.Len(t, intents, 1)
	require.Len(t, next.Messages, 2)

	other, _ := Reduce(s, SendMessage{Text: "payday?"})
	assert.Equal(t, "leave policy?", next.Messages[1].Content)
	assert.Equal(t, "payday?", other.Messages[1].Content)
	assert.Len(t, s.Messages, 1)
	assert.False(t, s.IsLoading)
}

func TestReduceSendMessage(t *testing.T) {
	s := State{Language: locale.Vietnamese, SessionID: "abc", Error: "old"}

	next, intents := Reduce(s, SendMessage{Text: "Lương?"})

	assert.True(t, next.IsLoading)
	assert.Empty(t, next.Error)
	assert.Equal(t, []Intent{Request{
		Turn: TurnPlain,
		Chat: transport.ChatRequest{Message: "Lương?", Language: "vi", SessionID: "abc"},
	}}, intents)
}

func TestReduceIgnoresInputWhileLoading(t *testing.T) {
	s := State{IsLoading: true, SelectedPosition: "QA Engineer", Upload: Upload{File: &encoder.File{Name: "cv.txt"}}}

	for _, ev := range []Event{SendMessage{Text: "again"}, SubmitCV{}} {
		next, intents := Reduce(s, ev)
		assert.Empty(t, intents)
		assert.Equal(t, s, next)
	}
}

func TestReduceSubmitCV(t *testing.T) {
	file := &encoder.File{Name: "resume.pdf"}

	tests := []struct {
		name     string
		state    State
		intents  []Intent
		position string
	}{
		{
			name:  "no file",
			state: State{SelectedPosition: "Java Developer", PositionOrigin: OriginSelected, Upload: Upload{Position: "Java Developer"}},
		},
		{
			name:  "no position",
			state: State{Upload: Upload{File: file}},
		},
		{
			name:  "selected position",
			state: State{SelectedPosition: "Java Developer", PositionOrigin: OriginSelected, Upload: Upload{File: file, Position: "Java Developer"}},
			intents: []Intent{EncodeFile{
				File:     file,
				Position: "Java Developer",
			}},
			position: "Java Developer",
		},
		{
			name:  "extracted position",
			state: State{SelectedPosition: "Data Engineer", PositionOrigin: OriginExtracted, Upload: Upload{File: file}},
			intents: []Intent{EncodeFile{
				File:         file,
				Position:     "Data Engineer",
				WrapPosition: "Data Engineer",
			}},
			position: "Data Engineer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, intents := Reduce(tt.state, SubmitCV{})
			assert.Equal(t, tt.intents, intents)
			if tt.intents == nil {
				assert.Equal(t, tt.state, next)
				return
			}
			assert.True(t, next.IsLoading)
			assert.Equal(t, Upload{}, next.Upload)
			assert.Equal(t, tt.position, next.SelectedPosition)
		})
	}
}

func TestReduceDropsStaleResults(t *testing.T) {
	s := State{Generation: 3, IsLoading: true}
	resp := &transport.ChatResponse{Answer: "AVAILABLE POSITIONS"}

	for _, ev := range []Event{
		AnswerReceived{Generation: 2, Turn: TurnPlain, Response: resp},
		TurnFailed{Generation: 2, Turn: TurnPlain, Err: errors.New("timeout")},
		FileEncoded{Generation: 2, Filename: "cv.txt", Encoded: "x"},
		FileReadFailed{Generation: 2, Err: errors.New("gone")},
	} {
		next, intents := Reduce(s, ev)
		assert.Empty(t, intents, "%T", ev)
		assert.Equal(t, s, next, "%T", ev)
	}
}

func TestReduceAnswerReceived(t *testing.T) {
	tests := []struct {
		name     string
		turn     TurnKind
		visible  bool
		answer   string
		want     bool
		position string
		origin   PositionOrigin
	}{
		{name: "plain answer", turn: TurnPlain, answer: "12 days", want: false},
		{name: "plain answer keeps visibility", turn: TurnPlain, visible: true, answer: "12 days", want: true},
		{name: "position list", turn: TurnPlain, answer: "📋 AVAILABLE POSITIONS", want: true},
		{name: "evaluation marker on plain turn", turn: TurnPlain, answer: "CV EVALUATION", want: false},
		{name: "extracted position", turn: TurnPlain, answer: "Position: Java Developer\n", position: "Java Developer", origin: OriginExtracted},
		{name: "cv answer hides upload", turn: TurnCV, visible: true, answer: "KẾT QUẢ ĐÁNH GIÁ", want: false},
		{name: "cv answer with position list hides upload", turn: TurnCV, visible: true, answer: "AVAILABLE POSITIONS", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{IsLoading: true, CVUploadVisible: tt.visible, Error: "old"}
			next, intents := Reduce(s, AnswerReceived{Turn: tt.turn, Response: &transport.ChatResponse{Answer: tt.answer}})

			assert.Empty(t, intents)
			assert.False(t, next.IsLoading)
			assert.Empty(t, next.Error)
			assert.Equal(t, tt.want, next.CVUploadVisible)
			assert.Equal(t, tt.position, next.SelectedPosition)
			assert.Equal(t, tt.origin, next.PositionOrigin)
			require.Len(t, next.Messages, 1)
			assert.Equal(t, Message{Role: RoleBot, Content: tt.answer}, next.Messages[0])
		})
	}
}

func TestReduceFileEncoded(t *testing.T) {
	s := State{IsLoading: true, SessionID: "abc"}

	next, intents := Reducer{PreviewLength: 5}.Reduce(s, FileEncoded{
		Filename:     "cv.txt",
		Encoded:      "Evaluate my CV for QA Engineer | cv.txt | eA==",
		WrapPosition: "QA Engineer",
	})

	require.Len(t, next.Messages, 1)
	assert.Equal(t, "📎 Submitted CV: cv.txt\n\nContent:\nEvalu...", next.Messages[0].Content)
	assert.Equal(t, []Intent{Request{
		Turn: TurnCV,
		Chat: transport.ChatRequest{
			Message:   "Evaluate my CV specifically for QA Engineer position:\nEvaluate my CV for QA Engineer | cv.txt | eA==",
			Language:  "en",
			SessionID: "abc",
		},
	}}, intents)
}

func TestReduceClear(t *testing.T) {
	s := State{
		Messages:         []Message{{Role: RoleUser, Content: "hi"}},
		IsLoading:        true,
		Error:            "timeout",
		Language:         locale.Vietnamese,
		CVUploadVisible:  true,
		SelectedPosition: "QA Engineer",
		PositionOrigin:   OriginExtracted,
		Upload:           Upload{File: &encoder.File{Name: "cv.txt"}},
		Generation:       4,
		SessionID:        "old",
	}

	next, intents := Reduce(s, Clear{SessionID: "new"})

	assert.Empty(t, intents)
	assert.Equal(t, State{
		Language:   locale.Vietnamese,
		Generation: 5,
		SessionID:  "new",
	}, next)
}

func TestReduceSelectPosition(t *testing.T) {
	next, intents := Reduce(State{}, SelectPosition{Name: " Java Developer "})
	assert.Equal(t, "Java Developer", next.SelectedPosition)
	assert.Equal(t, "Java Developer", next.Upload.Position)
	assert.Equal(t, OriginSelected, next.PositionOrigin)
	assert.Equal(t, []Intent{NotifyPositionSelected{Name: "Java Developer"}}, intents)

	next, _ = Reduce(next, SelectPosition{})
	assert.Empty(t, next.SelectedPosition)
	assert.Equal(t, OriginNone, next.PositionOrigin)
}

func TestReduceToggleLanguage(t *testing.T) {
	next, _ := Reduce(State{}, ToggleLanguage{})
	assert.Equal(t, locale.Vietnamese, next.Language)

	next, _ = Reduce(next, ToggleLanguage{})
	assert.Equal(t, locale.English, next.Language)
}
