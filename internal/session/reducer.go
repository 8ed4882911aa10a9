package session

import (
	"strings"

	"github.com/spigell/hr-assistant/internal/classifier"
	"github.com/spigell/hr-assistant/internal/encoder"
	"github.com/spigell/hr-assistant/internal/transport"
	"github.com/spigell/hr-assistant/internal/utils"
)

// DefaultPreviewLength bounds the payload excerpt recorded for a CV submission.
const DefaultPreviewLength = 500

// Reducer holds the settings transitions depend on.
type Reducer struct {
	PreviewLength int
}

// Reduce applies ev to s with default settings.
func Reduce(s State, ev Event) (State, []Intent) {
	return Reducer{}.Reduce(s, ev)
}

// Reduce returns the state that follows s after ev, and the side effects the
// caller must perform. It never mutates s.
func (r Reducer) Reduce(s State, ev Event) (State, []Intent) {
	switch ev := ev.(type) {
	case SendMessage:
		return sendMessage(s, ev)
	case SelectPosition:
		return selectPosition(s, ev)
	case SelectFile:
		s.Upload.File = ev.File
		return s, nil
	case SubmitCV:
		return submitCV(s)
	case FileEncoded:
		return r.fileEncoded(s, ev)
	case FileReadFailed:
		if ev.Generation != s.Generation || !s.IsLoading {
			return s, nil
		}
		return fail(s, TurnCV, ev.Err), nil
	case AnswerReceived:
		return answerReceived(s, ev)
	case TurnFailed:
		if ev.Generation != s.Generation || !s.IsLoading {
			return s, nil
		}
		return fail(s, ev.Turn, ev.Err), nil
	case Clear:
		return reset(s, ev), nil
	case ToggleLanguage:
		s.Language = s.lang().Toggle()
		return s, nil
	default:
		return s, nil
	}
}

func sendMessage(s State, ev SendMessage) (State, []Intent) {
	if s.IsLoading || strings.TrimSpace(ev.Text) == "" {
		return s, nil
	}

	s = s.appendMessage(Message{Role: RoleUser, Content: ev.Text})
	s.Error = ""
	s.IsLoading = true

	return s, []Intent{Request{
		Generation: s.Generation,
		Turn:       TurnPlain,
		Chat:       s.chatRequest(ev.Text),
	}}
}

func selectPosition(s State, ev SelectPosition) (State, []Intent) {
	name := strings.TrimSpace(ev.Name)

	s.SelectedPosition = name
	s.Upload.Position = name
	s.PositionOrigin = OriginSelected
	if name == "" {
		s.PositionOrigin = OriginNone
	}

	return s, []Intent{NotifyPositionSelected{Name: name}}
}

func submitCV(s State) (State, []Intent) {
	if s.IsLoading {
		return s, nil
	}

	position := s.Upload.Position
	if position == "" {
		position = s.SelectedPosition
	}
	if s.Upload.File == nil || position == "" {
		return s, nil
	}

	// A position read out of an answer was chosen independently of the
	// upload, so the backend is told about it explicitly.
	wrap := ""
	if s.PositionOrigin == OriginExtracted && s.SelectedPosition != "" {
		wrap = s.SelectedPosition
	}

	file := s.Upload.File
	s.Upload = Upload{}
	s.Error = ""
	s.IsLoading = true

	return s, []Intent{EncodeFile{
		Generation:   s.Generation,
		File:         file,
		Position:     position,
		WrapPosition: wrap,
	}}
}

func (r Reducer) fileEncoded(s State, ev FileEncoded) (State, []Intent) {
	if ev.Generation != s.Generation || !s.IsLoading {
		return s, nil
	}

	limit := r.PreviewLength
	if limit <= 0 {
		limit = DefaultPreviewLength
	}

	summary := s.lang().Strings().CVSummary(ev.Filename, utils.Preview(ev.Encoded, limit))
	s = s.appendMessage(Message{Role: RoleUser, Content: summary})

	message := ev.Encoded
	if ev.WrapPosition != "" {
		message = encoder.WrapForPosition(ev.WrapPosition, ev.Encoded)
	}

	return s, []Intent{Request{
		Generation: s.Generation,
		Turn:       TurnCV,
		Chat:       s.chatRequest(message),
	}}
}

func answerReceived(s State, ev AnswerReceived) (State, []Intent) {
	if ev.Generation != s.Generation || !s.IsLoading {
		return s, nil
	}

	resp := ev.Response
	if resp == nil {
		resp = &transport.ChatResponse{}
	}

	s = s.appendMessage(Message{
		Role:    RoleBot,
		Content: resp.Answer,
		Sources: sourcesFrom(resp.SourceDocuments),
	})

	switch ev.Turn {
	case TurnCV:
		s.CVUploadVisible = false
	default:
		c := classifier.Classify(resp.Answer)
		if c.IsPositionList {
			s.CVUploadVisible = true
		}
		if c.HasPosition {
			s.SelectedPosition = c.Position
			s.PositionOrigin = OriginExtracted
		}
	}

	s.Error = ""
	s.IsLoading = false

	return s, nil
}

func fail(s State, turn TurnKind, err error) State {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}

	strs := s.lang().Strings()
	content := strs.ChatFailure(detail)
	if turn == TurnCV {
		content = strs.CVFailure(detail)
	}

	s = s.appendMessage(Message{Role: RoleBot, Content: content})
	s.Error = detail
	s.IsLoading = false

	return s
}

func reset(s State, ev Clear) State {
	s.Messages = nil
	s.Error = ""
	s.IsLoading = false
	s.CVUploadVisible = false
	s.SelectedPosition = ""
	s.PositionOrigin = OriginNone
	s.Upload = Upload{}
	s.Generation++
	if ev.SessionID != "" {
		s.SessionID = ev.SessionID
	}

	return s
}

func (s State) chatRequest(message string) transport.ChatRequest {
	return transport.ChatRequest{
		Message:   message,
		Language:  s.lang().String(),
		SessionID: s.SessionID,
	}
}

func sourcesFrom(docs []transport.Source) []Source {
	if len(docs) == 0 {
		return nil
	}

	sources := make([]Source, 0, len(docs))
	for _, d := range docs {
		sources = append(sources, Source{Question: d.Question, Content: d.Content})
	}
	return sources
}
