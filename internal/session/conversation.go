package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hr-assistant/internal/classifier"
	"github.com/spigell/hr-assistant/internal/encoder"
	"github.com/spigell/hr-assistant/internal/locale"
	"github.com/spigell/hr-assistant/internal/logger"
	"github.com/spigell/hr-assistant/internal/transport"
	"github.com/spigell/hr-assistant/internal/utils"
)

const defaultMaxLogLength = 200

var (
	// ErrBusy is returned when a turn is started while another is in flight.
	ErrBusy = errors.New("a turn is already in flight")
	// ErrEmptyMessage is returned for blank questions.
	ErrEmptyMessage = errors.New("empty message")
	// ErrPreconditionNotMet is returned when a CV is submitted without both
	// a file and a position. Nothing is sent and the transcript is unchanged.
	ErrPreconditionNotMet = errors.New("a file and a position are required")

	errEmptyResponse = errors.New("empty response from backend")
)

// Transport is the request/response exchange with the backend.
type Transport interface {
	Chat(ctx context.Context, req transport.ChatRequest) (*transport.ChatResponse, error)
}

// EncodeFunc turns a selected file into an evaluation message.
type EncodeFunc func(f *encoder.File, position string) (string, error)

type Options struct {
	Language      locale.Language
	PreviewLength int
	MaxLogLength  int
	// Encode defaults to encoder.Encode.
	Encode EncodeFunc
	// NewSessionID defaults to random UUIDs.
	NewSessionID func() string
	// OnPositionSelected fires synchronously from SelectPosition.
	OnPositionSelected func(name string)
}

// Conversation applies user actions to a session and runs the resulting
// turns against the backend. It is safe for concurrent use; the state lock is
// never held while a file is read or a request is in flight.
type Conversation struct {
	mu      sync.Mutex
	state   State
	reducer Reducer

	transport Transport
	encode    EncodeFunc
	newID     func() string
	onSelect  func(string)
	logger    *zap.Logger
	maxLogLen int
}

func New(t Transport, log *zap.Logger, opts Options) *Conversation {
	if opts.Encode == nil {
		opts.Encode = encoder.Encode
	}
	if opts.NewSessionID == nil {
		opts.NewSessionID = uuid.NewString
	}
	if opts.Language == "" {
		opts.Language = locale.English
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}

	return &Conversation{
		state: State{
			Language:  opts.Language,
			SessionID: opts.NewSessionID(),
		},
		reducer:   Reducer{PreviewLength: opts.PreviewLength},
		transport: t,
		encode:    opts.Encode,
		newID:     opts.NewSessionID,
		onSelect:  opts.OnPositionSelected,
		logger:    logger.WithFields(log),
		maxLogLen: opts.MaxLogLength,
	}
}

// Snapshot returns a copy of the current state.
func (c *Conversation) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Send runs a plain turn to completion. Backend failures end up in the
// transcript, not in the returned error.
func (c *Conversation) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	prev, intents := c.dispatch(SendMessage{Text: text})
	if len(intents) == 0 {
		if prev.IsLoading {
			return ErrBusy
		}
		return ErrEmptyMessage
	}

	c.run(ctx, intents)
	return nil
}

// SelectPosition sets the position used for the next CV submission.
func (c *Conversation) SelectPosition(name string) {
	_, intents := c.dispatch(SelectPosition{Name: name})
	c.run(context.Background(), intents)
}

// SelectFile sets the file used for the next CV submission.
func (c *Conversation) SelectFile(f *encoder.File) {
	c.dispatch(SelectFile{File: f})
}

// SubmitCV runs an evaluation turn to completion.
func (c *Conversation) SubmitCV(ctx context.Context) error {
	prev, intents := c.dispatch(SubmitCV{})
	if len(intents) == 0 {
		if prev.IsLoading {
			return ErrBusy
		}
		return ErrPreconditionNotMet
	}

	c.run(ctx, intents)
	return nil
}

// Clear empties the conversation. A turn still in flight is abandoned and its
// result discarded.
func (c *Conversation) Clear() {
	prev, _ := c.dispatch(Clear{SessionID: c.newID()})
	if prev.IsLoading {
		c.logger.Info("abandoning turn in flight", zap.Uint64("generation", prev.Generation))
	}
}

// ToggleLanguage switches the language used for requests and new messages.
func (c *Conversation) ToggleLanguage() locale.Language {
	c.dispatch(ToggleLanguage{})
	return c.Snapshot().Language
}

func (c *Conversation) dispatch(ev Event) (State, []Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	next, intents := c.reducer.Reduce(prev, ev)
	c.state = next

	return prev, intents
}

func (c *Conversation) run(ctx context.Context, intents []Intent) {
	for len(intents) > 0 {
		next := intents[0]
		intents = append(intents[1:], c.execute(ctx, next)...)
	}
}

func (c *Conversation) execute(ctx context.Context, in Intent) []Intent {
	switch in := in.(type) {
	case EncodeFile:
		return c.encodeFile(in)
	case Request:
		return c.request(ctx, in)
	case NotifyPositionSelected:
		c.logger.Debug("position selected", zap.String("position", in.Name))
		if c.onSelect != nil {
			c.onSelect(in.Name)
		}
	}

	return nil
}

func (c *Conversation) encodeFile(in EncodeFile) []Intent {
	log := c.logger.With(
		zap.String(logger.FieldTurn, string(TurnCV)),
		zap.String("position", in.Position),
	)
	if in.File != nil {
		log = log.With(
			zap.String("file", in.File.Name),
			zap.String("content_type", in.File.ContentType),
			zap.Bool("accepted_extension", in.File.Accepted),
		)
	}

	encoded, err := c.encode(in.File, in.Position)
	if err != nil {
		log.Warn("reading cv file failed", zap.Error(err))
		_, next := c.dispatch(FileReadFailed{Generation: in.Generation, Err: err})
		return next
	}

	log.Debug("cv file encoded", zap.Int("message_length", len(encoded)))

	name := ""
	if in.File != nil {
		name = in.File.Name
	}

	_, next := c.dispatch(FileEncoded{
		Generation:   in.Generation,
		Filename:     name,
		Encoded:      encoded,
		WrapPosition: in.WrapPosition,
	})
	return next
}

func (c *Conversation) request(ctx context.Context, in Request) []Intent {
	log := logger.WithFields(c.logger, logger.SessionFields(in.Chat.SessionID, in.Chat.Language)...).
		With(zap.String(logger.FieldTurn, string(in.Turn)))

	log.Debug("chat request",
		zap.Int("message_length", utf8.RuneCountInString(in.Chat.Message)),
		zap.String("message_preview", utils.TruncateForLog(in.Chat.Message, c.maxLogLen)),
	)

	resp, err := c.transport.Chat(ctx, in.Chat)
	if err == nil && resp == nil {
		err = errEmptyResponse
	}

	var next []Intent
	var cur State
	if err != nil {
		log.Warn("chat request failed", zap.Error(err))
		cur, next = c.dispatch(TurnFailed{Generation: in.Generation, Turn: in.Turn, Err: err})
	} else {
		log.Debug("chat response",
			zap.Strings("kinds", classifier.Classify(resp.Answer).Kinds()),
			zap.Int("sources", len(resp.SourceDocuments)),
			zap.String("answer_preview", utils.TruncateForLog(resp.Answer, c.maxLogLen)),
		)
		cur, next = c.dispatch(AnswerReceived{Generation: in.Generation, Turn: in.Turn, Response: resp})
	}

	if cur.Generation != in.Generation {
		log.Info("discarding result of abandoned turn",
			zap.Uint64("turn_generation", in.Generation),
			zap.Uint64("session_generation", cur.Generation),
		)
	}

	return next
}
