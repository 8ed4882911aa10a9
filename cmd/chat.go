package cmd

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hr-assistant/internal/encoder"
	"github.com/spigell/hr-assistant/internal/positions"
	"github.com/spigell/hr-assistant/internal/render"
	"github.com/spigell/hr-assistant/internal/session"
)

const (
	CommandCV       = "/cv"
	CommandPosition = "/position"
	CommandClear    = "/clear"
	CommandLanguage = "/lang"
	CommandQuit     = "/quit"
	PromptBack      = "back"
)

var errExit = errors.New("exit requested")

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation with the HR assistant",
	Run: func(_ *cobra.Command, _ []string) {
		chat()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

type chatSession struct {
	conv   *session.Conversation
	out    *render.Renderer
	fs     afero.Fs
	logger *zap.Logger
}

func chat() {
	ctx := context.Background()
	config, logger, client := setup()

	out := render.New(os.Stdout)
	conv, err := newConversation(config, logger, client, func(name string) {
		if p, ok := positions.ByName(name); ok {
			name = p.Label()
		}
		out.Notice("→ " + name)
	})
	if err != nil {
		logger.Fatal("starting a conversation", zap.Error(err))
	}

	cs := &chatSession{conv: conv, out: out, fs: afero.NewOsFs(), logger: logger}
	out.Welcome(conv.Snapshot().Language)

	for {
		if err := cs.step(ctx); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (cs *chatSession) step(ctx context.Context) error {
	strs := cs.conv.Snapshot().Language.Strings()

	input := promptui.Prompt{Label: strs.InputPlaceholder}
	line, err := input.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return errExit
		}
		return err
	}

	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return nil
	case CommandQuit:
		return errExit
	case CommandClear:
		cs.conv.Clear()
		cs.out.Reset()
		cs.out.Notice(strs.Cleared)
		return nil
	case CommandLanguage:
		lang := cs.conv.ToggleLanguage()
		cs.out.Notice(lang.Strings().LanguageSwitched)
		return nil
	case CommandPosition:
		_, err := cs.selectPosition()
		return err
	case CommandCV:
		return cs.submitCV(ctx)
	}

	cs.out.Thinking(cs.conv.Snapshot().Language)
	if err := cs.conv.Send(ctx, line); err != nil {
		return cs.hint(err)
	}
	cs.out.Update(cs.conv.Snapshot())

	return nil
}

// selectPosition reports false when the user went back without choosing.
func (cs *chatSession) selectPosition() (bool, error) {
	strs := cs.conv.Snapshot().Language.Strings()

	list := positions.All()
	items := make([]string, 0, len(list)+1)
	for _, p := range list {
		items = append(items, p.Label())
	}

	prompt := promptui.Select{
		Label: strs.SelectPosition,
		Items: append(items, PromptBack),
	}

	i, selected, err := prompt.Run()
	if err != nil {
		return false, cs.promptErr(err)
	}
	if selected == PromptBack {
		return false, nil
	}

	cs.conv.SelectPosition(list[i].Name)
	return true, nil
}

func (cs *chatSession) submitCV(ctx context.Context) error {
	s := cs.conv.Snapshot()
	strs := s.Language.Strings()

	if !s.CVUploadVisible {
		cs.out.Notice(strs.UploadHidden)
		return nil
	}

	cs.out.Notice(strs.UploadTitle + " (" + strs.AcceptedFormats + ")")

	if s.SelectedPosition == "" {
		ok, err := cs.selectPosition()
		if err != nil || !ok {
			return err
		}
	} else {
		cs.out.Notice("→ " + s.SelectedPosition)
	}

	var file *encoder.File
	pathPrompt := promptui.Prompt{
		Label: strs.FilePathPrompt,
		Validate: func(path string) error {
			f, err := encoder.Open(cs.fs, strings.TrimSpace(path))
			if err != nil {
				return err
			}
			file = f
			return nil
		},
	}
	if _, err := pathPrompt.Run(); err != nil {
		return cs.promptErr(err)
	}

	if !file.Accepted {
		cs.logger.Warn("file extension is not in the accepted list",
			zap.String("file", file.Name),
			zap.Strings("accepted", encoder.AcceptedExtensions),
		)
	}

	cs.conv.SelectFile(file)
	cs.out.Thinking(s.Language)
	if err := cs.conv.SubmitCV(ctx); err != nil {
		return cs.hint(err)
	}
	cs.out.Update(cs.conv.Snapshot())

	return nil
}

// hint turns session precondition errors into on-screen warnings.
func (cs *chatSession) hint(err error) error {
	s := cs.conv.Snapshot()
	strs := s.Language.Strings()

	switch {
	case errors.Is(err, session.ErrBusy):
		cs.out.Warn(strs.Busy)
	case errors.Is(err, session.ErrPreconditionNotMet):
		if s.SelectedPosition == "" && s.Upload.Position == "" {
			cs.out.Warn(strs.NoPositionWarn)
		} else {
			cs.out.Warn(strs.NoFileWarn)
		}
	case errors.Is(err, session.ErrEmptyMessage):
	default:
		return err
	}

	return nil
}

// promptErr lets Ctrl+C inside a nested prompt return to the main input.
func (cs *chatSession) promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		return nil
	}
	if errors.Is(err, promptui.ErrEOF) {
		return errExit
	}
	return err
}
