package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hr-assistant/internal/render"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ask(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func ask(question string) {
	ctx := context.Background()
	config, logger, client := setup()

	conv, err := newConversation(config, logger, client, nil)
	if err != nil {
		logger.Fatal("starting a conversation", zap.Error(err))
	}

	if err := conv.Send(ctx, question); err != nil {
		logger.Fatal("asking a question", zap.Error(err))
	}

	s := conv.Snapshot()
	render.New(os.Stdout).Transcript(s)

	// The transcript already carries the failure message.
	if s.Error != "" {
		os.Exit(1)
	}
}
