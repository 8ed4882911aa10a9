package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hr-assistant/internal/encoder"
	"github.com/spigell/hr-assistant/internal/positions"
	"github.com/spigell/hr-assistant/internal/render"
	"github.com/spigell/hr-assistant/internal/utils"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Submit a CV for evaluation against a position",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		evaluate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("position", "p", "", "position to evaluate for. Asked interactively when unset.")
	evaluateCmd.Flags().Bool("dry-run", false, "print what would be sent instead of sending it")
}

func evaluate(cmd *cobra.Command, path string) {
	ctx := context.Background()
	config, logger, client := setup()

	file, err := encoder.Open(afero.NewOsFs(), path)
	if err != nil {
		logger.Fatal("opening cv", zap.Error(err))
	}

	if !file.Accepted {
		logger.Warn("file extension is not in the accepted list",
			zap.String("file", file.Name),
			zap.Strings("accepted", encoder.AcceptedExtensions),
		)
	}

	position, err := resolvePosition(cmd)
	if err != nil {
		logger.Fatal("choosing a position", zap.Error(err))
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		if err := printEvaluation(file, position, config.PreviewLength); err != nil {
			logger.Fatal("encoding cv", zap.Error(err))
		}
		return
	}

	conv, err := newConversation(config, logger, client, nil)
	if err != nil {
		logger.Fatal("starting a conversation", zap.Error(err))
	}

	conv.SelectPosition(position)
	conv.SelectFile(file)
	if err := conv.SubmitCV(ctx); err != nil {
		logger.Fatal("submitting cv", zap.Error(err))
	}

	s := conv.Snapshot()
	render.New(os.Stdout).Transcript(s)

	if s.Error != "" {
		os.Exit(1)
	}
}

func resolvePosition(cmd *cobra.Command) (string, error) {
	name, _ := cmd.Flags().GetString("position")
	if name != "" {
		if p, ok := positions.ByName(name); ok {
			return p.Name, nil
		}
		// The backend may know positions the local catalog does not.
		return name, nil
	}

	prompt := promptui.Select{
		Label: "Select Position",
		Items: positions.Names(),
	}

	_, selected, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return selected, nil
}

func printEvaluation(file *encoder.File, position string, previewLength int) error {
	message, err := encoder.Encode(file, position)
	if err != nil {
		return err
	}

	decoded, err := encoder.Decode(message)
	if err != nil {
		return fmt.Errorf("verifying encoded message: %w", err)
	}

	fmt.Printf("position:      %s\n", decoded.Position)
	fmt.Printf("file:          %s\n", decoded.Filename)
	fmt.Printf("content type:  %s\n", file.ContentType)
	fmt.Printf("size:          %d bytes\n", len(decoded.Data))
	fmt.Printf("message size:  %d bytes\n", len(message))
	fmt.Printf("message:       %s\n", utils.Preview(message, previewLength))

	return nil
}
