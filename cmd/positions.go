package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hr-assistant/internal/locale"
	"github.com/spigell/hr-assistant/internal/positions"
	"github.com/spigell/hr-assistant/internal/render"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List the positions a CV can be evaluated for",
	Run: func(cmd *cobra.Command, _ []string) {
		listPositions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(positionsCmd)

	positionsCmd.Flags().BoolP("remote", "r", false, "ask the backend for its position requirements")
}

func listPositions(cmd *cobra.Command) {
	remote, _ := cmd.Flags().GetBool("remote")
	if !remote {
		render.New(os.Stdout).Positions(positions.All())
		return
	}

	config, logger, client := setup()

	list, err := client.JobPositions(context.Background())
	if err != nil {
		logger.Fatal("getting job positions", zap.Error(err))
	}

	logger.Debug("got job positions", zap.Int("count", len(list)))

	vietnamese := config.Language == string(locale.Vietnamese)
	for _, p := range list {
		name := p.Name
		if vietnamese && p.NameVI != "" {
			name = p.NameVI
		}
		if local, ok := positions.ByID(p.Key); ok {
			name = local.Icon + " " + name
		}

		fmt.Printf("%s (%s)\n", name, p.Key)
		if p.Description != "" {
			fmt.Printf("  %s\n", p.Description)
		}
		if len(p.MustHave) > 0 {
			fmt.Printf("  must have: %s\n", strings.Join(p.MustHave, ", "))
		}
		if len(p.NiceToHave) > 0 {
			fmt.Printf("  nice to have: %s\n", strings.Join(p.NiceToHave, ", "))
		}
		if p.MinExperience != "" {
			fmt.Printf("  min experience: %s\n", p.MinExperience)
		}
	}
}
