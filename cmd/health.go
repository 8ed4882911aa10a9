package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is up and its knowledge base is loaded",
	Run: func(_ *cobra.Command, _ []string) {
		health()
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func health() {
	_, logger, client := setup()

	status, err := client.Health(context.Background())
	if err != nil {
		logger.Fatal("checking backend health", zap.Error(err), zap.String("api_url", client.APIURL))
	}

	fmt.Printf("%s: %s (rag ready: %t)\n", status.Service, status.Status, status.RAGReady)

	if !status.RAGReady {
		logger.Warn("backend is up but the knowledge base is not loaded")
	}
}
