package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (backend %s)\n", app, version, apiURL())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func apiURL() string {
	config, err := getConfig()
	if err != nil || config.APIURL == "" {
		return "unconfigured"
	}
	return config.APIURL
}
