package cmd

import (
	"fmt"
	"os"

	"foundermatch-backend/lib/client"

	"github.com/spf13/cobra"
)

var BaseUrl string

var api client.Client

var rootCmd = &cobra.Command{
	Use:   "foundermatch-cli",
	Short: "foundermatch-cli is a CLI interface for the profiles service.",
}

func Execute() {
	api = client.New(BaseUrl)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
