package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var refreshBatchSize int
var refreshUserId string

func init() {
	refreshCmd.Flags().IntVar(&refreshBatchSize, "batch-size", 100, "maximum number of profiles to refresh")
	refreshCmd.Flags().StringVar(&refreshUserId, "user-id", "", "refresh only this profile")
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run a refresh batch and report the outcome.",
	Run: func(cmd *cobra.Command, args []string) {
		report, err := api.Refresh(cmd.Context(), refreshBatchSize, refreshUserId)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		if report.Message != "" {
			fmt.Println(report.Message)
			return
		}
		fmt.Printf("total: %d updated: %d failed: %d\n", report.Total, report.Updated, report.Failed)
		for _, message := range report.Errors {
			fmt.Println(message)
		}
	},
}
