package cmd

import (
	"fmt"
	"os"
	"time"

	"foundermatch-backend/cmd/foundermatch-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func formatError(message *string) string {
	if message == nil {
		return "-"
	}
	return *message
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show aggregate refresh state of the profile collection.",
	Run: func(cmd *cobra.Command, args []string) {
		report, err := api.Status(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		stats := utils.NewTable()
		stats.AppendHeader(table.Row{"metric", "count"})
		stats.AppendRow(table.Row{"total", report.TotalProfiles})
		stats.AppendRow(table.Row{"never refreshed", report.RefreshStats.NeverRefreshed})
		stats.AppendRow(table.Row{"success", report.RefreshStats.RefreshedSuccessfully})
		stats.AppendRow(table.Row{"failed", report.RefreshStats.FailedRefreshes})
		stats.AppendRow(table.Row{"pending", report.RefreshStats.PendingRefreshes})
		stats.AppendRow(table.Row{"last 24h", report.RefreshStats.Last24Hours})
		stats.AppendRow(table.Row{"last 7d", report.RefreshStats.Last7Days})
		stats.Render()

		if len(report.RecentRefreshes) > 0 {
			recent := utils.NewTable()
			recent.AppendHeader(table.Row{"user id", "name", "refreshed", "status", "error"})
			for _, entry := range report.RecentRefreshes {
				recent.AppendRow(table.Row{
					entry.UserId,
					entry.Name,
					formatTime(entry.LastRefreshed),
					entry.RefreshStatus,
					formatError(entry.RefreshError),
				})
			}
			recent.Render()
		}

		if len(report.MostFailedAttempts) > 0 {
			failed := utils.NewTable()
			failed.AppendHeader(table.Row{"user id", "name", "attempts", "error", "refreshed"})
			for _, entry := range report.MostFailedAttempts {
				failed.AppendRow(table.Row{
					entry.UserId,
					entry.Name,
					entry.RefreshAttempts,
					formatError(entry.RefreshError),
					formatTime(entry.LastRefreshed),
				})
			}
			failed.Render()
		}
	},
}
