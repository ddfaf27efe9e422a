package cmd

import (
	"fmt"
	"os"

	"foundermatch-backend/cmd/foundermatch-cli/utils"
	"foundermatch-backend/lib/client"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var profilesQuery client.ProfilesQuery

func init() {
	profilesCmd.Flags().IntVar(&profilesQuery.Limit, "limit", 25, "page size")
	profilesCmd.Flags().IntVar(&profilesQuery.Page, "page", 1, "page number")
	profilesCmd.Flags().StringVar(&profilesQuery.Name, "name", "", "filter by name substring")
	profilesCmd.Flags().StringVar(&profilesQuery.Location, "location", "", "filter by location substring")
	profilesCmd.Flags().StringVar(&profilesQuery.Funding, "funding", "", "filter by startup funding substring")
	rootCmd.AddCommand(profilesCmd)
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored profiles.",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := api.Profiles(cmd.Context(), profilesQuery)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"user id", "name", "location", "startup", "funding", "status"})
		for _, record := range result.Data {
			t.AppendRow(table.Row{
				record.UserId,
				record.Name,
				record.Location,
				record.Startup.Name,
				record.Startup.Funding,
				record.RefreshStatus,
			})
		}
		t.Render()
		fmt.Printf("matched %d of %d profiles\n", result.Matched, result.Total)
	},
}
