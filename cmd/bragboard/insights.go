package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/bragboard/internal/dashboard"
)

// newInsightsCmd creates the insights subcommand.
func newInsightsCmd() *cobra.Command {
	var top, days int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show engagement insights computed from the feed",
		Long:  "Rank top contributors, find the most tagged colleague and chart daily activity from the loaded feed.",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			opts := a.insightsOptions()
			if top > 0 {
				opts.TopK = top
			}
			if days > 0 {
				opts.WindowDays = days
			}

			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatInsights(store.Insights(opts)))
			return nil
		}),
	}

	cmd.Flags().IntVar(&top, "top", 0, "Number of top contributors (default from config)")
	cmd.Flags().IntVar(&days, "days", 0, "Days of activity to chart (default from config)")

	return cmd
}

// newDashboardCmd creates the dashboard subcommand.
func newDashboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the home screen",
		Long:  "Load your profile, metrics, employee of the month, leaderboard, activity and the latest shoutouts at once.",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			d, err := dashboard.Load(cmd.Context(), a.client, dashboard.Options{
				Insights: a.insightsOptions(),
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatDashboard(d, limit))
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "Number of recent shoutouts to show")

	return cmd
}

// newEmployeesCmd creates the employees subcommand.
func newEmployeesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List colleagues you can tag",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			fetch := a.client.FetchEmployees
			if all {
				fetch = a.client.FetchUsers
			}
			employees, err := fetch(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatEmployees(employees))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every user (admins only)")

	return cmd
}
