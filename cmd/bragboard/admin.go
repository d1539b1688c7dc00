package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// newAdminCmd groups the actions of the admin dashboard.
func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin actions (announce, broadcast, reported)",
	}

	cmd.AddCommand(newAnnounceCmd())
	cmd.AddCommand(newBroadcastCmd())
	cmd.AddCommand(newReportedCmd())

	return cmd
}

func newAnnounceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "announce <employee-id>",
		Short: "Announce the employee of the month",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			eom, err := a.client.AnnounceEmployeeOfMonth(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatEmployeeOfMonth(eom))
			return nil
		}),
	}
}

func newBroadcastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <message>",
		Short: "Send a notification to everyone",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			n, err := a.client.SendNotification(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Notification %s sent.\n", n.ID)
			return nil
		}),
	}
}

func newReportedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reported",
		Short: "List shoutouts reported by employees",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			items, err := a.client.FetchReportedShoutouts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatFeed(items))
			return nil
		}),
	}
}
