package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gauthierbraillon/bragboard/internal/model"
	"github.com/gauthierbraillon/bragboard/internal/notify"
	"github.com/gauthierbraillon/bragboard/pkg/session"
)

// newNotificationsCmd creates the notifications subcommand.
func newNotificationsCmd() *cobra.Command {
	var ack, watch bool

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show admin broadcasts",
		Long: "Show notifications. The bell is lit when the count grew since you last " +
			"acknowledged; --ack clears it and --watch keeps polling until interrupted.",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			ctx := cmd.Context()
			seen, closeStore, err := a.seenStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			tracker, err := restoreTracker(ctx, seen)
			if err != nil {
				return err
			}
			poller := notify.NewPoller(tracker, a.client.FetchNotifications, a.cfg.PollInterval(), a.logger)

			if watch {
				return watchNotifications(ctx, cmd, a, poller, tracker, seen)
			}

			if _, err := poller.Poll(ctx); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatNotifications(tracker.Visible(), tracker.State()))
			if ack {
				tracker.Acknowledge()
			}
			return seen.Save(ctx, tracker.Snapshot())
		}),
	}

	cmd.Flags().BoolVar(&ack, "ack", false, "Mark the notifications as seen")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep polling and print changes")

	cmd.AddCommand(newDismissCmd())

	return cmd
}

// newDismissCmd creates the notifications dismiss subcommand.
func newDismissCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Hide a notification",
		Long:  "Hide a notification on this machine. --remote also deletes it on the server (admins only).",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			ctx := cmd.Context()
			seen, closeStore, err := a.seenStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			tracker, err := restoreTracker(ctx, seen)
			if err != nil {
				return err
			}

			id := model.ID(args[0])
			var dismissErr error
			if remote {
				dismissErr = tracker.DismissRemote(ctx, id, a.client)
			} else {
				tracker.Dismiss(id)
			}
			if err := seen.Save(ctx, tracker.Snapshot()); err != nil {
				return err
			}
			if dismissErr != nil {
				return dismissErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Notification %s dismissed.\n", id)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Also delete the notification on the server")

	return cmd
}

func restoreTracker(ctx context.Context, seen notify.SeenStore) (*notify.Tracker, error) {
	snap, err := seen.Load(ctx)
	if err != nil {
		return nil, err
	}
	tracker := notify.NewTracker()
	tracker.Restore(snap)
	return tracker, nil
}

// watchNotifications polls until ctx ends, following session changes so a
// new login is picked up without restarting.
func watchNotifications(ctx context.Context, cmd *cobra.Command, a *app, poller *notify.Poller, tracker *notify.Tracker, seen notify.SeenStore) error {
	out := cmd.OutOrStdout()
	if _, err := poller.Poll(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "notifications: %v\n", err)
	} else {
		fmt.Fprint(out, a.formatter.FormatNotifications(tracker.Visible(), tracker.State()))
	}

	poller.OnChange = func(state notify.State, items []model.Notification) {
		fmt.Fprint(out, a.formatter.FormatNotifications(items, state))
		if err := seen.Save(ctx, tracker.Snapshot()); err != nil {
			a.logger.Warn("failed to save notification state", zap.Error(err))
		}
	}
	poller.OnError = func(err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "notifications: %v\n", err)
	}

	fmt.Fprintf(out, "Watching notifications every %s (Ctrl+C to stop)...\n", a.cfg.PollInterval())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return poller.Run(gctx) })
	g.Go(func() error { return session.Watch(gctx, a.storage, a.holder, a.logger) })
	err := g.Wait()

	// ctx is done by now; persist with a fresh one.
	if saveErr := seen.Save(context.WithoutCancel(ctx), tracker.Snapshot()); saveErr != nil && err == nil {
		err = saveErr
	}
	return err
}
