package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/feed"
	"github.com/gauthierbraillon/bragboard/internal/insights"
	"github.com/gauthierbraillon/bragboard/internal/model"
	"github.com/gauthierbraillon/bragboard/pkg/browser"
)

// newFeedCmd creates the feed subcommand.
func newFeedCmd() *cobra.Command {
	var limit int
	var since, until string
	var authors []string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Display the shoutout feed",
		Long:  "Display the recognition feed, newest first, optionally filtered by date and author.",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			opts := insights.FeedOptions{Limit: limit, Authors: authors}
			var err error
			if opts.Since, err = parseDay(since, false); err != nil {
				return err
			}
			if opts.Until, err = parseDay(until, true); err != nil {
				return err
			}

			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}

			items := insights.Filter(store.Shoutouts(), opts)
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatFeed(items))
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of shoutouts to display (0 for all)")
	cmd.Flags().StringVar(&since, "since", "", "Only shoutouts on or after this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Only shoutouts on or before this day (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&authors, "author", "a", nil, "Only shoutouts by these authors")

	return cmd
}

// parseDay parses a YYYY-MM-DD flag; endOfDay moves the bound to the last
// instant of that day.
func parseDay(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, apperr.Validation("parse date", fmt.Sprintf("invalid date %q: use YYYY-MM-DD", raw))
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return day, nil
}

// newPostCmd creates the post subcommand.
func newPostCmd() *cobra.Command {
	var tags []string
	var imagePath string

	cmd := &cobra.Command{
		Use:   "post <message>",
		Short: "Publish a shoutout",
		Long:  "Publish a shoutout. Tag colleagues by id with --tag (see 'bragboard employees').",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			var image *model.Image
			if imagePath != "" {
				data, err := os.ReadFile(imagePath) // #nosec G304 -- user-selected upload
				if err != nil {
					return fmt.Errorf("failed to read image: %w", err)
				}
				image = &model.Image{Filename: filepath.Base(imagePath), Data: data}
			}

			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			created, err := store.CreatePost(cmd.Context(), strings.Join(args, " "), model.IDs(tags...), image)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Shoutout published!")
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatShoutout(created))
			return nil
		}),
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Employee id to tag (repeatable)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Image file to attach")

	return cmd
}

// newEditCmd creates the edit subcommand.
func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <message>",
		Short: "Change the text of one of your shoutouts",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			changed, err := store.EditPost(cmd.Context(), model.ID(args[0]), strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shoutout #%s updated.\n", args[0])
			return nil
		}),
	}
}

// newDeleteCmd creates the delete subcommand.
func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your shoutouts",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.DeletePost(cmd.Context(), model.ID(args[0]), yes); err != nil {
				if apperr.KindOf(err) == apperr.ErrValidation && !yes {
					return fmt.Errorf("%w (re-run with --yes to confirm)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shoutout #%s deleted.\n", args[0])
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")

	return cmd
}

// newReactCmd creates the react subcommand.
func newReactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "react <id> <emoji>",
		Short: "React to a shoutout",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			id := model.ID(args[0])
			if err := store.React(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			if s, ok := store.Shoutout(id); ok {
				fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatShoutout(s))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reacted %s to #%s.\n", args[1], id)
			return nil
		}),
	}
}

// newReportCmd creates the report subcommand.
func newReportCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Report a shoutout to the admins",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			err = store.ReportPost(cmd.Context(), model.ID(args[0]), yes)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "Shoutout #%s reported.\n", args[0])
				return nil
			case apperr.KindOf(err) == apperr.ErrConflict:
				fmt.Fprintf(cmd.OutOrStdout(), "Shoutout #%s was already reported.\n", args[0])
				return nil
			case apperr.KindOf(err) == apperr.ErrValidation && !yes:
				return fmt.Errorf("%w (re-run with --yes to confirm)", err)
			default:
				return err
			}
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the report")

	return cmd
}

// newCommentsCmd creates the comments subcommand.
func newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <id>",
		Short: "Show the comments on a shoutout",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			id := model.ID(args[0])
			if _, err := store.ToggleComments(cmd.Context(), id); err != nil {
				return err
			}
			comments, _ := store.Comments(id)
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatComments(comments))
			return nil
		}),
	}
}

// newCommentCmd creates the comment subcommand.
func newCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Comment on a shoutout",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			comment, err := store.SubmitComment(cmd.Context(), model.ID(args[0]), strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if comment == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to post.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment added to #%s.\n", args[0])
			return nil
		}),
	}
}

// newMineCmd creates the mine subcommand.
func newMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Display the shoutouts you wrote",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			posts, source := store.LoadMyPosts(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatFeed(posts))
			if source == feed.SourceLocal {
				fmt.Fprintln(cmd.OutOrStdout(), "(matched locally from the feed)")
			}
			return nil
		}),
	}
}

// newImageCmd creates the image subcommand.
func newImageCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "image <id>",
		Short: "Open the image attached to a shoutout",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			store, err := a.loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			s, ok := store.Shoutout(model.ID(args[0]))
			if !ok {
				return apperr.New(apperr.ErrNotFound, "open image", fmt.Sprintf("shoutout #%s is not in the feed", args[0]))
			}
			url, err := a.client.ImageURL(s)
			if err != nil {
				return apperr.Validation("open image", err.Error())
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			if printOnly {
				return nil
			}
			if err := browser.Open(url); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\n", err)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Only print the image URL")

	return cmd
}
