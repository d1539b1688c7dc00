package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/bragboard/internal/bragboard"
	"github.com/gauthierbraillon/bragboard/pkg/session"
)

// newLoginCmd creates the login subcommand.
func newLoginCmd() *cobra.Command {
	var token, userID, name string
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the access token issued by the web dashboard",
		Long: "Save a bearer token obtained from the web login. The token is checked " +
			"against /auth/me and your user id and name are stored with it.\n" +
			"Pass --token - to read the token from stdin.",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			if token == "-" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token from stdin: %w", err)
				}
				token = line
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return fmt.Errorf("missing token: pass --token or pipe it with --token -")
			}

			sess := &session.Session{AccessToken: token, TokenType: "Bearer", UserID: userID, UserName: name}
			if !noVerify {
				verifier := bragboard.NewClient(session.NewHolder(sess),
					bragboard.WithBaseURL(a.cfg.APIURL),
					bragboard.WithLogger(a.logger),
				)
				me, err := verifier.FetchMe(cmd.Context())
				if err != nil {
					return err
				}
				if sess.UserID == "" {
					sess.UserID = me.ID.String()
				}
				if sess.UserName == "" {
					sess.UserName = me.Label()
				}
			}

			if err := a.storage.Save(sess); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			who := sess.UserName
			if who == "" {
				who = "unknown user"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", who)
			fmt.Fprintf(cmd.OutOrStdout(), "Session saved to: %s\n", a.storage.Path())
			return nil
		}),
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "Bearer token from the web login (- reads stdin)")
	cmd.Flags().StringVar(&userID, "user-id", "", "Your user id (default: from /auth/me)")
	cmd.Flags().StringVar(&name, "name", "", "Your display name (default: from /auth/me)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Save without checking the token")

	return cmd
}

// newLogoutCmd creates the logout subcommand.
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.storage.Delete(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		}),
	}
}

// newWhoamiCmd creates the whoami subcommand.
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the session belongs to",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			me, err := a.client.FetchMe(cmd.Context())
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s (id %s)", me.Label(), me.ID)
			if me.Department != "" {
				line += " • " + me.Department
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		}),
	}
}

// newConfigCmd creates the config subcommand.
func newConfigCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
		Long:  "View bragboard configuration settings. --api-url saves a new API root to config.yaml.",
		RunE: run(func(cmd *cobra.Command, a *app, args []string) error {
			if apiURL != "" {
				a.cfg.APIURL = strings.TrimRight(apiURL, "/")
				if err := a.cfg.Validate(); err != nil {
					return err
				}
				if err := a.cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved API URL %s\n", a.cfg.APIURL)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config directory: %s\n", a.cfg.Dir())
			fmt.Fprintf(out, "API URL: %s\n", a.cfg.APIURL)
			fmt.Fprintf(out, "Request timeout: %s\n", a.cfg.RequestTimeout())
			fmt.Fprintf(out, "Notification store: %s\n", a.cfg.Notifications.Store)
			fmt.Fprintf(out, "Poll interval: %s\n", a.cfg.PollInterval())
			if sess := a.holder.Session(); sess != nil {
				fmt.Fprintf(out, "Session: %s\n", sess.UserName)
			} else {
				fmt.Fprintln(out, "Session: none (run 'bragboard login')")
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "Save a new API base URL")

	return cmd
}
