// Package main provides the bragboard CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
)

// version is injected at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", apperr.Describe(err))
		stop()
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version and falls back to the module
// version recorded by go install.
func resolveVersion(ldflags string, info *debug.BuildInfo) string {
	if ldflags != "dev" {
		return ldflags
	}
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}

// newRootCmd creates the root command for bragboard CLI.
func newRootCmd() *cobra.Command {
	info, _ := debug.ReadBuildInfo()

	rootCmd := &cobra.Command{
		Use:           "bragboard",
		Short:         "Recognize your colleagues from the terminal",
		Long:          "Bragboard shows the shoutout feed, engagement insights and notifications of the employee recognition dashboard.",
		Version:       resolveVersion(version, info),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetVersionTemplate("bragboard version {{.Version}}\n")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newFeedCmd())
	rootCmd.AddCommand(newPostCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newReactCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newCommentsCmd())
	rootCmd.AddCommand(newCommentCmd())
	rootCmd.AddCommand(newMineCmd())
	rootCmd.AddCommand(newImageCmd())
	rootCmd.AddCommand(newInsightsCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newEmployeesCmd())
	rootCmd.AddCommand(newNotificationsCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}
