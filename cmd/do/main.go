package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/taigen-app/taigen/cmd/do/cmd"
)

func main() {
	cmd.MaybeRebuild()

	rootCmd := &cobra.Command{
		Use:   "do",
		Short: "Development tools for taigen",
		Long: `Development tools for taigen.

bin/do rebuilds itself when cmd/do or anything under internal/ changes,
including migrations. Set DO_NO_REBUILD=1 to skip the check.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		cmd.DevCmd(),
		cmd.GenCmd(),
		cmd.MigrateCmd(),
		cmd.RemindCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
