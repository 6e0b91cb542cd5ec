// Package cmd wires the pipeline's packages into a runnable command; it is
// ambient driver surface, not a home for pipeline logic.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dionysius/docweave/internal/log"
)

var (
	cfgFile    string
	verbose    bool
	realStdout *os.File
)

var rootCmd = &cobra.Command{
	Use:   "docweave",
	Short: "A documentation site generator pipeline",
	Long: `docweave ingests versioned documentation components from git
repositories, classifies their files into a typed catalog, builds
navigation menus, resolves cross-references, and composes per-page
models ready for a layout renderer to turn into HTML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		realStdout = os.Stdout
		os.Stdout, _ = os.Open(os.DevNull)

		pb, err := loadPlaybookForLogging(cfgFile)
		quiet, silent := false, false
		if err == nil {
			quiet, silent = pb.Runtime.Quiet, pb.Runtime.Silent
		}

		handler := log.NewPlaybookHandler(realStdout, quiet, silent, verbose)
		slog.SetDefault(slog.New(handler))

		cmd.SetOut(realStdout)
		cmd.SetErr(realStdout)
	},
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "playbook", "antora-playbook.yml", "playbook file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
}
