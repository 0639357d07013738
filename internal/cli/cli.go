// Package cli implements the command-line interface for vecbench.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Run executes the CLI with the given arguments. SIGINT and SIGTERM cancel
// the run between targets.
func Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, newRootCmd(), args)
}

func execute(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	debug      bool
	human      bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "vecbench",
		Short: "Benchmark Vec, SmallVec and EcoVec sequence containers",
		Long: `vecbench measures push, random access, remove and clone on three
sequence containers at a small (100) and a large (10,000) element count.

Usage:
  vecbench run                         Run all 24 targets, print a table
  vecbench run --filter 'EcoVec'       Run the matching targets only
  vecbench run --out results.parquet   Write a Parquet report
  vecbench list                        Print the target names
  vecbench verify                      Check container correctness`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML config file with run settings")
	pf.BoolVar(&g.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&g.human, "human", false, "human-readable console logs")

	root.AddCommand(newRunCmd(&g))
	root.AddCommand(newListCmd())
	root.AddCommand(newVerifyCmd(&g))
	root.AddCommand(newVersionCmd())
	return root
}
