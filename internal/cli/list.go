package cli

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/eunmann/vecbench/pkg/runner"
	"github.com/eunmann/vecbench/pkg/workload"
)

func newListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the benchmark target names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var re *regexp.Regexp
			if filter != "" {
				var err error
				if re, err = regexp.Compile(filter); err != nil {
					return fmt.Errorf("invalid --filter: %w", err)
				}
			}
			for _, t := range runner.Select(workload.Targets(), re) {
				fmt.Fprintln(cmd.OutOrStdout(), t.Name())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "regular expression selecting target names")
	return cmd
}
