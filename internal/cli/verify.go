package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eunmann/vecbench/pkg/benchutil"
	"github.com/eunmann/vecbench/pkg/logging"
	"github.com/eunmann/vecbench/pkg/workload"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func newVerifyCmd(g *globalFlags) *cobra.Command {
	var (
		sizes    []int
		variants []string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every container variant behaves correctly",
		Long: `Verify runs the push, remove and clone operation sequences on every
variant without timing them and checks the resulting contents, including
out-of-bounds handling. --variant limits the check to the named variants.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.InitWriter(logOutput, g.debug, g.human)
			out := cmd.OutOrStdout()
			selected, err := resolveVariants(variants)
			if err != nil {
				return err
			}
			for _, n := range sizes {
				if n < 0 {
					return fmt.Errorf("invalid --size %d", n)
				}
			}

			var errs []error
			for _, v := range selected {
				for _, n := range sizes {
					label := fmt.Sprintf("%-8s n=%d", v.Name, n)
					if err := workload.Verify(v, n); err != nil {
						fmt.Fprintln(out, failStyle.Render("✗ "+label))
						fmt.Fprintln(out, "  "+err.Error())
						errs = append(errs, err)
						continue
					}
					fmt.Fprintln(out, passStyle.Render("✓ "+label))
				}
			}
			if len(errs) > 0 {
				return fmt.Errorf("verification failed: %w", errors.Join(errs...))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&variants, "variant", nil, "variants to verify (default all): Vec, SmallVec, EcoVec")
	cmd.Flags().IntSliceVar(&sizes, "size", []int{benchutil.SmallSize, benchutil.LargeSize}, "element counts to verify")
	return cmd
}

// resolveVariants maps names to variants, case-insensitively. No names
// selects every variant.
func resolveVariants(names []string) ([]workload.Variant, error) {
	if len(names) == 0 {
		return workload.Variants, nil
	}
	out := make([]workload.Variant, 0, len(names))
	for _, name := range names {
		v, ok := workload.LookupVariant(name)
		if !ok {
			return nil, fmt.Errorf("unknown --variant %q", name)
		}
		out = append(out, v)
	}
	return out, nil
}
