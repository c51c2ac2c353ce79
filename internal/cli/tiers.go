package cli

import (
	"fmt"
	"math/bits"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fieldcalc/fieldcalc/tier"
)

// TiersReport lists the levels of a tier scheme.
type TiersReport struct {
	Tiers []TierReport `json:"tiers"`
}

// TierReport is one declared level.
type TierReport struct {
	Name string `json:"name"`
	Bit  int    `json:"bit"`
	Mask uint32 `json:"mask"`
}

// NewTiersCommand creates the tiers command.
func NewTiersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiers <scheme.yaml>",
		Short: "List the levels of a tier scheme",
		Long: `Load a tier scheme and list its levels in bit order, with the
bitmask each level contributes to tier sets.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTiers(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTiers(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading tier scheme", err)
	}
	scheme, err := tier.LoadScheme(data)
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading tier scheme", err)
	}

	report := TiersReport{}
	for _, name := range scheme.Names() {
		t, _ := scheme.Lookup(name)
		report.Tiers = append(report.Tiers, TierReport{
			Name: name,
			Bit:  bits.TrailingZeros32(uint32(t)),
			Mask: uint32(t),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	for _, t := range report.Tiers {
		fmt.Fprintf(w, "%s\tbit %d\tmask 0x%x\n", t.Name, t.Bit, t.Mask)
	}
	return w.Flush()
}
