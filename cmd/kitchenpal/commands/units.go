package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/kitchenpal/internal/convert"
	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

func unitsCmd() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List the units the converter understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			families := []domain.Family{domain.FamilyVolumeMass, domain.FamilyTemperature}
			if family != "" {
				f, err := parseFamily(family)
				if err != nil {
					return err
				}
				families = []domain.Family{f}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, f := range families {
				fmt.Fprintf(tw, "%s:\n", f)
				for _, u := range domain.UnitsOf(f) {
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", u, u.Short(), strings.Join(targetsOf(u), ", "))
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "only list one family: volume or temperature")
	return cmd
}

// parseFamily resolves a family filter typed by the user.
func parseFamily(s string) (domain.Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "volume", "mass", "weight", "volume/mass":
		return domain.FamilyVolumeMass, nil
	case "temperature", "temp":
		return domain.FamilyTemperature, nil
	}
	return domain.FamilyUnknown, fmt.Errorf("unknown unit family %q", s)
}

// targetsOf lists the short names of every unit u converts into.
func targetsOf(u domain.Unit) []string {
	var out []string
	for _, p := range convert.Pairs() {
		if p.From == u && p.To != u {
			out = append(out, p.To.Short())
		}
	}
	return out
}
