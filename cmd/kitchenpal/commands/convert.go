package commands

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/kitchenpal/internal/convert"
	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

type conversionJSON struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Value  float64 `json:"value"`
	Text   string  `json:"text"`
}

func convertCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "convert <amount> <from> <to>",
		Short: "Convert a kitchen quantity, e.g. convert 2 cups tbsp",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := cliAmount(args[0])
			if err != nil {
				return err
			}
			from, err := domain.ParseUnit(args[1])
			if err != nil {
				return err
			}
			to, err := domain.ParseUnit(args[2])
			if err != nil {
				return err
			}

			res, err := convert.Do(convert.Request{Amount: amount, From: from, To: to})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				// NaN has no JSON form; the text field still carries it.
				return enc.Encode(conversionJSON{
					Amount: zeroIfNaN(res.Amount),
					From:   string(res.From),
					To:     string(res.To),
					Value:  zeroIfNaN(res.Value),
					Text:   res.String(),
				})
			}
			fmt.Fprintln(out, res.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// cliAmount reads the amount argument. An empty argument counts as zero,
// like an empty input box; anything else that is not a number is an error.
func cliAmount(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	v := convert.ParseAmount(s)
	if math.IsNaN(v) && !strings.EqualFold(strings.TrimSpace(s), "nan") {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	return v, nil
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
