package cli

import (
	"fmt"

	"github.com/Davincible/rijndael/internal/selftest"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type selfTestReport struct {
	Passed  int               `json:"passed"`
	Failed  int               `json:"failed"`
	Results []selftest.Result `json:"results"`
}

func NewSelfTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check the field and cipher against known values",
		Long: `Run the built-in checks: field multiplication and inverses across all
elements, S-box properties, round step inverses, key expansion, and the
FIPS-197 known-answer vectors for all three key sizes.

Exits non-zero if any check fails.`,
		Example: `  rijndael selftest
  rijndael selftest --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			results := selftest.Run()
			failed := selftest.Failed(results)

			out := cmd.OutOrStdout()
			if s.JSON {
				if err := writeJSON(out, selfTestReport{
					Passed:  len(results) - failed,
					Failed:  failed,
					Results: results,
				}); err != nil {
					return err
				}
			} else {
				green := color.New(color.FgGreen, color.Bold)
				red := color.New(color.FgRed, color.Bold)

				for _, r := range results {
					if r.Passed {
						green.Fprint(out, "PASS")
						fmt.Fprintf(out, "  %s\n", r.Name)
						continue
					}
					red.Fprint(out, "FAIL")
					fmt.Fprintf(out, "  %s: %s\n", r.Name, r.Error)
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "%d passed, %d failed\n", len(results)-failed, failed)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d self-test checks failed", failed, len(results))
			}
			return nil
		},
	}

	return cmd
}
