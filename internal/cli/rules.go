package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniapool/osu-brackets/internal/bracket"
)

type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newRulesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the trim rules available to tournament lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := make([]ruleInfo, 0)
			for _, name := range bracket.RuleNames() {
				rules = append(rules, ruleInfo{Name: name, Description: bracket.DescribeRule(name)})
			}

			if opts.outputFormat == FormatJSON {
				encoder := json.NewEncoder(opts.stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(rules)
			}
			for _, r := range rules {
				fmt.Fprintf(opts.stdout, "%-26s %s\n", r.Name, r.Description)
			}
			fmt.Fprintln(opts.stdout, "\nQualifier stages are never trimmed.")
			return nil
		},
	}
}
